package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	RBTreeStatsName = "xstl/rbtree"
)

type rbTreeStats struct {
	attrs         metric.MeasurementOption
	size          metric.Int64UpDownCounter
	rotationCount metric.Int64Counter
	rollbackCount metric.Int64Counter
}

func (stats *rbTreeStats) RecordLen(delta int64) {
	if stats == nil || delta == 0 {
		return
	}
	stats.size.Add(context.Background(), delta, stats.attrs)
}

func (stats *rbTreeStats) IncreaseRotationCount() {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *rbTreeStats) IncreaseRollbackCount() {
	if stats == nil {
		return
	}
	stats.rollbackCount.Add(context.Background(), 1, stats.attrs)
}

func newRBTreeStats(name string) *rbTreeStats {
	meterName := fmt.Sprintf("%s/%s", RBTreeStatsName, name)
	return &rbTreeStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xstl.rbtree.name", name),
		)),
		size: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"xstl.rbtree.size",
				metric.WithDescription("The number of values in the tree."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xstl.rbtree.rotation.count",
				metric.WithDescription("The number of rotations done by rebalancing."),
			),
		),
		rollbackCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xstl.rbtree.rollback.count",
				metric.WithDescription("The number of node constructions rolled back."),
			),
		),
	}
}
