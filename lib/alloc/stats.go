package alloc

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	AllocatorStatsName = "xstl/alloc"
)

type allocatorStats struct {
	attrs            metric.MeasurementOption
	liveSlots        metric.Int64UpDownCounter
	allocatedSlots   metric.Int64Counter
	releasedSlots    metric.Int64Counter
	allocFailedCount metric.Int64Counter
}

func (stats *allocatorStats) RecordAllocate(n int64) {
	if stats == nil {
		return
	}
	stats.liveSlots.Add(context.Background(), n, stats.attrs)
	stats.allocatedSlots.Add(context.Background(), n, stats.attrs)
}

func (stats *allocatorStats) RecordDeallocate(n int64) {
	if stats == nil {
		return
	}
	stats.liveSlots.Add(context.Background(), -n, stats.attrs)
	stats.releasedSlots.Add(context.Background(), n, stats.attrs)
}

func (stats *allocatorStats) IncreaseFailedCount() {
	if stats == nil {
		return
	}
	stats.allocFailedCount.Add(context.Background(), 1, stats.attrs)
}

func newAllocatorStats(name string) *allocatorStats {
	meterName := fmt.Sprintf("%s/%s", AllocatorStatsName, name)
	return &allocatorStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xstl.alloc.name", name),
		)),
		liveSlots: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"xstl.alloc.live.slots",
				metric.WithDescription("The number of slots handed out and not yet released."),
			),
		),
		allocatedSlots: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xstl.alloc.allocated.slots",
				metric.WithDescription("The number of slots allocated."),
			),
		),
		releasedSlots: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xstl.alloc.released.slots",
				metric.WithDescription("The number of slots released."),
			),
		),
		allocFailedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"xstl.alloc.failed.count",
				metric.WithDescription("The number of allocation requests beyond the max size."),
			),
		),
	}
}
