package alloc

import "errors"

var (
	ErrOutOfMemory = errors.New("[alloc] out of memory")
	ErrLength      = errors.New("[alloc] length error")
	ErrConstruct   = errors.New("[alloc] construct failed")
)
