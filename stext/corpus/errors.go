package corpus

import "errors"

// Batch-level errors. Like the encoding errors, these are detected eagerly at
// the operation boundary and are never retryable.
var (
	ErrEmptyInput      = errors.New("no batches to combine")
	ErrIndexOutOfRange = errors.New("index out of range for batch")
)
