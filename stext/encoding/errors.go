package encoding

import "errors"

// Common error types used across encoding and corpus packages.
// All of them signal malformed input detected eagerly at construction;
// none are retryable.
var (
	ErrInvalidEncoding  = errors.New("input is not well-formed UTF-8")
	ErrShapeMismatch    = errors.New("parallel arrays differ in length")
	ErrNonMonotonicTime = errors.New("begin times must be strictly increasing across tokens")
	ErrSourceTooLarge   = errors.New("source exceeds maximum element count")
)
