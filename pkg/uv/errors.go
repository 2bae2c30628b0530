package uv

import "errors"

// Errors returned by the unwrap and classification functions.
var (
	ErrZeroNormal    = errors.New("uv: face normal has zero or non-finite length")
	ErrZeroDirection = errors.New("uv: projection direction has zero length")
	ErrInvalidAxis   = errors.New("uv: invalid axis")
	ErrVertexIndex   = errors.New("uv: face references a missing vertex")
	ErrUVCount       = errors.New("uv: face uv count does not match its loop")
)
