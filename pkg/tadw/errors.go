package tadw

import "errors"

var (
	// ErrInvalidConfig indicates configuration rejected before the run.
	ErrInvalidConfig = errors.New("tadw: invalid configuration")
	// ErrDimensionMismatch indicates feature and target matrices that do not
	// describe the same node set.
	ErrDimensionMismatch = errors.New("tadw: dimension mismatch")
	// ErrNotFinite indicates NaN or Inf values in the learned factors,
	// usually a sign of a diverging learning rate.
	ErrNotFinite = errors.New("tadw: non-finite values in learned factors")
)
