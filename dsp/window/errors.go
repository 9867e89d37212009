package window

import "errors"

var (
	// ErrLength is returned for a window of fewer than one sample.
	ErrLength = errors.New("window: length must be positive")
	// ErrEmpty is returned when gains are requested for no coefficients.
	ErrEmpty = errors.New("window: no coefficients")
	// ErrZeroPowerGain is returned for an all-zero window.
	ErrZeroPowerGain = errors.New("window: zero power gain")
)
