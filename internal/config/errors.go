package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidStep2Cancel is returned for an unknown picker.step2_cancel value.
	ErrInvalidStep2Cancel = errors.New("invalid step2_cancel: want skip or abort")

	// ErrInvalidEscape is returned for an unknown picker.escape value.
	ErrInvalidEscape = errors.New("invalid escape: want cssom or simple")

	// ErrInvalidRowRange is returned when the row match range is empty.
	ErrInvalidRowRange = errors.New("invalid row match range")

	// ErrInvalidDepth is returned for a non-positive ancestor depth.
	ErrInvalidDepth = errors.New("max_ancestor_depth must be positive")

	// ErrInvalidClassPolicy is returned for non-positive stable class thresholds.
	ErrInvalidClassPolicy = errors.New("stable_class thresholds must be positive")

	// ErrInvalidCancelKey is returned for an empty cancel key.
	ErrInvalidCancelKey = errors.New("cancel_key must not be empty")

	// ErrInvalidWindowSize is returned for negative browser window dimensions.
	ErrInvalidWindowSize = errors.New("browser window size must not be negative")
)
