package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidQuality indicates a quality value outside 1-100.
	ErrInvalidQuality = errors.New("quality value out of range")

	// ErrInvalidScalePercent indicates a non-positive scale_percent.
	ErrInvalidScalePercent = errors.New("scale_percent must be positive")

	// ErrInvalidDimensions indicates a negative target dimension.
	ErrInvalidDimensions = errors.New("target dimensions must be non-negative")
)
