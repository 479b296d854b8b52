package fractal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned (wrapped) for every configuration that cannot be evaluated.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownVariation reports a variation kind outside 0..6.
	ErrUnknownVariation = fmt.Errorf("%w: unknown variation", ErrInvalidConfig)

	// ErrUnknownColoring reports a coloring selector outside the enumerated modes.
	ErrUnknownColoring = fmt.Errorf("%w: unknown coloring", ErrInvalidConfig)

	// ErrTrapIndex reports a trap index outside 0..MaxPointTraps-1 / 0..MaxLineTraps-1.
	ErrTrapIndex = errors.New("trap index out of range")
)

// ConfigError names the offending field of an invalid configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
