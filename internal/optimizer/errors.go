package optimizer

import (
	"errors"
	"fmt"
)

// Fatal error classes. Callers match them with errors.Is; no partial plan
// accompanies either one.
var (
	// Malformed coordinates, identity collisions or negative demand.
	ErrInvalidInput = errors.New("invalid input")
	// Non-positive fleet size or capacity, or an unknown algorithm.
	ErrInvalidConfig = errors.New("invalid config")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
