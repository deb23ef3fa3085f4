package catalogue

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStop matches every *UnknownStopError via errors.Is.
	ErrUnknownStop      = errors.New("unknown stop")
	ErrEmptyRoute       = errors.New("bus route has no stops")
	ErrDuplicateBus     = errors.New("bus already exists")
	ErrNegativeDistance = errors.New("road distance must not be negative")
)

// UnknownStopError is returned when a bus or a road distance references a
// stop that was never added.
type UnknownStopError struct {
	Name string
}

func (e *UnknownStopError) Error() string {
	return fmt.Sprintf("unknown stop %q", e.Name)
}

func (e *UnknownStopError) Is(target error) bool {
	return target == ErrUnknownStop
}
