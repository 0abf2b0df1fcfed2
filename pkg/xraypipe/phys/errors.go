package phys

import (
	"errors"
	"fmt"
)

// Sentinel errors for physics data lookups.
var (
	// ErrUnknownElement indicates no data is tabulated for the atomic number.
	ErrUnknownElement = errors.New("unknown element")

	// ErrNoShellData indicates the element has no shell below the requested
	// energy.
	ErrNoShellData = errors.New("no shell data")

	// ErrNoTransitions indicates the shell has no tabulated transition lines.
	ErrNoTransitions = errors.New("no transition lines")

	// ErrNonPositiveEnergy indicates an energy at or below zero was supplied
	// to a lookup that requires a positive energy.
	ErrNonPositiveEnergy = errors.New("energy must be positive")
)

// PhysicsError wraps a lookup failure with the element and energy involved,
// so per-event failures can be logged with context and skipped.
type PhysicsError struct {
	// Z is the atomic number involved, 0 if not element-specific.
	Z int
	// EnergyJ is the photon energy in joules, 0 if not applicable.
	EnergyJ float64
	// Op is the lookup that failed ("mac", "shells", "transitions").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PhysicsError) Error() string {
	return fmt.Sprintf("physics %s lookup (Z=%d, E=%.4g keV): %v", e.Op, e.Z, ToKeV(e.EnergyJ), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PhysicsError) Unwrap() error {
	return e.Err
}
