package calculation

import "errors"

var (
	// ErrInvalidCadence marks an activity unit/cadence pair that has no
	// sensible annualization (e.g. days per day). Distinct from a zero
	// result so callers can ask the user to revise the selection.
	ErrInvalidCadence = errors.New("invalid unit/cadence combination")

	// ErrPercentSaturated marks a percent-of-income sum at or above 100%,
	// which makes the gross-up undefined.
	ErrPercentSaturated = errors.New("percent items sum to 100% or more")

	// ErrCapacityExceeded marks a schedule edit that would exceed the
	// enclosing schedule or phase capacity. Callers may retry with an
	// explicit override.
	ErrCapacityExceeded = errors.New("resolved schedule exceeds capacity")

	// ErrMissingProfile marks a member handle with no linked profile.
	ErrMissingProfile = errors.New("no profile linked for member")
)
