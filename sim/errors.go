package sim

import "errors"

var (
	// ErrInvalidCapacity is returned when the frame capacity is less than 1.
	ErrInvalidCapacity = errors.New("invalid capacity")
	// ErrUnknownPolicy is returned for a policy name outside AllPolicies().
	ErrUnknownPolicy = errors.New("unknown policy")
	// ErrInvalidPage is returned when a reference string holds a negative page identifier.
	ErrInvalidPage = errors.New("invalid page identifier")
)
