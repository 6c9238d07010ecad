package garage

import "errors"

// Sentinel errors for session operations.
var (
	ErrNoVehicle        = errors.New("vehicle information not set")
	ErrInvalidSelection = errors.New("invalid recommendation number")
)
