package schedule

import "errors"

// ErrUnknownCategory is returned when a vehicle category has no rule set.
var ErrUnknownCategory = errors.New("unknown vehicle category")
