package engine

import (
	"errors"
	"fmt"
)

// ErrEventsUnavailable is returned by event operations when the events
// database could not be opened. The planner keeps working without it.
var ErrEventsUnavailable = errors.New("events database unavailable")

// InputError indicates rejected user input and should be shown to the user.
type InputError struct {
	Field  string
	Reason string
}

func (e InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
