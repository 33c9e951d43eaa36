package order

import "fmt"

type Status string

const (
	StatusReadyToShip Status = "ready_to_ship"
	StatusShipped     Status = "shipped"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", &InvalidTransitionError{To: st}
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReadyToShip, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions exist from this status.
func (s Status) IsTerminal() bool {
	return len(validNext[s]) == 0 && s.IsValid()
}

var validNext = map[Status]map[Status]bool{
	StatusReadyToShip: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:     {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

func (s Status) CanTransitionTo(to Status) bool {
	return validNext[s][to]
}

// InvalidTransitionError reports a rejected status change. A zero From means
// the target status itself was not a recognized status value.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("invalid order status %q", e.To)
	}
	return fmt.Sprintf("invalid order status transition %q -> %q", e.From, e.To)
}
