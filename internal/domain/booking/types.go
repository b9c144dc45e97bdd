package booking

import (
	"campus-booking/internal/pkg/errs"
)

type Status string

const (
	StatusInitiated Status = "initiated"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCanceled  Status = "canceled"
	StatusExpired   Status = "expired"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusInitiated, StatusPending, StatusActive, StatusCompleted,
		StatusRejected, StatusCanceled, StatusExpired:
		return true
	}
	return false
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.New("invalid booking status: " + s)
	}
	return st, nil
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCanceled, StatusExpired:
		return true
	}
	return false
}

// Blocking statuses hold the (room, date, slot) reservation and are
// the ones the conflict checker counts against availability.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusActive
}

var transitions = map[Status][]Status{
	StatusInitiated: {StatusPending, StatusCanceled},
	StatusPending:   {StatusActive, StatusRejected, StatusCanceled, StatusExpired},
	StatusActive:    {StatusCompleted, StatusCanceled},
}

// CanTransitionTo consults the lifecycle table. Terminal statuses have
// no outgoing edges.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
