// Package domain provides core business rules for the leads bounded context.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a lead.
type State string

const (
	// StatePending is the initial state of every new lead.
	StatePending State = "PENDING"
	// StateReachedOut is the terminal state; a lead never reverts from it.
	StateReachedOut State = "REACHED_OUT"
)

// ParseState converts a raw string into a State.
func ParseState(raw string) (State, error) {
	switch State(raw) {
	case StatePending:
		return StatePending, nil
	case StateReachedOut:
		return StateReachedOut, nil
	default:
		return "", fmt.Errorf("unknown lead state %q", raw)
	}
}

// Lead is a prospective client captured through the public intake form.
// DeletedAt marks soft deletion: a set value hides the record from all
// reads while the row itself is kept forever.
type Lead struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Email      string
	ResumePath *string
	State      State
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// ValidateTransition checks whether a lead in the current state may
// move to the requested state. Returns a non-empty reason when the
// transition is rejected. The only legal transition is
// PENDING -> REACHED_OUT.
func ValidateTransition(current, requested State) string {
	if current == StateReachedOut {
		return "lead has already been marked as REACHED_OUT"
	}
	if requested != StateReachedOut {
		return "can only transition from PENDING to REACHED_OUT"
	}
	return ""
}
