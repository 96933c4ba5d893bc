package order

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PENDING ──> CONFIRMED ──> PROCESSING ──> SHIPPED ──> DELIVERED
//	   │            │              │
//	   └────────────┴──────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Every allowed move is listed in transitions;
// anything else is rejected with an InvalidTransitionError.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	// Pending is the initial state. Items can be added and removed only here.
	Pending
	// Confirmed means payment was accepted.
	Confirmed
	// Processing means the order is being prepared.
	Processing
	// Shipped means the order left the warehouse.
	Shipped
	// Delivered is terminal.
	Delivered
	// Cancelled is terminal. Reserved stock has been released.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:    "UNKNOWN",
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Processing: "PROCESSING",
	Shipped:    "SHIPPED",
	Delivered:  "DELIVERED",
	Cancelled:  "CANCELLED",
}

//nolint:exhaustive // Unknown has no transitions and is not a valid source.
var transitions = map[Status][]Status{
	Pending:    {Confirmed, Cancelled},
	Confirmed:  {Processing, Cancelled},
	Processing: {Shipped, Cancelled},
	Shipped:    {Delivered},
	Delivered:  {},
	Cancelled:  {},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Processing, Shipped, Delivered, Cancelled}
}

// StatusFromString parses a status name case-insensitively, e.g. "confirmed".
func StatusFromString(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range Statuses() {
		if statusNames[status] == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// AllowedTransitions returns the statuses reachable in one step. The slice is a copy.
func (s Status) AllowedTransitions() []Status {
	return append([]Status(nil), transitions[s]...)
}

// CanTransitionTo reports whether to is reachable from s in one step.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo returns to when the move is allowed.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}
