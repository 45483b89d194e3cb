package order

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the packing and shipping workflow.
//
// State transitions:
//
//	Pending ──> Paid ──> InPacking ──> Packed ──> Shipped ──> Delivered
//	   │         │  <──────┘
//	   │         │ (packing cancelled)
//	   └────┬────┘
//	        v
//	    Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of an order placed at checkout and not yet paid.
	Pending

	// Paid orders wait for an admin to start packing them.
	Paid

	// InPacking orders have exactly one active packing session.
	InPacking

	// Packed orders are boxed and wait for a carrier.
	Packed

	// Shipped orders are handed to a carrier with a tracking id.
	Shipped

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Paid:      "paid",
		InPacking: "in_packing",
		Packed:    "packed",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Paid, InPacking, Packed, Shipped, Delivered, Cancelled}
}

// ParseStatus converts the persisted or wire name of a status back to a Status.
// Unknown names are rejected.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the closed set.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Trigger names the operation that requests a transition. Some edges of the
// graph may only be taken by one specific operation.
type Trigger int

const (
	// TriggerManual covers direct commands: payment confirmation, deliver,
	// cancel and the generic status setter used by customer self-confirmation.
	TriggerManual Trigger = iota + 1

	// TriggerPackingOpened is raised by a successful packing session creation.
	TriggerPackingOpened

	// TriggerPackingCancelled is raised by a packing session cancellation.
	TriggerPackingCancelled

	// TriggerPackingCompleted is raised by a packing session completion.
	TriggerPackingCompleted

	// TriggerShipment is raised by ship, which carries carrier and tracking id.
	TriggerShipment
)

type edge struct {
	from Status
	to   Status
}

// getTransitionTable returns every legal edge with the triggers allowed to take it.
func getTransitionTable() map[edge][]Trigger {
	return map[edge][]Trigger{
		{Pending, Paid}:      {TriggerManual},
		{Paid, InPacking}:    {TriggerPackingOpened},
		{InPacking, Paid}:    {TriggerPackingCancelled},
		{InPacking, Packed}:  {TriggerPackingCompleted},
		{Packed, Shipped}:    {TriggerShipment},
		{Shipped, Delivered}: {TriggerManual},
		{Pending, Cancelled}: {TriggerManual},
		{Paid, Cancelled}:    {TriggerManual},
	}
}

// ValidateTransition reports whether the graph has an edge from -> to,
// regardless of which operation asks for it.
//
// Returns:
//   - nil if the edge exists
//   - *errs.StateTransitionIsInvalidError otherwise
//
// Example:
//
//	order.ValidateTransition(order.Packed, order.Shipped)  // nil
//	order.ValidateTransition(order.Paid, order.Shipped)    // packing step skipped
func ValidateTransition(from, to Status) error {
	if _, ok := getTransitionTable()[edge{from, to}]; !ok {
		return newInvalidTransition(from, to)
	}
	return nil
}

// ValidateTransitionVia is ValidateTransition restricted to edges the given
// trigger is allowed to take. paid -> in_packing, for instance, exists but only
// a packing session creation may take it.
func ValidateTransitionVia(from, to Status, trigger Trigger) error {
	triggers, ok := getTransitionTable()[edge{from, to}]
	if !ok || !slices.Contains(triggers, trigger) {
		return newInvalidTransition(from, to)
	}
	return nil
}

func newInvalidTransition(from, to Status) error {
	return errs.NewStateTransitionIsInvalidError("order", from.String(), to.String())
}
