package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Domain errors for status transitions.
var (
	// ErrInvalidTransition is returned when the requested status is not
	// reachable from the current status in the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbiddenForRole is returned when the requested edge exists but is
	// owned by a different actor role.
	ErrForbiddenForRole = errors.New("status transition is forbidden for role")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with role-gated transitions so orders follow
// the correct fulfillment workflow across the two actor consoles.
//
// State transitions:
//
//	Created ──(vendor)──> Preparing ──(vendor)──> Assigned
//	Assigned ──(partner)──> PickedUp ──(partner)──> OutForDelivery
//	OutForDelivery ──(partner)──> Arrived ──(partner)──> Delivered
//	Created | Preparing ──(vendor)──> Cancelled
//
// Delivered and Cancelled are terminal; no further transitions are allowed.
// Requesting the status an order already holds is accepted as an idempotent
// no-op, which absorbs at-least-once delivery from the polling transport.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first placed.
	Created

	// Preparing indicates the vendor has confirmed the order and is
	// preparing it. Partner assignment is only legal from this status.
	Preparing

	// Assigned indicates a delivery partner has been bound to the order.
	Assigned

	// PickedUp indicates the partner has collected the order from the vendor.
	PickedUp

	// OutForDelivery indicates the partner is en route to the customer.
	OutForDelivery

	// Arrived indicates the partner has reached the delivery address.
	Arrived

	// Delivered indicates the drop-off was confirmed. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before assignment. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Created:        "Created",
		Preparing:      "Preparing",
		Assigned:       "Assigned",
		PickedUp:       "PickedUp",
		OutForDelivery: "OutForDelivery",
		Arrived:        "Arrived",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "Created",
		Preparing:      "Preparing",
		Assigned:       "Assigned",
		PickedUp:       "PickedUp",
		OutForDelivery: "OutForDelivery",
		Arrived:        "Arrived",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// transition is an edge in the lifecycle graph.
type transition struct {
	from, to Status
}

// getTransitionOwners returns the legal edges of the lifecycle graph, each
// mapped to the single actor role that owns it.
func getTransitionOwners() map[transition]kernel.ActorRole {
	return map[transition]kernel.ActorRole{
		{Created, Preparing}:       kernel.RoleVendor,
		{Preparing, Assigned}:      kernel.RoleVendor,
		{Created, Cancelled}:       kernel.RoleVendor,
		{Preparing, Cancelled}:     kernel.RoleVendor,
		{Assigned, PickedUp}:       kernel.RoleDeliveryPartner,
		{PickedUp, OutForDelivery}: kernel.RoleDeliveryPartner,
		{OutForDelivery, Arrived}:  kernel.RoleDeliveryPartner,
		{Arrived, Delivered}:       kernel.RoleDeliveryPartner,
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation as used on
// the HTTP boundary and in persistence exports.
func StatusFromString(str string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", str))
}

// IsTerminal reports whether the status ends the order lifecycle.
// Terminal orders are retained for historical views but never mutated again.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// InDeliveryPhase reports whether the status is one of the delivery
// sub-states during which a delivery partner is bound to the order.
func (s Status) InDeliveryPhase() bool {
	return s == Assigned || s == PickedUp || s == OutForDelivery || s == Arrived
}

// CanTransition validates the requested transition against the lifecycle
// graph and the requesting actor's role, without performing it.
//
// Rules applied, in order:
//   - the requested status and the actor role must be valid values
//   - requesting the current status again is an idempotent no-op (nil error)
//   - the (current, requested) pair must be a listed edge, else ErrInvalidTransition
//   - the edge's owning role must match the actor, else ErrForbiddenForRole
//
// The check is pure and side-effect-free, which allows exhaustive unit
// testing over the full (current × requested × role) space.
func (s Status) CanTransition(to Status, actor kernel.ActorRole) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	if s == to {
		return nil
	}

	owner, ok := getTransitionOwners()[transition{from: s, to: to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	if owner != actor {
		return fmt.Errorf("%w: %s -> %s is owned by %s, requested by %s",
			ErrForbiddenForRole, s, to, owner, actor)
	}

	return nil
}

// ValidateCanHavePartner validates the consistency between order status and
// partner assignment: a delivery partner is bound if and only if the order is
// in a delivery sub-state. Terminal orders have their assignment cleared.
func (s Status) ValidateCanHavePartner(hasPartner bool) error {
	if hasPartner && !s.InDeliveryPhase() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery partner", s))
	}
	if !hasPartner && s.InDeliveryPhase() {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery partner", s))
	}
	return nil
}
