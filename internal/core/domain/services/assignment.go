package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
)

// AssignmentService is the domain service that couples an order and a
// delivery partner into a single assignment. Mutating both aggregates in one
// place keeps the pairing atomic from the domain's point of view; the caller
// persists both in one transaction.
//
// Business rules:
//   - only a Preparing order can be assigned
//   - only an Available partner with no bound order can take it
//   - the partner is checked first on release so a terminal transition frees
//     the partner even when the order side already cleared the binding
type AssignmentService struct{}

// NewAssignmentService creates a new AssignmentService instance.
func NewAssignmentService() AssignmentService {
	return AssignmentService{}
}

// Assign binds the partner to the order at the given time.
//
// The order must be in Preparing status and the partner must be idle.
// On success the order moves to Assigned status carrying the partner's ID,
// and the partner becomes Busy carrying the order's ID. Both aggregates are
// mutated; neither is persisted here.
func (s AssignmentService) Assign(o *order.Order, p *partner.DeliveryPartner, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := p.Take(o.ID()); err != nil {
		return err
	}

	if err := o.AssignPartner(p.ID(), at); err != nil {
		// Take already mutated the partner, undo it so a failed assignment
		// leaves both aggregates untouched.
		p.Release()
		return err
	}

	return nil
}

// Release frees the partner carried by an order that reached a terminal
// status. It is safe to call with a partner who was already released; the
// operation is idempotent on both sides.
func (s AssignmentService) Release(p *partner.DeliveryPartner) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Release()
	return nil
}
