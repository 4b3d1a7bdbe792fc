package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
)

// AssignPartnerCommandHandler orchestrates partner assignment.
// Assignment is a vendor-console operation: a command issued by any other
// actor is rejected before either aggregate is touched. The handler loads
// both aggregates, pairs them through the assignment service, and updates
// both within a single transaction so no half-assignment can be observed or
// persisted.
//
// Concurrent assignments of the same partner are serialized by the version
// guard on the partner row: the second transaction's update affects zero
// rows and surfaces as a VersionConflictError.
//
// Example:
//
//	handler := NewAssignPartnerCommandHandler(uowFactory)
//	cmd, _ := NewAssignPartnerCommand(orderID, partnerID, kernel.RoleVendor)
//	o, p, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrForbiddenForRole):
//	    // assignment requested from the wrong console
//	case errors.Is(err, order.ErrNotPreparing):
//	    // order is not ready for assignment
//	case errors.Is(err, partner.ErrAlreadyAssigned):
//	    // partner already carries an order
//	case errors.Is(err, partner.ErrNotAvailable):
//	    // partner is off the roster
//	}
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	assignment services.AssignmentService
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignPartnerCommandHandler(uowFactory UoWFactory) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		assignment: services.NewAssignmentService(),
	}
}

// Handle processes the partner assignment command.
// Returns both updated aggregates on success so the caller can render the
// order with its new binding and the partner's new availability.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (*order.Order, *partner.DeliveryPartner, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	if cmd.Actor() != kernel.RoleVendor {
		return nil, nil, fmt.Errorf("%w: assignment is owned by %s, requested by %s",
			order.ErrForbiddenForRole, kernel.RoleVendor, cmd.Actor())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	partnerRepo := uow.PartnerRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	carrier, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, nil, err
	}

	if err = h.assignment.Assign(aggregate, carrier, time.Now().UTC()); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, nil, err
	}

	if err = partnerRepo.Update(ctx, carrier); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return aggregate, carrier, nil
}
