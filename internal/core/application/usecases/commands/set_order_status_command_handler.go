package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// SetOrderStatusCommandHandler handles status transitions for orders.
//
// The handler works over the full unit of work because a terminal transition
// has a cross-aggregate side effect: the delivery partner carrying the order
// is freed in the same transaction. An order can never end up Delivered or
// Cancelled while its partner is still marked Busy.
//
// Example:
//
//	handler := NewSetOrderStatusCommandHandler(uowFactory)
//	cmd, _ := NewSetOrderStatusCommand(orderID, order.Delivered, kernel.RoleDeliveryPartner)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // illegal edge in the lifecycle graph
//	case errors.Is(err, order.ErrForbiddenForRole):
//	    // edge exists but belongs to the other console
//	}
type SetOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	assignment services.AssignmentService
}

// NewSetOrderStatusCommandHandler creates a handler for status transitions.
// Requires a UoWFactory since terminal transitions touch both aggregates.
func NewSetOrderStatusCommandHandler(uowFactory UoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
		assignment: services.NewAssignmentService(),
	}
}

// Handle processes the status transition command.
//
// Requesting the status the order already holds is an idempotent no-op: the
// handler returns the unchanged order without writing anything, so duplicate
// requests from the polling transport cost one read. On a terminal
// transition the partner bound to the order is released and both aggregates
// are updated in the same transaction.
func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	// The binding is cleared by a terminal transition, so remember it now.
	boundPartner := aggregate.Partner()

	changed, err := aggregate.TransitionTo(cmd.Status(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return aggregate, nil
	}

	if cmd.Status().IsTerminal() && boundPartner != nil {
		if err = h.releasePartner(ctx, uow, *boundPartner); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h SetOrderStatusCommandHandler) releasePartner(ctx context.Context, uow UoW, partnerID kernel.UUID) error {
	partnerRepo := uow.PartnerRepository()

	carrier, err := partnerRepo.Get(ctx, partnerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// The roster row is gone; the order side still completes.
		return nil
	}
	if err != nil {
		return err
	}

	if err = h.assignment.Release(carrier); err != nil {
		return err
	}

	return partnerRepo.Update(ctx, carrier)
}
