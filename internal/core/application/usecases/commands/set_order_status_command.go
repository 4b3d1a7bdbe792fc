package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand represents a request to move an order to a new
// lifecycle status on behalf of an actor. The transition itself is judged by
// the order aggregate; the command only carries validated inputs.
//
// Example:
//
//	cmd, err := NewSetOrderStatusCommand(orderID, order.PickedUp, kernel.RoleDeliveryPartner)
//	if err != nil {
//	    return fmt.Errorf("invalid status request: %w", err)
//	}
//
//	handler := NewSetOrderStatusCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	actor   kernel.ActorRole

	guard guard.ConstructorGuard
}

// NewSetOrderStatusCommand creates a command to change an order's status.
// Validates that the order ID, the requested status, and the actor role are
// valid values; whether the transition itself is legal is decided by the
// aggregate when the command is handled.
func NewSetOrderStatusCommand(orderID kernel.UUID, status order.Status, actor kernel.ActorRole) (SetOrderStatusCommand, error) {
	statusCommand := SetOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setOrderID(orderID),
		statusCommand.setStatus(status),
		statusCommand.setActor(actor),
	); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetOrderStatusCommandIsNotConstructed if validation fails.
func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to move.
func (c SetOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested lifecycle status.
func (c SetOrderStatusCommand) Status() order.Status {
	return c.status
}

// Actor returns the role requesting the transition.
func (c SetOrderStatusCommand) Actor() kernel.ActorRole {
	return c.actor
}

func (c *SetOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *SetOrderStatusCommand) setActor(actor kernel.ActorRole) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
