package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand represents a request to bind a delivery partner to a
// preparing order. Assignment is the only way an order enters the Assigned
// status; a plain status change cannot produce a partner binding.
//
// Like every mutating call, the command carries the actor role explicitly.
// Assignment belongs to the vendor console; the handler rejects any other
// actor.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	actor     kernel.ActorRole

	guard guard.ConstructorGuard
}

// NewAssignPartnerCommand creates a command to assign a partner to an order
// on behalf of the given actor. Validates that both identifiers are valid
// UUIDs and the actor role is known.
func NewAssignPartnerCommand(orderID, partnerID kernel.UUID, actor kernel.ActorRole) (AssignPartnerCommand, error) {
	assignCommand := AssignPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setPartnerID(partnerID),
		assignCommand.setActor(actor),
	); err != nil {
		return AssignPartnerCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPartnerCommandIsNotConstructed if validation fails.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to assign.
func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the unique identifier of the partner taking the order.
func (c AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Actor returns the role of the console issuing the assignment.
func (c AssignPartnerCommand) Actor() kernel.ActorRole {
	return c.actor
}

func (c *AssignPartnerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *AssignPartnerCommand) setActor(actor kernel.ActorRole) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
