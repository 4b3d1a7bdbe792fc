package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRegisterPartnerCommandIsNotConstructed = errors.New(
		"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
	)
	ErrNameIsRequired    = errors.New("name is required")
	ErrContactIsRequired = errors.New("contact is required")
)

// RegisterPartnerCommand represents a request to put a new delivery partner
// on the roster.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID   kernel.UUID
	name        string
	contact     string
	vehicleInfo string

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates a command to register a delivery partner.
// Validates that the partner ID is valid and name and contact are not empty.
// Vehicle info is optional.
func NewRegisterPartnerCommand(partnerID kernel.UUID, name, contact, vehicleInfo string) (RegisterPartnerCommand, error) {
	partnerCommand := RegisterPartnerCommand{
		vehicleInfo: vehicleInfo,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partnerCommand.setPartnerID(partnerID),
		partnerCommand.setName(name),
		partnerCommand.setContact(contact),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return partnerCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterPartnerCommandIsNotConstructed if validation fails.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

// PartnerID returns the unique identifier for the partner.
func (c RegisterPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the partner's display name.
func (c RegisterPartnerCommand) Name() string {
	return c.name
}

// Contact returns the partner's contact handle.
func (c RegisterPartnerCommand) Contact() string {
	return c.contact
}

// VehicleInfo returns the free-form vehicle description. May be empty.
func (c RegisterPartnerCommand) VehicleInfo() string {
	return c.vehicleInfo
}

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterPartnerCommand) setContact(contact string) error {
	if contact == "" {
		return ErrContactIsRequired
	}

	c.contact = contact
	return nil
}
