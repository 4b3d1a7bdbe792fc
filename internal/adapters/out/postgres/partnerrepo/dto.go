// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence. This package implements the repository
// pattern for the partner domain aggregate, handling the conversion between
// domain entities and database representations.
package partnerrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates. The availability column is indexed because the
// assignment picker filters on it; the version column backs the optimistic
// concurrency guard that serializes concurrent assignments.
type PartnerDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"index"`
	Contact        string     ``
	VehicleInfo    string     ``
	Availability   string     `gorm:"index"`
	CurrentOrderID *uuid.UUID `gorm:"type:uuid;index"`
	Version        int        ``
}

// TableName specifies the database table name for partner entities.
// Overrides GORM's default naming convention to use "delivery_partners".
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	var currentOrderID *uuid.UUID
	if id := aggregate.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return PartnerDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Contact:        aggregate.Contact(),
		VehicleInfo:    aggregate.VehicleInfo(),
		Availability:   aggregate.Availability().String(),
		CurrentOrderID: currentOrderID,
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to a partner domain aggregate using
// RestoreDeliveryPartner.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}

		currentOrderID = &oID
	}

	availability, err := partner.AvailabilityFromString(dto.Availability)
	if err != nil {
		return nil, err
	}

	return partner.RestoreDeliveryPartner(id, dto.Name, dto.Contact, dto.VehicleInfo,
		availability, currentOrderID, dto.Version)
}
