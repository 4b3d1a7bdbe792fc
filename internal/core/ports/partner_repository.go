package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates. Like OrderRepository, Update is guarded by the aggregate
// version so two concurrent assignments of the same partner cannot both
// succeed.
type PartnerRepository interface {
	// Add persists a new delivery partner aggregate to storage.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner aggregate, guarded by
	// the aggregate's version.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAll retrieves the full roster ordered by name.
	GetAll(ctx context.Context) ([]*partner.DeliveryPartner, error)

	// GetAllAvailable retrieves the partners that can take a new order.
	GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error)
}
