// Package ports defines the persistence interfaces of the fulfillment core.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update enforces optimistic concurrency: the write only lands when the
// stored version matches the aggregate's loaded version, otherwise a
// VersionConflictError is returned and the caller retries from a fresh read.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, guarded by the
	// aggregate's version. Returns VersionConflictError when a concurrent
	// write won the race and ObjectNotFoundError when the order is gone.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, complete
	// with items, status history, and partner binding.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first. The view materializer and
	// stats aggregator recompute their projections over this full set.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllForPartner retrieves the orders in the given delivery partner's
	// scope: the one currently bound to them plus those they carried to
	// completion.
	GetAllForPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
}
