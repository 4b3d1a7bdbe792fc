package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderSource supplies the order sets the read-side projections are computed
// over, either the whole store for the vendor console or the slice bound to
// one delivery partner. It is satisfied by the order repository bound to the
// plain database connection; queries never open transactions.
type OrderSource interface {
	GetAll(ctx context.Context) ([]*order.Order, error)
	GetAllForPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
}

// loadOrders resolves the query's scope into the right source call.
// A nil partnerID means the full vendor scope.
func loadOrders(ctx context.Context, source OrderSource, partnerID *kernel.UUID) ([]*order.Order, error) {
	if partnerID != nil {
		return source.GetAllForPartner(ctx, *partnerID)
	}
	return source.GetAll(ctx)
}
