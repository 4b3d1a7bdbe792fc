package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// GetViewsQueryHandler materializes the console views from the order source.
// The projection is recomputed from scratch on every call; the refresh job
// caches the result between polling ticks.
type GetViewsQueryHandler struct {
	source       OrderSource
	materializer services.ViewMaterializer
}

// NewGetViewsQueryHandler creates a handler for view materialization.
func NewGetViewsQueryHandler(source OrderSource) GetViewsQueryHandler {
	return GetViewsQueryHandler{
		source:       source,
		materializer: services.NewViewMaterializer(),
	}
}

// Handle loads the scoped order set and partitions it per the query's filters.
func (h GetViewsQueryHandler) Handle(ctx context.Context, query GetViewsQuery) (services.Views, error) {
	if err := query.Validate(); err != nil {
		return services.Views{}, err
	}

	orders, err := loadOrders(ctx, h.source, query.PartnerID())
	if err != nil {
		return services.Views{}, err
	}

	return h.materializer.Materialize(orders, time.Now().UTC(), query.Filters()), nil
}
