package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// GetStatsQueryHandler folds the order set into the headline counters.
type GetStatsQueryHandler struct {
	source     OrderSource
	aggregator services.StatsAggregator
}

// NewGetStatsQueryHandler creates a handler for the stats query.
func NewGetStatsQueryHandler(source OrderSource) GetStatsQueryHandler {
	return GetStatsQueryHandler{
		source:     source,
		aggregator: services.NewStatsAggregator(),
	}
}

// Handle loads the scoped order set and computes the counters.
func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (services.Stats, error) {
	if err := query.Validate(); err != nil {
		return services.Stats{}, err
	}

	orders, err := loadOrders(ctx, h.source, query.PartnerID())
	if err != nil {
		return services.Stats{}, err
	}

	return h.aggregator.Aggregate(orders, time.Now().UTC()), nil
}
