package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Stats is the headline counter strip rendered above the console views.
//
// Preparation, Active, and Completed partition the total the same way the
// views do, so the counters always agree with the lists below them. Today
// counts orders placed since midnight regardless of status. CompletionRate
// is the completed share of all orders, 0 when there are no orders at all.
type Stats struct {
	Total          int
	Preparation    int
	Active         int
	Completed      int
	Today          int
	CompletionRate float64
}

// StatsAggregator is the domain service that folds the order set into the
// headline counters. Like the view materializer it is pure and recomputed
// from scratch on every refresh tick.
type StatsAggregator struct{}

// NewStatsAggregator creates a new StatsAggregator instance.
func NewStatsAggregator() StatsAggregator {
	return StatsAggregator{}
}

// Aggregate computes the counters over the full, unfiltered order set.
func (a StatsAggregator) Aggregate(orders []*order.Order, now time.Time) Stats {
	stats := Stats{Total: len(orders)}

	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	for _, o := range orders {
		status := o.Status()
		switch {
		case status.IsTerminal():
			stats.Completed++
		case status.InDeliveryPhase():
			stats.Active++
		default:
			stats.Preparation++
		}

		if !o.CreatedAt().In(now.Location()).Before(midnight) {
			stats.Today++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}

	return stats
}
