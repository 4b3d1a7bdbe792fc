package services

import (
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// DateRange narrows the completed partition to a calendar period.
type DateRange int

const (
	// RangeAll keeps every completed order.
	RangeAll DateRange = iota
	// RangeToday keeps orders completed since midnight.
	RangeToday
	// RangeThisWeek keeps orders completed since the most recent Sunday
	// at midnight. Weeks are calendar weeks, not trailing 7-day windows.
	RangeThisWeek
	// RangeThisMonth keeps orders completed since the first of the
	// current month at midnight.
	RangeThisMonth
)

// ViewFilters narrows the materialized views.
//
// Search matches case-insensitively against the order ID, the customer
// reference, and the delivery address across all three partitions. Status
// narrows the active partition to one delivery sub-state. Range narrows the
// completed partition; the in-flight partitions always show everything left
// after the search filter.
type ViewFilters struct {
	Search string
	Status *order.Status
	Range  DateRange
}

// CompletedGroup is one date bucket of the completed partition: all orders
// that reached a terminal status on the same calendar day, newest first.
type CompletedGroup struct {
	Date   time.Time
	Orders []*order.Order
}

// Views is the materialized read model both consoles render from.
//
// The three partitions are disjoint and exhaustive over the order set:
// every order lands in exactly one of them based on its status alone.
type Views struct {
	// Preparation holds Created and Preparing orders, oldest first,
	// so the vendor works the queue in arrival order.
	Preparation []*order.Order
	// Active holds orders in the delivery sub-states, oldest first.
	Active []*order.Order
	// Completed holds terminal orders grouped by completion date,
	// newest date first.
	Completed []CompletedGroup
}

// ViewMaterializer is the domain service that projects the full order set
// into the partitioned read model. It is pure: the same orders, clock, and
// filters always produce the same views, which is what lets the refresh job
// rebuild the snapshot from scratch on every tick.
type ViewMaterializer struct{}

// NewViewMaterializer creates a new ViewMaterializer instance.
func NewViewMaterializer() ViewMaterializer {
	return ViewMaterializer{}
}

// Materialize partitions the orders into the three console views, applying
// the filters. Orders that fail the search filter disappear from every
// partition; the status filter narrows only the active partition and the
// range filter only the completed one.
func (m ViewMaterializer) Materialize(orders []*order.Order, now time.Time, filters ViewFilters) Views {
	views := Views{}
	cutoff := rangeCutoff(now, filters.Range)
	byDate := make(map[time.Time][]*order.Order)

	for _, o := range orders {
		if !matchesSearch(o, filters.Search) {
			continue
		}

		status := o.Status()
		switch {
		case status.IsTerminal():
			if cutoff != nil && (o.CompletedAt() == nil || o.CompletedAt().Before(*cutoff)) {
				continue
			}
			day := completionDay(o, now.Location())
			byDate[day] = append(byDate[day], o)
		case status.InDeliveryPhase():
			if filters.Status != nil && status != *filters.Status {
				continue
			}
			views.Active = append(views.Active, o)
		default:
			views.Preparation = append(views.Preparation, o)
		}
	}

	sortByCreatedAt(views.Preparation)
	sortByCreatedAt(views.Active)
	views.Completed = groupCompleted(byDate)

	return views
}

func matchesSearch(o *order.Order, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(o.ID().String()), needle) ||
		strings.Contains(strings.ToLower(o.CustomerRef()), needle) ||
		strings.Contains(strings.ToLower(o.Address()), needle)
}

func rangeCutoff(now time.Time, dateRange DateRange) *time.Time {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	var cutoff time.Time
	switch dateRange {
	case RangeToday:
		cutoff = midnight
	case RangeThisWeek:
		// Weekday is 0 on Sunday, so this lands on the week's start.
		cutoff = midnight.AddDate(0, 0, -int(now.Weekday()))
	case RangeThisMonth:
		cutoff = time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &cutoff
}

// completionDay reduces an order's completion time to midnight of its
// calendar day in the view's location.
func completionDay(o *order.Order, loc *time.Location) time.Time {
	completedAt := o.CompletedAt().In(loc)
	year, month, day := completedAt.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func sortByCreatedAt(orders []*order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})
}

func groupCompleted(byDate map[time.Time][]*order.Order) []CompletedGroup {
	groups := make([]CompletedGroup, 0, len(byDate))
	for date, orders := range byDate {
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CompletedAt().After(*orders[j].CompletedAt())
		})
		groups = append(groups, CompletedGroup{Date: date, Orders: orders})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}
