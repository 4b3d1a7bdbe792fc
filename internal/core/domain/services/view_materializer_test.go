package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreOrder builds a fixture order in an arbitrary lifecycle state.
func restoreOrder(t *testing.T, customerRef, address string, status order.Status, createdAt time.Time, completedAt *time.Time) *order.Order {
	t.Helper()

	item, err := order.NewItem("Thali", 150, 1)
	require.NoError(t, err)

	var partnerID *kernel.UUID
	if status.InDeliveryPhase() {
		id := kernel.NewUUID()
		partnerID = &id
	}

	o, err := order.RestoreOrder(kernel.NewUUID(), customerRef, address,
		[]order.Item{item}, status, partnerID, nil, createdAt, completedAt,
		[]order.StatusChange{{Status: order.Created, At: createdAt}}, 1)
	require.NoError(t, err)
	return o
}

func TestViewMaterializer_Partitions(t *testing.T) {
	m := services.NewViewMaterializer()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hourAgo := now.Add(-time.Hour)

	t.Run("should place every status in exactly one partition", func(t *testing.T) {
		orders := []*order.Order{
			restoreOrder(t, "c1", "addr", order.Created, hourAgo, nil),
			restoreOrder(t, "c2", "addr", order.Preparing, hourAgo, nil),
			restoreOrder(t, "c3", "addr", order.Assigned, hourAgo, nil),
			restoreOrder(t, "c4", "addr", order.PickedUp, hourAgo, nil),
			restoreOrder(t, "c5", "addr", order.OutForDelivery, hourAgo, nil),
			restoreOrder(t, "c6", "addr", order.Arrived, hourAgo, nil),
			restoreOrder(t, "c7", "addr", order.Delivered, hourAgo, &now),
			restoreOrder(t, "c8", "addr", order.Cancelled, hourAgo, &now),
		}

		views := m.Materialize(orders, now, services.ViewFilters{})

		assert.Len(t, views.Preparation, 2)
		assert.Len(t, views.Active, 4)
		require.Len(t, views.Completed, 1)
		assert.Len(t, views.Completed[0].Orders, 2)
	})

	t.Run("should sort in-flight partitions oldest first", func(t *testing.T) {
		younger := restoreOrder(t, "c1", "addr", order.Created, now.Add(-time.Minute), nil)
		older := restoreOrder(t, "c2", "addr", order.Created, now.Add(-time.Hour), nil)

		views := m.Materialize([]*order.Order{younger, older}, now, services.ViewFilters{})

		require.Len(t, views.Preparation, 2)
		assert.True(t, views.Preparation[0].IsEqual(older))
		assert.True(t, views.Preparation[1].IsEqual(younger))
	})

	t.Run("should group completed orders by date, newest date first", func(t *testing.T) {
		today := now.Add(-2 * time.Hour)
		yesterday := now.AddDate(0, 0, -1)
		orders := []*order.Order{
			restoreOrder(t, "c1", "addr", order.Delivered, now.Add(-3*time.Hour), &today),
			restoreOrder(t, "c2", "addr", order.Delivered, now.AddDate(0, 0, -1), &yesterday),
		}

		views := m.Materialize(orders, now, services.ViewFilters{})

		require.Len(t, views.Completed, 2)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), views.Completed[0].Date)
		assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), views.Completed[1].Date)
	})

	t.Run("should sort orders inside a date group newest first", func(t *testing.T) {
		earlier := now.Add(-4 * time.Hour)
		later := now.Add(-1 * time.Hour)
		first := restoreOrder(t, "c1", "addr", order.Delivered, now.Add(-5*time.Hour), &earlier)
		second := restoreOrder(t, "c2", "addr", order.Delivered, now.Add(-5*time.Hour), &later)

		views := m.Materialize([]*order.Order{first, second}, now, services.ViewFilters{})

		require.Len(t, views.Completed, 1)
		require.Len(t, views.Completed[0].Orders, 2)
		assert.True(t, views.Completed[0].Orders[0].IsEqual(second))
		assert.True(t, views.Completed[0].Orders[1].IsEqual(first))
	})

	t.Run("should return empty views for no orders", func(t *testing.T) {
		views := m.Materialize(nil, now, services.ViewFilters{})

		assert.Empty(t, views.Preparation)
		assert.Empty(t, views.Active)
		assert.Empty(t, views.Completed)
	})
}

func TestViewMaterializer_Filters(t *testing.T) {
	m := services.NewViewMaterializer()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	hourAgo := now.Add(-time.Hour)

	t.Run("should match search against customer reference case-insensitively", func(t *testing.T) {
		hit := restoreOrder(t, "Priya Sharma", "addr", order.Created, hourAgo, nil)
		miss := restoreOrder(t, "Arjun Mehta", "addr", order.Created, hourAgo, nil)

		views := m.Materialize([]*order.Order{hit, miss}, now, services.ViewFilters{Search: "priya"})

		require.Len(t, views.Preparation, 1)
		assert.True(t, views.Preparation[0].IsEqual(hit))
	})

	t.Run("should match search against address and order id", func(t *testing.T) {
		o := restoreOrder(t, "c1", "22 Baner Road", order.Preparing, hourAgo, nil)

		byAddress := m.Materialize([]*order.Order{o}, now, services.ViewFilters{Search: "baner"})
		assert.Len(t, byAddress.Preparation, 1)

		byID := m.Materialize([]*order.Order{o}, now, services.ViewFilters{Search: o.ID().String()})
		assert.Len(t, byID.Preparation, 1)
	})

	t.Run("should apply search across all partitions", func(t *testing.T) {
		completedAt := now.Add(-time.Hour)
		orders := []*order.Order{
			restoreOrder(t, "match-me", "addr", order.Created, hourAgo, nil),
			restoreOrder(t, "match-me", "addr", order.PickedUp, hourAgo, nil),
			restoreOrder(t, "match-me", "addr", order.Delivered, hourAgo, &completedAt),
			restoreOrder(t, "someone-else", "addr", order.Created, hourAgo, nil),
		}

		views := m.Materialize(orders, now, services.ViewFilters{Search: "match-me"})

		assert.Len(t, views.Preparation, 1)
		assert.Len(t, views.Active, 1)
		require.Len(t, views.Completed, 1)
		assert.Len(t, views.Completed[0].Orders, 1)
	})

	t.Run("should narrow active partition by status", func(t *testing.T) {
		pickedUp := restoreOrder(t, "c1", "addr", order.PickedUp, hourAgo, nil)
		arrived := restoreOrder(t, "c2", "addr", order.Arrived, hourAgo, nil)
		preparing := restoreOrder(t, "c3", "addr", order.Preparing, hourAgo, nil)
		status := order.PickedUp

		views := m.Materialize([]*order.Order{pickedUp, arrived, preparing}, now,
			services.ViewFilters{Status: &status})

		require.Len(t, views.Active, 1)
		assert.True(t, views.Active[0].IsEqual(pickedUp))
		assert.Len(t, views.Preparation, 1, "status filter must not touch other partitions")
	})

	t.Run("should narrow completed partition by calendar date range", func(t *testing.T) {
		// Wednesday; the week starts Sunday Aug 30, the month Sep 1.
		wednesday := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
		today := wednesday.Add(-2 * time.Hour)
		monday := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
		lastSaturday := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
		lastMonth := time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC)
		orders := []*order.Order{
			restoreOrder(t, "c1", "addr", order.Delivered, wednesday.Add(-3*time.Hour), &today),
			restoreOrder(t, "c2", "addr", order.Delivered, monday, &monday),
			restoreOrder(t, "c3", "addr", order.Delivered, lastSaturday, &lastSaturday),
			restoreOrder(t, "c4", "addr", order.Delivered, lastMonth, &lastMonth),
		}

		todayOnly := m.Materialize(orders, wednesday, services.ViewFilters{Range: services.RangeToday})
		assert.Len(t, countCompleted(todayOnly), 1)

		thisWeek := m.Materialize(orders, wednesday, services.ViewFilters{Range: services.RangeThisWeek})
		assert.Len(t, countCompleted(thisWeek), 2, "Saturday before the week's Sunday start must drop out")

		thisMonth := m.Materialize(orders, wednesday, services.ViewFilters{Range: services.RangeThisMonth})
		assert.Len(t, countCompleted(thisMonth), 3, "August completions must drop out in September")
	})

	t.Run("should start the week on Sunday itself when today is Sunday", func(t *testing.T) {
		// Sunday; only same-day completions fall inside the week.
		sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		sameDay := sunday.Add(-2 * time.Hour)
		saturday := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
		orders := []*order.Order{
			restoreOrder(t, "c1", "addr", order.Delivered, sunday.Add(-3*time.Hour), &sameDay),
			restoreOrder(t, "c2", "addr", order.Delivered, saturday, &saturday),
		}

		thisWeek := m.Materialize(orders, sunday, services.ViewFilters{Range: services.RangeThisWeek})

		assert.Len(t, countCompleted(thisWeek), 1)
	})
}

func countCompleted(views services.Views) []*order.Order {
	var all []*order.Order
	for _, group := range views.Completed {
		all = append(all, group.Orders...)
	}
	return all
}
