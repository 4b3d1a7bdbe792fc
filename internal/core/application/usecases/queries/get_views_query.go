package queries

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetViewsQueryIsNotConstructed = errors.New(
	"GetViewsQuery must be created via NewGetViewsQuery constructor",
)

// GetViewsQuery retrieves the partitioned console views: the preparation
// queue, the active deliveries, and the completed orders grouped by date.
//
// Search narrows all partitions, the status filter narrows only the active
// partition, and the date range narrows only the completed one. A non-nil
// partnerID scopes the whole projection to that partner's orders, which is
// how the delivery partner console sees only its own work.
//
// Example:
//
//	status := order.PickedUp
//	query, err := NewGetViewsQuery("priya", &status, services.RangeToday, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid view filters: %w", err)
//	}
//
//	handler := NewGetViewsQueryHandler(source)
//	views, err := handler.Handle(ctx, query)
type GetViewsQuery struct { //nolint:recvcheck //using for validation
	search    string
	status    *order.Status
	dateRange services.DateRange
	partnerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetViewsQuery creates a query for the console views.
// The status filter, when present, must be one of the delivery sub-states;
// the other statuses already have a partition of their own.
func NewGetViewsQuery(
	search string, status *order.Status, dateRange services.DateRange, partnerID *kernel.UUID,
) (GetViewsQuery, error) {
	viewsQuery := GetViewsQuery{
		search:    search,
		dateRange: dateRange,
		guard:     guard.NewConstructorGuard(),
	}

	if err := viewsQuery.setStatus(status); err != nil {
		return GetViewsQuery{}, err
	}
	if err := viewsQuery.setPartnerID(partnerID); err != nil {
		return GetViewsQuery{}, err
	}

	return viewsQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetViewsQueryIsNotConstructed if validation fails.
func (q GetViewsQuery) Validate() error {
	return q.guard.Validate(ErrGetViewsQueryIsNotConstructed)
}

// Filters returns the domain-level view filters carried by the query.
func (q GetViewsQuery) Filters() services.ViewFilters {
	return services.ViewFilters{
		Search: q.search,
		Status: q.status,
		Range:  q.dateRange,
	}
}

// PartnerID returns the partner scope, or nil for the full vendor scope.
func (q GetViewsQuery) PartnerID() *kernel.UUID {
	return q.partnerID
}

func (q *GetViewsQuery) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		return nil
	}
	if err := partnerID.Validate(); err != nil {
		return err
	}

	q.partnerID = partnerID
	return nil
}

func (q *GetViewsQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	if !status.InDeliveryPhase() {
		return errs.NewValueIsInvalidErrorWithCause("status filter is invalid",
			fmt.Errorf("%s is not a delivery sub-state", status))
	}

	q.status = status
	return nil
}
