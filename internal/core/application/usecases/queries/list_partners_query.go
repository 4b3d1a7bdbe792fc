// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListPartnersQueryIsNotConstructed = errors.New(
	"ListPartnersQuery must be created via NewListPartnersQuery constructor",
)

// ListPartnersQuery retrieves the delivery partner roster.
// With AvailableOnly set it returns just the partners that can take a new
// order, which is what the vendor's assignment picker renders.
//
// Example:
//
//	query := NewListPartnersQuery(true)
//	handler := NewListPartnersQueryHandler(db)
//
//	partners, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve partners: %w", err)
//	}
type ListPartnersQuery struct {
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewListPartnersQuery creates a query to retrieve the partner roster.
func NewListPartnersQuery(availableOnly bool) ListPartnersQuery {
	return ListPartnersQuery{
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListPartnersQueryIsNotConstructed if validation fails.
func (q ListPartnersQuery) Validate() error {
	return q.guard.Validate(ErrListPartnersQueryIsNotConstructed)
}

// AvailableOnly reports whether the roster should be narrowed to partners
// that can take a new order.
func (q ListPartnersQuery) AvailableOnly() bool {
	return q.availableOnly
}

// ListPartnersQueryResponse represents partner information in the read model.
type ListPartnersQueryResponse struct {
	ID             kernel.UUID
	Name           string
	Contact        string
	VehicleInfo    string
	Availability   string
	CurrentOrderID *kernel.UUID
}
