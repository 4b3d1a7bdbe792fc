package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrExportOrdersQueryIsNotConstructed = errors.New(
	"ExportOrdersQuery must be created via NewExportOrdersQuery constructor",
)

// ExportOrdersQuery retrieves the flattened order rows the vendor downloads
// as a spreadsheet. One row per order with the total already derived; items
// are folded into a single human-readable column. A non-nil partnerID
// narrows the export to that partner's orders.
type ExportOrdersQuery struct { //nolint:recvcheck //using for validation
	partnerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewExportOrdersQuery creates a query for the order export.
// Pass nil for the full vendor scope.
func NewExportOrdersQuery(partnerID *kernel.UUID) (ExportOrdersQuery, error) {
	exportQuery := ExportOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := exportQuery.setPartnerID(partnerID); err != nil {
		return ExportOrdersQuery{}, err
	}

	return exportQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrExportOrdersQueryIsNotConstructed if validation fails.
func (q ExportOrdersQuery) Validate() error {
	return q.guard.Validate(ErrExportOrdersQueryIsNotConstructed)
}

// PartnerID returns the partner scope, or nil for the full vendor scope.
func (q ExportOrdersQuery) PartnerID() *kernel.UUID {
	return q.partnerID
}

func (q *ExportOrdersQuery) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		return nil
	}
	if err := partnerID.Validate(); err != nil {
		return err
	}

	q.partnerID = partnerID
	return nil
}

// ExportOrdersRow is one flattened line of the export.
type ExportOrdersRow struct {
	OrderID     kernel.UUID
	CustomerRef string
	Address     string
	Items       string
	Total       int
	Status      string
	PartnerID   *kernel.UUID
	CreatedAt   time.Time
	CompletedAt *time.Time
}
