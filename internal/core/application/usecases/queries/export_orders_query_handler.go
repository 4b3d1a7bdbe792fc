package queries

import (
	"context"
	"fmt"
	"strings"
)

// ExportOrdersQueryHandler flattens the order set into spreadsheet rows.
// Built over the domain aggregates rather than raw SQL so the derived total
// and the item folding stay consistent with what the consoles render.
type ExportOrdersQueryHandler struct {
	source OrderSource
}

// NewExportOrdersQueryHandler creates a handler for the order export.
func NewExportOrdersQueryHandler(source OrderSource) ExportOrdersQueryHandler {
	return ExportOrdersQueryHandler{source: source}
}

// Handle loads the scoped order set and flattens each order into one row.
// Rows come back in the source's order, newest first.
func (h ExportOrdersQueryHandler) Handle(ctx context.Context, query ExportOrdersQuery) ([]ExportOrdersRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := loadOrders(ctx, h.source, query.PartnerID())
	if err != nil {
		return nil, err
	}

	rows := make([]ExportOrdersRow, 0, len(orders))
	for _, o := range orders {
		lines := make([]string, 0, len(o.Items()))
		for _, item := range o.Items() {
			lines = append(lines, fmt.Sprintf("%s x%d", item.Name(), item.Quantity()))
		}

		// Terminal transitions clear the live binding; the export falls
		// back to the delivering partner record so completed rows stay
		// attributable.
		partnerID := o.Partner()
		if partnerID == nil {
			partnerID = o.DeliveredBy()
		}

		rows = append(rows, ExportOrdersRow{
			OrderID:     o.ID(),
			CustomerRef: o.CustomerRef(),
			Address:     o.Address(),
			Items:       strings.Join(lines, "; "),
			Total:       o.Total(),
			Status:      o.Status().String(),
			PartnerID:   partnerID,
			CreatedAt:   o.CreatedAt(),
			CompletedAt: o.CompletedAt(),
		})
	}

	return rows, nil
}
