package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPartnersQueryHandler retrieves the partner roster from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListPartnersQueryHandler struct {
	db *gorm.DB
}

// NewListPartnersQueryHandler creates a handler for roster retrieval queries.
// Requires a GORM database connection for query execution.
func NewListPartnersQueryHandler(db *gorm.DB) ListPartnersQueryHandler {
	return ListPartnersQueryHandler{db: db}
}

// Handle executes the roster query.
// Returns partner read models sorted by name, optionally narrowed to
// partners that can take a new order.
func (h ListPartnersQueryHandler) Handle(
	ctx context.Context,
	query ListPartnersQuery,
) ([]ListPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]ListPartnersQueryResponse, 0)

	sqlQuery := `
		SELECT
			id,
			name,
			contact,
			vehicle_info,
			availability,
			current_order_id
		FROM delivery_partners
	`
	if query.AvailableOnly() {
		sqlQuery += ` WHERE availability = 'Available' AND current_order_id IS NULL`
	}
	sqlQuery += ` ORDER BY name`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response ListPartnersQueryResponse
		var id uuid.UUID
		var currentOrderID uuid.NullUUID
		var vehicleInfo sql.NullString

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Contact,
			&vehicleInfo,
			&response.Availability,
			&currentOrderID,
		)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = partnerID
		response.VehicleInfo = vehicleInfo.String

		if currentOrderID.Valid {
			orderID, orderErr := kernel.UUIDFromBytes(currentOrderID.UUID[:])
			if orderErr != nil {
				return nil, orderErr
			}
			response.CurrentOrderID = &orderID
		}

		partners = append(partners, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
