// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and status history live in side tables loaded with the order; the
// version column backs the optimistic concurrency guard on updates.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerRef string     `gorm:"index"`
	Address     string     ``
	Status      string     `gorm:"index"`
	PartnerID   *uuid.UUID `gorm:"type:uuid;index"`
	DeliveredBy *uuid.UUID `gorm:"type:uuid;index"`
	Version     int        ``
	CreatedAt   time.Time  `gorm:"index"`
	CompletedAt *time.Time ``

	Items   []OrderItemDTO          `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	History []OrderStatusHistoryDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line. Lines are immutable once the order
// is placed; the composite key keeps them in placement order.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey"`
	Name      string    ``
	UnitPrice int       ``
	Quantity  int       ``
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderStatusHistoryDTO represents one entry of an order's status history.
// Rows are append-only; updates insert the new entries and never touch the
// existing ones.
type OrderStatusHistoryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Status  string    ``
	At      time.Time ``
}

// TableName specifies the database table name for status history entities.
func (OrderStatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	var deliveredBy *uuid.UUID
	if id := aggregate.DeliveredBy(); id != nil {
		raw := id.Bytes()
		deliveredBy = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Seq:       i,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	history := make([]OrderStatusHistoryDTO, 0, len(aggregate.History()))
	for i, change := range aggregate.History() {
		history = append(history, OrderStatusHistoryDTO{
			OrderID: aggregate.ID().Bytes(),
			Seq:     i,
			Status:  change.Status.String(),
			At:      change.At,
		})
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerRef: aggregate.CustomerRef(),
		Address:     aggregate.Address(),
		Status:      aggregate.Status().String(),
		PartnerID:   partnerID,
		DeliveredBy: deliveredBy,
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		CompletedAt: aggregate.CompletedAt(),
		Items:       items,
		History:     history,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines, history, partner
// binding, and version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	var deliveredBy *kernel.UUID
	if dto.DeliveredBy != nil {
		dID, deliveredErr := kernel.UUIDFromBytes((*dto.DeliveredBy)[:])
		if deliveredErr != nil {
			return nil, deliveredErr
		}

		deliveredBy = &dID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Items, func(i, j int) bool { return dto.Items[i].Seq < dto.Items[j].Seq })
	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	sort.Slice(dto.History, func(i, j int) bool { return dto.History[i].Seq < dto.History[j].Seq })
	history := make([]order.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		changeStatus, changeErr := order.StatusFromString(changeDTO.Status)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, order.StatusChange{Status: changeStatus, At: changeDTO.At})
	}

	return order.RestoreOrder(id, dto.CustomerRef, dto.Address, items, status,
		partnerID, deliveredBy, dto.CreatedAt, dto.CompletedAt, history, dto.Version)
}
