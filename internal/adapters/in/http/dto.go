package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
)

// Error is the JSON shape of every non-2xx response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one order line in a create-order request.
type ItemRequest struct {
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerRef string        `json:"customer_ref"`
	Address     string        `json:"address"`
	Items       []ItemRequest `json:"items"`
}

// SetOrderStatusRequest is the body of PATCH /api/v1/orders/:id/status.
// Actor names the role driving the transition; the state machine decides
// whether that role owns the requested edge.
type SetOrderStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
}

// AssignPartnerRequest is the body of POST /api/v1/orders/:id/assign.
// Actor names the issuing console; assignment is accepted from the vendor
// console only.
type AssignPartnerRequest struct {
	PartnerID string `json:"partner_id"`
	Actor     string `json:"actor"`
}

// RegisterPartnerRequest is the body of POST /api/v1/partners.
type RegisterPartnerRequest struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	VehicleInfo string `json:"vehicle_info"`
}

// ItemResponse is one order line as rendered to clients.
type ItemResponse struct {
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int    `json:"subtotal"`
}

// OrderResponse is the full order representation returned by every order
// endpoint. The total is derived server-side and never accepted from input.
type OrderResponse struct {
	ID          string         `json:"id"`
	CustomerRef string         `json:"customer_ref"`
	Address     string         `json:"address"`
	Items       []ItemResponse `json:"items"`
	Total       int            `json:"total"`
	Status      string         `json:"status"`
	PartnerID   *string        `json:"partner_id,omitempty"`
	DeliveredBy *string        `json:"delivered_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Version     int            `json:"version"`
}

// PartnerResponse is the delivery partner representation.
type PartnerResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Contact        string  `json:"contact"`
	VehicleInfo    string  `json:"vehicle_info"`
	Availability   string  `json:"availability"`
	CurrentOrderID *string `json:"current_order_id,omitempty"`
}

// AssignmentResponse carries both sides of a completed assignment.
type AssignmentResponse struct {
	Order   OrderResponse   `json:"order"`
	Partner PartnerResponse `json:"partner"`
}

// CompletedGroupResponse is one calendar-date bucket of completed orders.
type CompletedGroupResponse struct {
	Date   string          `json:"date"`
	Orders []OrderResponse `json:"orders"`
}

// ViewsResponse mirrors the three console partitions.
type ViewsResponse struct {
	Preparation []OrderResponse          `json:"preparation"`
	Active      []OrderResponse          `json:"active"`
	Completed   []CompletedGroupResponse `json:"completed"`
}

// StatsResponse mirrors the headline counter strip.
type StatsResponse struct {
	Total          int     `json:"total"`
	Preparation    int     `json:"preparation"`
	Active         int     `json:"active"`
	Completed      int     `json:"completed"`
	Today          int     `json:"today"`
	CompletionRate float64 `json:"completion_rate"`
}

// DashboardResponse is the cached snapshot maintained by the refresh job.
type DashboardResponse struct {
	Views       ViewsResponse `json:"views"`
	Stats       StatsResponse `json:"stats"`
	RefreshedAt time.Time     `json:"refreshed_at"`
	Stale       bool          `json:"stale"`
}

// ExportRowResponse is one flattened line of the order export.
type ExportRowResponse struct {
	OrderID     string     `json:"order_id"`
	CustomerRef string     `json:"customer_ref"`
	Address     string     `json:"address"`
	Items       string     `json:"items"`
	Total       int        `json:"total"`
	Status      string     `json:"status"`
	PartnerID   *string    `json:"partner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func uuidToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemResponse{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}

	return OrderResponse{
		ID:          o.ID().String(),
		CustomerRef: o.CustomerRef(),
		Address:     o.Address(),
		Items:       items,
		Total:       o.Total(),
		Status:      o.Status().String(),
		PartnerID:   uuidToString(o.Partner()),
		DeliveredBy: uuidToString(o.DeliveredBy()),
		CreatedAt:   o.CreatedAt(),
		CompletedAt: o.CompletedAt(),
		Version:     o.Version(),
	}
}

func toPartnerResponse(p *partner.DeliveryPartner) PartnerResponse {
	return PartnerResponse{
		ID:             p.ID().String(),
		Name:           p.Name(),
		Contact:        p.Contact(),
		VehicleInfo:    p.VehicleInfo(),
		Availability:   p.Availability().String(),
		CurrentOrderID: uuidToString(p.CurrentOrder()),
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}
	return responses
}

func toViewsResponse(views services.Views) ViewsResponse {
	completed := make([]CompletedGroupResponse, 0, len(views.Completed))
	for _, group := range views.Completed {
		completed = append(completed, CompletedGroupResponse{
			Date:   group.Date.Format("2006-01-02"),
			Orders: toOrderResponses(group.Orders),
		})
	}

	return ViewsResponse{
		Preparation: toOrderResponses(views.Preparation),
		Active:      toOrderResponses(views.Active),
		Completed:   completed,
	}
}

func toStatsResponse(stats services.Stats) StatsResponse {
	return StatsResponse{
		Total:          stats.Total,
		Preparation:    stats.Preparation,
		Active:         stats.Active,
		Completed:      stats.Completed,
		Today:          stats.Today,
		CompletionRate: stats.CompletionRate,
	}
}

func toPartnerRosterResponse(partners []queries.ListPartnersQueryResponse) []PartnerResponse {
	responses := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		responses = append(responses, PartnerResponse{
			ID:             p.ID.String(),
			Name:           p.Name,
			Contact:        p.Contact,
			VehicleInfo:    p.VehicleInfo,
			Availability:   p.Availability,
			CurrentOrderID: uuidToString(p.CurrentOrderID),
		})
	}
	return responses
}

func toExportResponse(rows []queries.ExportOrdersRow) []ExportRowResponse {
	responses := make([]ExportRowResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ExportRowResponse{
			OrderID:     row.OrderID.String(),
			CustomerRef: row.CustomerRef,
			Address:     row.Address,
			Items:       row.Items,
			Total:       row.Total,
			Status:      row.Status,
			PartnerID:   uuidToString(row.PartnerID),
			CreatedAt:   row.CreatedAt,
			CompletedAt: row.CompletedAt,
		})
	}
	return responses
}
