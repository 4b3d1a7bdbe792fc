package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SnapshotProvider serves the cached dashboard snapshot maintained by the
// view refresh job.
type SnapshotProvider interface {
	Snapshot() (jobs.ViewSnapshot, bool)
}

// Server translates HTTP requests into application use cases and renders
// domain errors as the right status codes. It carries no state of its own
// beyond the wired handlers.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	setOrderStatusHandler  commands.SetOrderStatusCommandHandler
	assignPartnerHandler   commands.AssignPartnerCommandHandler
	registerPartnerHandler commands.RegisterPartnerCommandHandler

	// Query handlers
	getViewsHandler     queries.GetViewsQueryHandler
	getStatsHandler     queries.GetStatsQueryHandler
	listPartnersHandler queries.ListPartnersQueryHandler
	exportOrdersHandler queries.ExportOrdersQueryHandler

	snapshots SnapshotProvider
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	setOrderStatusHandler commands.SetOrderStatusCommandHandler,
	assignPartnerHandler commands.AssignPartnerCommandHandler,
	registerPartnerHandler commands.RegisterPartnerCommandHandler,
	getViewsHandler queries.GetViewsQueryHandler,
	getStatsHandler queries.GetStatsQueryHandler,
	listPartnersHandler queries.ListPartnersQueryHandler,
	exportOrdersHandler queries.ExportOrdersQueryHandler,
	snapshots SnapshotProvider,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		setOrderStatusHandler:  setOrderStatusHandler,
		assignPartnerHandler:   assignPartnerHandler,
		registerPartnerHandler: registerPartnerHandler,
		getViewsHandler:        getViewsHandler,
		getStatsHandler:        getStatsHandler,
		listPartnersHandler:    listPartnersHandler,
		exportOrdersHandler:    exportOrdersHandler,
		snapshots:              snapshots,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:id/status", s.SetOrderStatus)
	api.POST("/orders/:id/assign", s.AssignPartner)
	api.GET("/orders/export", s.ExportOrders)
	api.POST("/partners", s.RegisterPartner)
	api.GET("/partners", s.ListPartners)
	api.GET("/views", s.GetViews)
	api.GET("/stats", s.GetStats)
	api.GET("/dashboard", s.GetDashboard)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemInput{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), req.CustomerRef, req.Address, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// SetOrderStatus handles PATCH /api/v1/orders/:id/status - drives one
// transition of the order state machine on behalf of the given actor.
func (s *Server) SetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req SetOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}
	actor, err := kernel.ActorRoleFromString(req.Actor)
	if err != nil {
		return badRequest(ctx, "Unknown actor role: "+req.Actor)
	}

	cmd, err := commands.NewSetOrderStatusCommand(orderID, status, actor)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	updated, err := s.setOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// AssignPartner handles POST /api/v1/orders/:id/assign - binds an available
// partner to a Preparing order.
func (s *Server) AssignPartner(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	actor, err := kernel.ActorRoleFromString(req.Actor)
	if err != nil {
		return badRequest(ctx, "Unknown actor role: "+req.Actor)
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID, partnerID, actor)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	assignedOrder, assignedPartner, err := s.assignPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignmentResponse{
		Order:   toOrderResponse(assignedOrder),
		Partner: toPartnerResponse(assignedPartner),
	})
}

// RegisterPartner handles POST /api/v1/partners - adds a partner to the roster.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var req RegisterPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterPartnerCommand(kernel.NewUUID(), req.Name, req.Contact, req.VehicleInfo)
	if err != nil {
		return badRequest(ctx, "Invalid partner data: "+err.Error())
	}

	registered, err := s.registerPartnerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toPartnerResponse(registered))
}

// ListPartners handles GET /api/v1/partners - retrieves the partner roster.
// With ?availability=available only partners that can take an order are
// returned, which is what the assignment picker shows.
func (s *Server) ListPartners(ctx echo.Context) error {
	availableOnly := ctx.QueryParam("availability") == "available"

	partners, err := s.listPartnersHandler.Handle(
		ctx.Request().Context(), queries.NewListPartnersQuery(availableOnly))
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPartnerRosterResponse(partners))
}

// GetViews handles GET /api/v1/views - materializes the console views live.
// Filters: q (search), status (active partition), range (completed
// partition), partner_id (scope).
func (s *Server) GetViews(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Unknown status: "+raw)
		}
		status = &parsed
	}

	dateRange, err := dateRangeFromString(ctx.QueryParam("range"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	partnerID, err := optionalUUID(ctx.QueryParam("partner_id"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	query, err := queries.NewGetViewsQuery(ctx.QueryParam("q"), status, dateRange, partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid view filters: "+err.Error())
	}

	views, err := s.getViewsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toViewsResponse(views))
}

// GetStats handles GET /api/v1/stats - computes the headline counters live.
func (s *Server) GetStats(ctx echo.Context) error {
	partnerID, err := optionalUUID(ctx.QueryParam("partner_id"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	query, err := queries.NewGetStatsQuery(partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid stats scope: "+err.Error())
	}

	stats, err := s.getStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatsResponse(stats))
}

// GetDashboard handles GET /api/v1/dashboard - serves the cached snapshot
// the refresh job keeps warm. Until the first refresh completes there is
// nothing to serve.
func (s *Server) GetDashboard(ctx echo.Context) error {
	snapshot, ok := s.snapshots.Snapshot()
	if !ok {
		return ctx.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Dashboard snapshot not ready yet",
		})
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		Views:       toViewsResponse(snapshot.Views),
		Stats:       toStatsResponse(snapshot.Stats),
		RefreshedAt: snapshot.RefreshedAt,
		Stale:       snapshot.Stale,
	})
}

// ExportOrders handles GET /api/v1/orders/export - hands out the flattened
// snapshot rows the external spreadsheet formatter consumes.
func (s *Server) ExportOrders(ctx echo.Context) error {
	partnerID, err := optionalUUID(ctx.QueryParam("partner_id"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	query, err := queries.NewExportOrdersQuery(partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid export scope: "+err.Error())
	}

	rows, err := s.exportOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toExportResponse(rows))
}

// optionalUUID parses an optional query parameter; empty means absent.
func optionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// dateRangeFromString maps the range query parameter to a DateRange.
func dateRangeFromString(raw string) (services.DateRange, error) {
	switch raw {
	case "", "all":
		return services.RangeAll, nil
	case "today":
		return services.RangeToday, nil
	case "week":
		return services.RangeThisWeek, nil
	case "month":
		return services.RangeThisMonth, nil
	default:
		return services.RangeAll, errors.New("unknown range: " + raw)
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError renders a use case failure with the status the error taxonomy
// prescribes. Conflicts cover both optimistic concurrency losses and
// business-state refusals so clients can retry with fresh data.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrForbiddenForRole):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotPreparing),
		errors.Is(err, partner.ErrNotAvailable),
		errors.Is(err, partner.ErrAlreadyAssigned):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
