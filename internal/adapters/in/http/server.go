// Package http exposes the order routing API over HTTP.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignOrderHandler     commands.AssignOrderCommandHandler
	managerDecisionHandler commands.ManagerDecisionCommandHandler

	// Query handlers
	getOrderHistoryHandler     queries.GetOrderHistoryQueryHandler
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignOrderHandler commands.AssignOrderCommandHandler,
	managerDecisionHandler commands.ManagerDecisionCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getUnassignedOrdersHandler queries.GetUnassignedOrdersQueryHandler,
) *Server {
	return &Server{
		assignOrderHandler:         assignOrderHandler,
		managerDecisionHandler:     managerDecisionHandler,
		getOrderHistoryHandler:     getOrderHistoryHandler,
		getUnassignedOrdersHandler: getUnassignedOrdersHandler,
	}
}

// RegisterRoutes attaches the API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/decision", s.ManagerDecision)
	api.GET("/orders/unassigned", s.GetUnassignedOrders)
	api.GET("/orders/:id/history", s.GetOrderHistory)
}

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecisionRequest is the body of POST /api/v1/orders/:id/decision.
type DecisionRequest struct {
	StoreID  string `json:"store_id"`
	Decision string `json:"decision"`
	Reason   string `json:"reason"`
}

// HistoryEntry is one transition of GET /api/v1/orders/:id/history.
type HistoryEntry struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UnassignedOrder is one entry of GET /api/v1/orders/unassigned.
type UnassignedOrder struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AssignOrder handles POST /api/v1/orders/:id/assign - routes an order to the
// nearest store.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewAssignOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.assignmentError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// ManagerDecision handles POST /api/v1/orders/:id/decision - records a store
// manager's accept or reject verdict.
func (s *Server) ManagerDecision(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var request DecisionRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid store id",
		})
	}

	cmd, err := commands.NewManagerDecisionCommand(
		orderID,
		storeID,
		commands.Decision(request.Decision),
		request.Reason,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid decision data: " + err.Error(),
		})
	}

	if handleErr := s.managerDecisionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.decisionError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's status transition ledger, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	history, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order history",
		})
	}

	response := make([]HistoryEntry, len(history))
	for i, entry := range history {
		response[i] = HistoryEntry{
			Status:    entry.Status.String(),
			CreatedAt: entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUnassignedOrders handles GET /api/v1/orders/unassigned - returns orders
// still waiting for their first store assignment.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignedOrdersQuery()

	orders, err := s.getUnassignedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve unassigned orders",
		})
	}

	response := make([]UnassignedOrder, len(orders))
	for i, entry := range orders {
		response[i] = UnassignedOrder{
			ID:            entry.ID.String(),
			UserID:        entry.UserID.String(),
			AddressID:     entry.AddressID.String(),
			PaymentMethod: entry.PaymentMethod,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) assignmentError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound), errors.Is(err, commands.ErrAddressNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrInvalidStatus),
		errors.Is(err, commands.ErrInvalidPaymentMethod),
		errors.Is(err, commands.ErrNoSuitableStore):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to assign order",
		})
	}
}

func (s *Server) decisionError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrInvalidStatus):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to record decision",
		})
	}
}
