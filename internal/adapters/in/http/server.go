package http

import (
	"context"
	"net/http"
	"time"

	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Workflow is the part of the fulfillment workflow exposed over HTTP.
type Workflow interface {
	CreateOrder(ctx context.Context, in workflow.CreateOrderInput) (workflow.Order, error)
	GetOrder(ctx context.Context, orderID string) (workflow.Order, error)
	ShipOrder(ctx context.Context, orderID, carrier, trackingID string) (workflow.Order, error)
	DeliverOrder(ctx context.Context, orderID string) (workflow.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string) (workflow.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (workflow.Order, error)
	OpenPackingSession(ctx context.Context, orderID, adminEmail string) (workflow.PackingSession, error)
	UpdateScanProgress(ctx context.Context, sessionID string, progress map[string]int) (workflow.PackingSession, error)
	CompletePackingSession(ctx context.Context, sessionID string) (workflow.PackingSession, error)
	CancelPackingSession(ctx context.Context, sessionID, reason string) (workflow.PackingSession, error)
	GetActivePackingSession(ctx context.Context, orderID string) (*workflow.PackingSession, error)
	GetOrderStatistics(ctx context.Context) (workflow.Statistics, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// Every handler delegates to the workflow and renders its result or error.
type Server struct {
	workflow Workflow
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server backed by the given workflow.
func NewServer(wf Workflow) *Server {
	return &Server{workflow: wf}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	o, err := s.workflow.CreateOrder(ctx.Request().Context(), createOrderInput(body))
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.respondOrder(ctx)(s.workflow.GetOrder(ctx.Request().Context(), orderId.String()))
}

// ShipOrder handles POST /api/v1/orders/{orderId}/ship.
func (s *Server) ShipOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.ShipOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondOrder(ctx)(s.workflow.ShipOrder(
		ctx.Request().Context(), orderId.String(), body.Carrier, body.TrackingId,
	))
}

func (s *Server) DeliverOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.respondOrder(ctx)(s.workflow.DeliverOrder(ctx.Request().Context(), orderId.String()))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel. The body is optional.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondOrder(ctx)(s.workflow.CancelOrder(ctx.Request().Context(), orderId.String(), deref(body.Reason)))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.UpdateStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondOrder(ctx)(s.workflow.UpdateOrderStatus(
		ctx.Request().Context(), orderId.String(), string(body.Status),
	))
}

// GetActivePackingSession handles GET /api/v1/orders/{orderId}/packing-session.
// An order without a session in progress answers 204.
func (s *Server) GetActivePackingSession(ctx echo.Context, orderId openapi_types.UUID) error {
	session, err := s.workflow.GetActivePackingSession(ctx.Request().Context(), orderId.String())
	if err != nil {
		return writeError(ctx, err)
	}
	if session == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, toPackingSession(*session))
}

// OpenPackingSession handles POST /api/v1/orders/{orderId}/packing-session.
func (s *Server) OpenPackingSession(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.OpenPackingSessionRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondSession(ctx)(s.workflow.OpenPackingSession(
		ctx.Request().Context(), orderId.String(), body.AdminEmail,
	))
}

// UpdateScanProgress handles PATCH /api/v1/packing-sessions/{sessionId}/progress.
func (s *Server) UpdateScanProgress(ctx echo.Context, sessionId openapi_types.UUID) error {
	var body servers.ScanProgressRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondSession(ctx)(s.workflow.UpdateScanProgress(
		ctx.Request().Context(), sessionId.String(), body.ScanProgress,
	))
}

func (s *Server) CompletePackingSession(ctx echo.Context, sessionId openapi_types.UUID) error {
	return s.respondSession(ctx)(s.workflow.CompletePackingSession(ctx.Request().Context(), sessionId.String()))
}

// CancelPackingSession handles POST /api/v1/packing-sessions/{sessionId}/cancel.
func (s *Server) CancelPackingSession(ctx echo.Context, sessionId openapi_types.UUID) error {
	var body servers.CancelRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx, err)
	}

	return s.respondSession(ctx)(s.workflow.CancelPackingSession(
		ctx.Request().Context(), sessionId.String(), deref(body.Reason),
	))
}

// GetStatistics handles GET /api/v1/statistics.
func (s *Server) GetStatistics(ctx echo.Context) error {
	stats, err := s.workflow.GetOrderStatistics(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toStatistics(stats))
}

func (s *Server) respondOrder(ctx echo.Context) func(workflow.Order, error) error {
	return func(o workflow.Order, err error) error {
		if err != nil {
			return writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toOrder(o))
	}
}

func (s *Server) respondSession(ctx echo.Context) func(workflow.PackingSession, error) error {
	return func(session workflow.PackingSession, err error) error {
		if err != nil {
			return writeError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toPackingSession(session))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
