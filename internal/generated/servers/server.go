// Package servers holds the HTTP contract of the fulfillment API: the request
// and response models, the ServerInterface the adapter implements, and the
// embedded OpenAPI document they are derived from.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BaseURL is the prefix every operation is registered under.
const BaseURL = "/api/v1"

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Track an order
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Cancel a pending or paid order
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Confirm delivery of a shipped order
	// (POST /orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// The packing session in progress for an order
	// (GET /orders/{orderId}/packing-session)
	GetActivePackingSession(ctx echo.Context, orderId openapi_types.UUID) error
	// Open a packing session, or return the one in progress
	// (POST /orders/{orderId}/packing-session)
	OpenPackingSession(ctx echo.Context, orderId openapi_types.UUID) error
	// Hand a packed order to a carrier
	// (POST /orders/{orderId}/ship)
	ShipOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Set the status of an order through a manual transition
	// (PUT /orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// Abandon packing and return the order to paid
	// (POST /packing-sessions/{sessionId}/cancel)
	CancelPackingSession(ctx echo.Context, sessionId openapi_types.UUID) error
	// Complete packing and mark the order packed
	// (POST /packing-sessions/{sessionId}/complete)
	CompletePackingSession(ctx echo.Context, sessionId openapi_types.UUID) error
	// Record scanned counts
	// (PATCH /packing-sessions/{sessionId}/progress)
	UpdateScanProgress(ctx echo.Context, sessionId openapi_types.UUID) error
	// Dashboard counters
	// (GET /statistics)
	GetStatistics(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) DeliverOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeliverOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetActivePackingSession(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetActivePackingSession(ctx, orderId)
}

func (w *ServerInterfaceWrapper) OpenPackingSession(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.OpenPackingSession(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ShipOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ShipOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) CancelPackingSession(ctx echo.Context) error {
	sessionId, err := bindUUID(ctx, "sessionId")
	if err != nil {
		return err
	}
	return w.Handler.CancelPackingSession(ctx, sessionId)
}

func (w *ServerInterfaceWrapper) CompletePackingSession(ctx echo.Context) error {
	sessionId, err := bindUUID(ctx, "sessionId")
	if err != nil {
		return err
	}
	return w.Handler.CompletePackingSession(ctx, sessionId)
}

func (w *ServerInterfaceWrapper) UpdateScanProgress(ctx echo.Context) error {
	sessionId, err := bindUUID(ctx, "sessionId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateScanProgress(ctx, sessionId)
}

func (w *ServerInterfaceWrapper) GetStatistics(ctx echo.Context) error {
	return w.Handler.GetStatistics(ctx)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter under BaseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, BaseURL)
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/orders/:orderId/deliver", wrapper.DeliverOrder)
	router.GET(baseURL+"/orders/:orderId/packing-session", wrapper.GetActivePackingSession)
	router.POST(baseURL+"/orders/:orderId/packing-session", wrapper.OpenPackingSession)
	router.POST(baseURL+"/orders/:orderId/ship", wrapper.ShipOrder)
	router.PUT(baseURL+"/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.POST(baseURL+"/packing-sessions/:sessionId/cancel", wrapper.CancelPackingSession)
	router.POST(baseURL+"/packing-sessions/:sessionId/complete", wrapper.CompletePackingSession)
	router.PATCH(baseURL+"/packing-sessions/:sessionId/progress", wrapper.UpdateScanProgress)
	router.GET(baseURL+"/statistics", wrapper.GetStatistics)
}
