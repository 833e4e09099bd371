package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List modification requests for review
	// (GET /admin/order-modifications)
	ListModifications(ctx echo.Context, params ListModificationsParams) error
	// Approve or reject a modification request
	// (POST /admin/order-modifications/{modificationId}/review)
	ReviewModification(ctx echo.Context, modificationId openapi_types.UUID) error
	// Cancel an order directly
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Modification history of an order
	// (GET /orders/{orderId}/modifications)
	GetOrderModifications(ctx echo.Context, orderId openapi_types.UUID) error
	// Request an item change or a cancellation
	// (POST /orders/{orderId}/modify)
	RequestOrderModification(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListModifications converts echo context to params.
func (w *ServerInterfaceWrapper) ListModifications(ctx echo.Context) error {
	var err error

	var params ListModificationsParams
	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListModifications(ctx, params)
}

// ReviewModification converts echo context to params.
func (w *ServerInterfaceWrapper) ReviewModification(ctx echo.Context) error {
	modificationId, err := bindUUIDPathParam(ctx, "modificationId")
	if err != nil {
		return err
	}
	return w.Handler.ReviewModification(ctx, modificationId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CancelOrder(ctx, orderId)
}

// GetOrderModifications converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderModifications(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderModifications(ctx, orderId)
}

// RequestOrderModification converts echo context to params.
func (w *ServerInterfaceWrapper) RequestOrderModification(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RequestOrderModification(ctx, orderId)
}

func bindUUIDPathParam(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is an interface for *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to
// the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/admin/order-modifications", wrapper.ListModifications)
	router.POST(baseURL+"/admin/order-modifications/:modificationId/review", wrapper.ReviewModification)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.GET(baseURL+"/orders/:orderId/modifications", wrapper.GetOrderModifications)
	router.POST(baseURL+"/orders/:orderId/modify", wrapper.RequestOrderModification)
}
