package http

import (
	"context"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"
	"orderflow/internal/metrics"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Operation labels used by the failure counter.
const (
	opRequestModification   = "request_modification"
	opCancelOrder           = "cancel_order"
	opReviewModification    = "review_modification"
	opGetOrderModifications = "get_order_modifications"
	opListModifications     = "list_modifications"
)

type RequestModificationHandler interface {
	Handle(ctx context.Context, cmd commands.RequestModificationCommand) (*modification.Request, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
}

type ReviewModificationHandler interface {
	Handle(ctx context.Context, cmd commands.ReviewModificationCommand) (*modification.Request, error)
}

type GetOrderModificationsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderModificationsQuery) ([]queries.ModificationView, error)
}

type ListModificationsHandler interface {
	Handle(ctx context.Context, query queries.ListModificationsQuery) ([]queries.ModificationView, error)
}

// Server implements servers.ServerInterface on top of the workflow command
// and query handlers. The caller identity is put on the echo context by
// IdentityMiddleware.
type Server struct {
	// Command handlers
	requestModificationHandler RequestModificationHandler
	cancelOrderHandler         CancelOrderHandler
	reviewModificationHandler  ReviewModificationHandler

	// Query handlers
	getOrderModificationsHandler GetOrderModificationsHandler
	listModificationsHandler     ListModificationsHandler

	metrics *metrics.Metrics
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	requestModificationHandler RequestModificationHandler,
	cancelOrderHandler CancelOrderHandler,
	reviewModificationHandler ReviewModificationHandler,
	getOrderModificationsHandler GetOrderModificationsHandler,
	listModificationsHandler ListModificationsHandler,
	m *metrics.Metrics,
) *Server {
	return &Server{
		requestModificationHandler:   requestModificationHandler,
		cancelOrderHandler:           cancelOrderHandler,
		reviewModificationHandler:    reviewModificationHandler,
		getOrderModificationsHandler: getOrderModificationsHandler,
		listModificationsHandler:     listModificationsHandler,
		metrics:                      m,
	}
}

// RequestOrderModification handles POST /api/v1/orders/{orderId}/modify.
func (s *Server) RequestOrderModification(ctx echo.Context, orderId openapi_types.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.RequestOrderModificationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(opRequestModification, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromRaw(orderId)
	if err != nil {
		return s.fail(opRequestModification, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}
	modType, err := modification.ParseType(string(body.ModificationType))
	if err != nil {
		return s.fail(opRequestModification, err)
	}
	items, err := toDomainItems(body.NewItems)
	if err != nil {
		return s.fail(opRequestModification, err)
	}

	cmd, err := commands.NewRequestModificationCommand(orderID, identity, modType, items, body.Reason)
	if err != nil {
		return s.fail(opRequestModification, err)
	}

	request, err := s.requestModificationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(opRequestModification, err)
	}

	s.metrics.ModificationRequests.WithLabelValues(request.Type().String()).Inc()
	return ctx.JSON(http.StatusOK, toModificationRequest(request))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(opCancelOrder, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromRaw(orderId)
	if err != nil {
		return s.fail(opCancelOrder, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity, body.Reason)
	if err != nil {
		return s.fail(opCancelOrder, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(opCancelOrder, err)
	}

	s.metrics.Cancellations.WithLabelValues(identity.Role().String()).Inc()
	return ctx.JSON(http.StatusOK, toOrder(cancelled))
}

// ReviewModification handles POST /api/v1/admin/order-modifications/{modificationId}/review.
func (s *Server) ReviewModification(ctx echo.Context, modificationId openapi_types.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return s.fail(opReviewModification,
			errs.NewForbiddenError(kernel.ReasonAdminOnly, "only administrators review modification requests"))
	}

	var body servers.ReviewModificationJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.fail(opReviewModification, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	modificationID, err := kernel.UUIDFromRaw(modificationId)
	if err != nil {
		return s.fail(opReviewModification, errs.NewValueIsInvalidErrorWithCause("modificationId", err))
	}
	decision, err := modification.ParseDecision(string(body.Status))
	if err != nil {
		return s.fail(opReviewModification, err)
	}
	adminResponse := ""
	if body.AdminResponse != nil {
		adminResponse = *body.AdminResponse
	}

	cmd, err := commands.NewReviewModificationCommand(modificationID, identity, decision, adminResponse)
	if err != nil {
		return s.fail(opReviewModification, err)
	}

	reviewed, err := s.reviewModificationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(opReviewModification, err)
	}

	s.metrics.Reviews.WithLabelValues(reviewed.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, toModificationRequest(reviewed))
}

// GetOrderModifications handles GET /api/v1/orders/{orderId}/modifications.
func (s *Server) GetOrderModifications(ctx echo.Context, orderId openapi_types.UUID) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromRaw(orderId)
	if err != nil {
		return s.fail(opGetOrderModifications, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderModificationsQuery(orderID, identity)
	if err != nil {
		return s.fail(opGetOrderModifications, err)
	}

	views, err := s.getOrderModificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(opGetOrderModifications, err)
	}

	return ctx.JSON(http.StatusOK, toModificationRequestViews(views))
}

// ListModifications handles GET /api/v1/admin/order-modifications.
func (s *Server) ListModifications(ctx echo.Context, params servers.ListModificationsParams) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return s.fail(opListModifications,
			errs.NewForbiddenError(kernel.ReasonAdminOnly, "only administrators list modification requests"))
	}

	var status *modification.Status
	if params.Status != nil {
		parsed, err := modification.ParseStatus(string(*params.Status))
		if err != nil {
			return s.fail(opListModifications, err)
		}
		status = &parsed
	}

	query, err := queries.NewListModificationsQuery(identity, status)
	if err != nil {
		return s.fail(opListModifications, err)
	}

	views, err := s.listModificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(opListModifications, err)
	}

	return ctx.JSON(http.StatusOK, toModificationRequestViews(views))
}

// fail counts a refused or failed operation and hands err to the error handler.
func (s *Server) fail(operation string, err error) error {
	_, reason := classify(err)
	s.metrics.WorkflowFailures.WithLabelValues(operation, reason).Inc()
	return err
}
