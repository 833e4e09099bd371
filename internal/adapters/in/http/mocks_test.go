package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "orderflow/internal/adapters/in/http"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestModificationHandler struct{ mock.Mock }

func (m *MockRequestModificationHandler) Handle(
	ctx context.Context, cmd commands.RequestModificationCommand,
) (*modification.Request, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockReviewModificationHandler struct{ mock.Mock }

func (m *MockReviewModificationHandler) Handle(
	ctx context.Context, cmd commands.ReviewModificationCommand,
) (*modification.Request, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

type MockGetOrderModificationsHandler struct{ mock.Mock }

func (m *MockGetOrderModificationsHandler) Handle(
	ctx context.Context, query queries.GetOrderModificationsQuery,
) ([]queries.ModificationView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.ModificationView)
	return views, args.Error(1)
}

type MockListModificationsHandler struct{ mock.Mock }

func (m *MockListModificationsHandler) Handle(
	ctx context.Context, query queries.ListModificationsQuery,
) ([]queries.ModificationView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.ModificationView)
	return views, args.Error(1)
}

type fixture struct {
	echo    *echo.Echo
	metrics *metrics.Metrics

	requestModification   *MockRequestModificationHandler
	cancelOrder           *MockCancelOrderHandler
	reviewModification    *MockReviewModificationHandler
	getOrderModifications *MockGetOrderModificationsHandler
	listModifications     *MockListModificationsHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		metrics:               metrics.New(),
		requestModification:   &MockRequestModificationHandler{},
		cancelOrder:           &MockCancelOrderHandler{},
		reviewModification:    &MockReviewModificationHandler{},
		getOrderModifications: &MockGetOrderModificationsHandler{},
		listModifications:     &MockListModificationsHandler{},
	}
	server := api.NewServer(
		f.requestModification,
		f.cancelOrder,
		f.reviewModification,
		f.getOrderModifications,
		f.listModifications,
		f.metrics,
	)
	e, err := api.NewRouter(t.Context(), api.RouterConfig{
		Server:  server,
		Metrics: f.metrics,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	f.echo = e
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.requestModification.AssertExpectations(t)
	f.cancelOrder.AssertExpectations(t)
	f.reviewModification.AssertExpectations(t)
	f.getOrderModifications.AssertExpectations(t)
	f.listModifications.AssertExpectations(t)
}

type caller struct {
	id   kernel.UUID
	role string
}

func client() caller { return caller{id: kernel.NewUUID(), role: "client"} }
func admin() caller  { return caller{id: kernel.NewUUID(), role: "admin"} }

func (f *fixture) do(t *testing.T, as *caller, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if as != nil {
		req.Header.Set(api.HeaderUserID, as.id.String())
		req.Header.Set(api.HeaderUserRole, as.role)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func widgets(t *testing.T, price string, qty int) order.Items {
	t.Helper()
	item, err := order.NewLineItem("widget", "W-1", decimal.RequireFromString(price), qty, "EUR")
	require.NoError(t, err)
	items, err := order.NewItems(item)
	require.NoError(t, err)
	return items
}

func ownedOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, nil, widgets(t, "10.00", 1))
	require.NoError(t, err)
	return o
}

func itemsRequest(t *testing.T, orderID, requestedBy kernel.UUID) *modification.Request {
	t.Helper()
	r, err := modification.NewRequest(kernel.NewUUID(), orderID, requestedBy,
		modification.TypeItems, widgets(t, "10.00", 2), "need two", time.Now())
	require.NoError(t, err)
	return r
}
