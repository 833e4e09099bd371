package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockModificationRepository struct{ mock.Mock }

func (m *MockModificationRepository) Add(ctx context.Context, r *modification.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockModificationRepository) Update(ctx context.Context, r *modification.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockModificationRepository) Get(ctx context.Context, id kernel.UUID) (*modification.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

func (m *MockModificationRepository) GetForUpdate(
	ctx context.Context, id kernel.UUID,
) (*modification.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

func (m *MockModificationRepository) FindPendingByOrder(
	ctx context.Context, orderID kernel.UUID,
) (*modification.Request, error) {
	args := m.Called(ctx, orderID)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Enqueue(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockOutbox) ClaimPending(ctx context.Context, limit, maxAttempts int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit, maxAttempts)
	batch, _ := args.Get(0).([]*notification.Notification)
	return batch, args.Error(1)
}

func (m *MockOutbox) MarkDelivered(ctx context.Context, id kernel.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockOutbox) MarkFailed(ctx context.Context, id kernel.UUID, cause error) error {
	return m.Called(ctx, id, cause).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockWorkflowUoW struct{ mock.Mock }

func (m *MockWorkflowUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockWorkflowUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockWorkflowUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockWorkflowUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockWorkflowUoW) ModificationRepository() ports.ModificationRepository {
	return m.Called().Get(0).(ports.ModificationRepository)
}

func (m *MockWorkflowUoW) NotificationOutbox() ports.NotificationOutbox {
	return m.Called().Get(0).(ports.NotificationOutbox)
}

type MockWorkflowUoWFactory struct{ mock.Mock }

func (m *MockWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return m.Called().Get(0).(commands.WorkflowUoW)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOutboxUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOutboxUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOutboxUoW) NotificationOutbox() ports.NotificationOutbox {
	return m.Called().Get(0).(ports.NotificationOutbox)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

// workflowMocks bundles one unit of work with its repositories.
type workflowMocks struct {
	factory       *MockWorkflowUoWFactory
	uow           *MockWorkflowUoW
	orders        *MockOrderRepository
	modifications *MockModificationRepository
	outbox        *MockOutbox
}

func newWorkflowMocks() *workflowMocks {
	m := &workflowMocks{
		factory:       new(MockWorkflowUoWFactory),
		uow:           new(MockWorkflowUoW),
		orders:        new(MockOrderRepository),
		modifications: new(MockModificationRepository),
		outbox:        new(MockOutbox),
	}
	m.factory.On("Create").Return(m.uow).Once()
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("ModificationRepository").Return(m.modifications).Maybe()
	m.uow.On("NotificationOutbox").Return(m.outbox).Maybe()
	return m
}

func (m *workflowMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.modifications.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

func identity(t *testing.T, userID kernel.UUID, role kernel.Role) kernel.Identity {
	t.Helper()
	id, err := kernel.NewIdentity(userID, role)
	require.NoError(t, err)
	return id
}

func widgets(t *testing.T, price string, qty int) order.Items {
	t.Helper()
	item, err := order.NewLineItem("widget", "W-1", decimal.RequireFromString(price), qty, "USD")
	require.NoError(t, err)
	items, err := order.NewItems(item)
	require.NoError(t, err)
	return items
}

// orderInStatus restores a $10.00 order for client in the given status.
func orderInStatus(t *testing.T, client kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	var cancellation *order.Cancellation
	if status == order.Cancelled {
		c, err := order.NewCancellation("earlier", time.Now(), client)
		require.NoError(t, err)
		cancellation = &c
	}
	items := widgets(t, "10.00", 1)
	o, err := order.RestoreOrder(kernel.NewUUID(), client, nil, items, items.Total(), status, cancellation)
	require.NoError(t, err)
	return o
}

func pendingRequest(
	t *testing.T, o *order.Order, modType modification.Type, items order.Items,
) *modification.Request {
	t.Helper()
	r, err := modification.NewRequest(kernel.NewUUID(), o.ID(), o.ClientID(), modType, items, "please", time.Now())
	require.NoError(t, err)
	return r
}
