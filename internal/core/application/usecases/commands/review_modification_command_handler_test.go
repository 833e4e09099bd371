package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reviewCommand(
	t *testing.T, r *modification.Request, decision modification.Status, response string,
) (commands.ReviewModificationCommand, kernel.Identity) {
	t.Helper()
	admin := identity(t, kernel.NewUUID(), kernel.RoleAdmin)
	cmd, err := commands.NewReviewModificationCommand(r.ID(), admin, decision, response)
	require.NoError(t, err)
	return cmd, admin
}

// expectReview wires the lookups every review performs before deciding.
func expectReview(t *testing.T, m *workflowMocks, o *order.Order, r *modification.Request) []*mock.Call {
	t.Helper()
	ctx := t.Context()
	return []*mock.Call{
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.modifications.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		m.modifications.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
	}
}

func TestReviewModificationCommandHandler_Handle_ApproveItems(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.ModificationRequested)
	r := pendingRequest(t, o, modification.TypeItems, widgets(t, "10.00", 2))
	cmd, admin := reviewCommand(t, r, modification.StatusApproved, "ok")

	m := newWorkflowMocks()
	calls := expectReview(t, m, o, r)
	calls = append(calls,
		m.modifications.On("Update", ctx, mock.MatchedBy(func(r *modification.Request) bool {
			return r.Status() == modification.StatusApproved && r.ReviewedBy().IsEqual(admin.UserID())
		})).Return(nil).Once(),
		m.orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Pending && o.TotalAmount().String() == "20"
		})).Return(nil).Once(),
		m.outbox.On("Enqueue", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.EventType() == notification.EventModificationApproved &&
				n.RecipientID().IsEqual(o.ClientID()) &&
				n.Payload().AdminResponse == "ok"
		})).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	reviewed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, modification.StatusApproved, reviewed.Status())
	assert.Equal(t, 2, o.Items()[0].Quantity())
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_ApproveCancel(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.ModificationRequested)
	r := pendingRequest(t, o, modification.TypeCancel, nil)
	cmd, _ := reviewCommand(t, r, modification.StatusApproved, "")

	m := newWorkflowMocks()
	calls := expectReview(t, m, o, r)
	calls = append(calls,
		m.modifications.On("Update", ctx, r).Return(nil).Once(),
		m.orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Cancelled && o.Cancellation().By().IsEqual(r.RequestedBy())
		})).Return(nil).Once(),
		m.outbox.On("Enqueue", ctx, mock.Anything).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	_, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "please", o.Cancellation().Reason())
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_Reject(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.ModificationRequested)
	r := pendingRequest(t, o, modification.TypeItems, widgets(t, "10.00", 5))
	cmd, _ := reviewCommand(t, r, modification.StatusRejected, "out of stock")

	m := newWorkflowMocks()
	calls := expectReview(t, m, o, r)
	calls = append(calls,
		m.modifications.On("Update", ctx, r).Return(nil).Once(),
		m.orders.On("Update", ctx, o).Return(nil).Once(),
		m.outbox.On("Enqueue", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.EventType() == notification.EventModificationRejected
		})).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	_, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, "10", o.TotalAmount().String())
	assert.Equal(t, 1, o.Items()[0].Quantity())
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_AlreadyReviewed(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.Pending)
	r := pendingRequest(t, o, modification.TypeCancel, nil)
	require.NoError(t, r.Review(modification.StatusRejected, kernel.NewUUID(), "no", time.Now()))
	cmd, _ := reviewCommand(t, r, modification.StatusApproved, "")

	m := newWorkflowMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.modifications.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, modification.ReasonAlreadyReviewed, errs.ReasonOf(err))
	assert.Equal(t, modification.StatusRejected, r.Status())
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.ModificationRequested)
	r := pendingRequest(t, o, modification.TypeCancel, nil)
	cmd, _ := reviewCommand(t, r, modification.StatusApproved, "")

	m := newWorkflowMocks()
	calls := expectReview(t, m, o, r)
	calls = append(calls,
		m.modifications.On("Update", ctx, r).
			Return(errs.NewConflictError(modification.ReasonAlreadyReviewed, "no longer pending")).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	mock.InOrder(calls...)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	m.outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, kernel.NewUUID(), order.ModificationRequested)
	r := pendingRequest(t, o, modification.TypeCancel, nil)
	cmd, _ := reviewCommand(t, r, modification.StatusApproved, "")

	m := newWorkflowMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.modifications.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		m.orders.On("GetForUpdate", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("orderId", o.ID())).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewReviewModificationCommandHandler(m.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderOfRequestMissing)
	require.NotErrorIs(t, err, errs.ErrObjectNotFound)
	m.assertExpectations(t)
}

func TestReviewModificationCommandHandler_Handle_ClientIsForbidden(t *testing.T) {
	client := identity(t, kernel.NewUUID(), kernel.RoleClient)
	cmd, err := commands.NewReviewModificationCommand(kernel.NewUUID(), client, modification.StatusApproved, "")
	require.NoError(t, err)
	factory := new(MockWorkflowUoWFactory)

	h := commands.NewReviewModificationCommandHandler(factory)
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}
