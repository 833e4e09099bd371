package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Confirmed,
	order.Processing,
	order.Shipped,
	order.Delivered,
	order.Cancelled,
	order.ModificationRequested,
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(status.String(), func(t *testing.T) {
			require.NoError(t, status.Validate())

			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}
}

func TestStatus_UnknownValues(t *testing.T) {
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "unknown", order.Status(42).String())

	_, err := order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = order.ParseStatus("Pending")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Policy(t *testing.T) {
	tests := []struct {
		status     order.Status
		canModify  bool
		canCancel  bool
		cancelKind error
	}{
		{status: order.Pending, canModify: true, canCancel: true},
		{status: order.Confirmed, canModify: true, canCancel: true},
		{status: order.Processing, canModify: true, canCancel: true},
		{status: order.ModificationRequested, canModify: true, canCancel: true},
		{status: order.Shipped, cancelKind: errs.ErrInvalidState},
		{status: order.Delivered, cancelKind: errs.ErrInvalidState},
		{status: order.Cancelled, cancelKind: errs.ErrConflict},
		{status: order.Unknown, cancelKind: errs.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.canModify, tt.status.CanModify())
			assert.Equal(t, tt.canCancel, tt.status.CanCancel())

			if tt.canModify {
				require.NoError(t, tt.status.ValidateModify())
			} else {
				err := tt.status.ValidateModify()
				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, order.ReasonOrderNotModifiable, errs.ReasonOf(err))
			}

			if tt.canCancel {
				require.NoError(t, tt.status.ValidateCancel())
			} else {
				require.ErrorIs(t, tt.status.ValidateCancel(), tt.cancelKind)
			}
		})
	}
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("request_modification", func(t *testing.T) {
		next, err := order.Confirmed.RequestModification()
		require.NoError(t, err)
		assert.Equal(t, order.ModificationRequested, next)

		_, err = order.Shipped.RequestModification()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("resolve_modification", func(t *testing.T) {
		next, err := order.ModificationRequested.ResolveModification()
		require.NoError(t, err)
		assert.Equal(t, order.Pending, next)

		_, err = order.Processing.ResolveModification()
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.ReasonNotAwaitingReview, errs.ReasonOf(err))
	})

	t.Run("cancel", func(t *testing.T) {
		next, err := order.ModificationRequested.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)

		_, err = order.Cancelled.Cancel()
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.ReasonAlreadyCancelled, errs.ReasonOf(err))

		_, err = order.Delivered.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.ReasonOrderNotCancellable, errs.ReasonOf(err))
	})
}

func TestStatus_PolicyProperty(t *testing.T) {
	locked := map[order.Status]bool{order.Shipped: true, order.Delivered: true, order.Cancelled: true}

	rapid.Check(t, func(t *rapid.T) {
		status := order.Status(rapid.IntRange(-2, 12).Draw(t, "status"))
		valid := status.Validate() == nil

		if status.CanModify() != (valid && !locked[status]) {
			t.Fatalf("CanModify(%d) = %v", int(status), status.CanModify())
		}
		if status.CanCancel() != (valid && !locked[status]) {
			t.Fatalf("CanCancel(%d) = %v", int(status), status.CanCancel())
		}
	})
}
