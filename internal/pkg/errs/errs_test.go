package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("non_string_id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("modificationId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("currency", errors.New("must be ISO 4217"))

		assert.Equal(t, "value is invalid: currency (cause: must be ISO 4217)", err.Error())
		assert.Equal(t, "value is invalid: currency", errs.NewValueIsInvalidError("currency").Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("reason")

		assert.Equal(t, "value is required: reason", err.Error())
		assert.Equal(t,
			"value is required: reason (cause: blank)",
			errs.NewValueIsRequiredErrorWithCause("reason", errors.New("blank")).Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("out_of_range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10000)

		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 10000, err.Max)
		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is 10000", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("out_of_range_value_is_single_line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("sku", "abc\ndef", 1, 64, errors.New("too long"))

		assert.Contains(t, err.Error(), "abc def")
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "(cause: too long)")
	})
}

func TestWorkflowErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		reason   string
		message  string
	}{
		{
			name:     "forbidden",
			err:      errs.NewForbiddenError("not_order_owner", "order belongs to another client"),
			sentinel: errs.ErrForbidden,
			reason:   "not_order_owner",
			message:  "forbidden: order belongs to another client",
		},
		{
			name:     "invalid_state",
			err:      errs.NewInvalidStateError("order_not_modifiable", "cannot modify a shipped order"),
			sentinel: errs.ErrInvalidState,
			reason:   "order_not_modifiable",
			message:  "invalid state: cannot modify a shipped order",
		},
		{
			name:     "conflict",
			err:      errs.NewConflictError("already_reviewed", "request was already reviewed"),
			sentinel: errs.ErrConflict,
			reason:   "already_reviewed",
			message:  "conflict: request was already reviewed",
		},
		{
			name: "conflict_with_cause",
			err: errs.NewConflictErrorWithCause(
				"modification_pending", "a request is already pending", errors.New("duplicate key")),
			sentinel: errs.ErrConflict,
			reason:   "modification_pending",
			message:  "conflict: a request is already pending (cause: duplicate key)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.reason, errs.ReasonOf(tt.err))

			wrapped := fmt.Errorf("handle: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.reason, errs.ReasonOf(wrapped))
		})
	}
}

func TestReasonOf_NonWorkflowError(t *testing.T) {
	assert.Empty(t, errs.ReasonOf(errs.NewValueIsRequiredError("reason")))
	assert.Empty(t, errs.ReasonOf(nil))
}
