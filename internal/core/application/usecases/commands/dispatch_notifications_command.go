package commands

import (
	"errors"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

const (
	maxDispatchBatchSize = 1000
	maxDeliveryAttempts  = 100
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand relays one batch of queued notifications.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize, maxAttempts int) (DispatchNotificationsCommand, error) {
	cmd := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchSize(batchSize),
		cmd.setMaxAttempts(maxAttempts),
	); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return cmd, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int   { return c.batchSize }
func (c DispatchNotificationsCommand) MaxAttempts() int { return c.maxAttempts }

func (c *DispatchNotificationsCommand) setBatchSize(batchSize int) error {
	if batchSize < 1 || batchSize > maxDispatchBatchSize {
		return errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxDispatchBatchSize)
	}
	c.batchSize = batchSize
	return nil
}

func (c *DispatchNotificationsCommand) setMaxAttempts(maxAttempts int) error {
	if maxAttempts < 1 || maxAttempts > maxDeliveryAttempts {
		return errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, maxDeliveryAttempts)
	}
	c.maxAttempts = maxAttempts
	return nil
}
