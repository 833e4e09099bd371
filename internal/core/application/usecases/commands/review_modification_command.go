package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrReviewModificationCommandIsNotConstructed = errors.New(
	"ReviewModificationCommand must be created via NewReviewModificationCommand constructor",
)

// ReviewModificationCommand is an administrator's decision on a pending request.
type ReviewModificationCommand struct { //nolint:recvcheck //using for validation
	modificationID kernel.UUID
	reviewer       kernel.Identity
	decision       modification.Status
	adminResponse  string

	guard guard.ConstructorGuard
}

// NewReviewModificationCommand accepts only StatusApproved or StatusRejected
// as decision. adminResponse is optional.
func NewReviewModificationCommand(
	modificationID kernel.UUID,
	reviewer kernel.Identity,
	decision modification.Status,
	adminResponse string,
) (ReviewModificationCommand, error) {
	cmd := ReviewModificationCommand{
		adminResponse: adminResponse,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setModificationID(modificationID),
		cmd.setReviewer(reviewer),
		cmd.setDecision(decision),
	); err != nil {
		return ReviewModificationCommand{}, err
	}

	return cmd, nil
}

func (c ReviewModificationCommand) Validate() error {
	return c.guard.Validate(ErrReviewModificationCommandIsNotConstructed)
}

func (c ReviewModificationCommand) ModificationID() kernel.UUID   { return c.modificationID }
func (c ReviewModificationCommand) Reviewer() kernel.Identity     { return c.reviewer }
func (c ReviewModificationCommand) Decision() modification.Status { return c.decision }
func (c ReviewModificationCommand) AdminResponse() string         { return c.adminResponse }

func (c *ReviewModificationCommand) setModificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("modificationId", err)
	}
	c.modificationID = id
	return nil
}

func (c *ReviewModificationCommand) setReviewer(reviewer kernel.Identity) error {
	if err := reviewer.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("reviewer", err)
	}
	c.reviewer = reviewer
	return nil
}

func (c *ReviewModificationCommand) setDecision(decision modification.Status) error {
	if !decision.IsDecision() {
		return errs.NewValueIsInvalidError("status")
	}
	c.decision = decision
	return nil
}
