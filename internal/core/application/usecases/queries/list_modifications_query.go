package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrListModificationsQueryIsNotConstructed = errors.New(
		"ListModificationsQuery must be created via NewListModificationsQuery constructor",
	)
)

// ListModificationsQuery is the administrator's review queue: every request,
// optionally narrowed to one status, newest first.
type ListModificationsQuery struct {
	viewer kernel.Identity
	status *modification.Status

	guard guard.ConstructorGuard
}

// NewListModificationsQuery takes a nil status to list requests of any status.
func NewListModificationsQuery(viewer kernel.Identity, status *modification.Status) (ListModificationsQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListModificationsQuery{}, errs.NewValueIsRequiredErrorWithCause("viewer", err)
	}

	query := ListModificationsQuery{
		viewer: viewer,
		guard:  guard.NewConstructorGuard(),
	}
	if status != nil {
		if *status == modification.StatusUnknown {
			return ListModificationsQuery{}, errs.NewValueIsInvalidError("status")
		}
		s := *status
		query.status = &s
	}

	return query, nil
}

func (q ListModificationsQuery) Validate() error {
	return q.guard.Validate(ErrListModificationsQueryIsNotConstructed)
}

func (q ListModificationsQuery) Viewer() kernel.Identity { return q.viewer }

func (q ListModificationsQuery) Status() *modification.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}
