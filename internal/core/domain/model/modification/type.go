package modification

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Type is what the client asks for.
type Type int

const (
	TypeUnknown Type = iota
	TypeItems
	TypeCancel
)

func (t Type) String() string {
	switch t {
	case TypeItems:
		return "items"
	case TypeCancel:
		return "cancel"
	case TypeUnknown:
		return "unknown"
	}
	return "unknown"
}

func ParseType(s string) (Type, error) {
	switch s {
	case "items":
		return TypeItems, nil
	case "cancel":
		return TypeCancel, nil
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("modificationType",
		fmt.Errorf("%q is not one of items, cancel", s))
}

// Status of a request. Pending is the only non-terminal value.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusUnknown:
		return "unknown"
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not one of pending, approved, rejected", s))
}

// ParseDecision accepts only the two review outcomes.
func ParseDecision(s string) (Status, error) {
	status, err := ParseStatus(s)
	if err != nil || !status.IsDecision() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not one of approved, rejected", s))
	}
	return status, nil
}

// IsDecision reports whether s is a valid review outcome.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}
