package kernel

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// Role distinguishes store administrators from ordering clients.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleClient
)

// Reasons attached to ForbiddenError by authorization checks.
const (
	ReasonNotOrderOwner = "not_order_owner"
	ReasonAdminOnly     = "admin_only"
)

var ErrIdentityIsNotConstructed = errors.New("identity must be created via NewIdentity")

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleClient:
		return "client"
	case RoleUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseRole accepts "admin" and "client", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "client":
		return RoleClient, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unsupported role %q", s))
}

// Identity is the authenticated caller of a workflow operation.
type Identity struct {
	userID UUID
	role   Role
	guard  guard.ConstructorGuard
}

func NewIdentity(userID UUID, role Role) (Identity, error) {
	if err := userID.Validate(); err != nil {
		return Identity{}, errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	if role != RoleAdmin && role != RoleClient {
		return Identity{}, errs.NewValueIsInvalidError("role")
	}
	return Identity{userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (i Identity) UserID() UUID {
	return i.userID
}

func (i Identity) Role() Role {
	return i.role
}

func (i Identity) IsAdmin() bool {
	return i.role == RoleAdmin
}

// Is reports whether the identity belongs to the given user.
func (i Identity) Is(userID UUID) bool {
	return i.userID.IsEqual(userID)
}

func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}
