package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Headers set by the gateway in front of the service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const identityContextKey = "orderflow.identity"

// IdentityMiddleware rejects requests without a valid caller identity with
// 401 and stores the identity on the context otherwise.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := parseIdentity(c.Request().Header)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error()).SetInternal(err)
			}
			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

func parseIdentity(header http.Header) (kernel.Identity, error) {
	rawID := strings.TrimSpace(header.Get(HeaderUserID))
	if rawID == "" {
		return kernel.Identity{}, errors.New("missing " + HeaderUserID + " header")
	}
	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Identity{}, fmt.Errorf("%s: %w", HeaderUserID, err)
	}

	rawRole := strings.TrimSpace(header.Get(HeaderUserRole))
	if rawRole == "" {
		return kernel.Identity{}, errors.New("missing " + HeaderUserRole + " header")
	}
	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return kernel.Identity{}, fmt.Errorf("%s: %w", HeaderUserRole, err)
	}

	return kernel.NewIdentity(userID, role)
}

func identityFrom(c echo.Context) (kernel.Identity, error) {
	identity, ok := c.Get(identityContextKey).(kernel.Identity)
	if !ok {
		return kernel.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing caller identity")
	}
	return identity, nil
}
