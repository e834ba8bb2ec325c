package http

import (
	"strconv"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Authentication happens in front of this service. The gateway forwards the
// signed-in user as X-User-ID and X-User-Email; guests are identified by the
// email they give.
const (
	userIDHeader    = "X-User-ID"
	userEmailHeader = "X-User-Email"
)

// identity resolves the caller. fallbackEmail is used for guests when the
// request has no ?email= parameter.
func identity(c echo.Context, fallbackEmail string) (kernel.Identity, error) {
	if raw := strings.TrimSpace(c.Request().Header.Get(userIDHeader)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return kernel.Identity{}, errs.NewValueIsInvalidErrorWithCause("user id", err)
		}
		return kernel.NewUserIdentity(id, c.Request().Header.Get(userEmailHeader))
	}

	email := c.QueryParam("email")
	if strings.TrimSpace(email) == "" {
		email = fallbackEmail
	}
	return kernel.NewGuestIdentity(email)
}

// userIdentity is the signed-in user, or nil for guests.
func userIdentity(c echo.Context) (*kernel.Identity, error) {
	if strings.TrimSpace(c.Request().Header.Get(userIDHeader)) == "" {
		return nil, nil //nolint:nilnil // guest
	}
	id, err := identity(c, "")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// actor attributes staff and customer API actions.
func (s *Server) actor(c echo.Context) kernel.Actor {
	if id, err := identity(c, ""); err == nil {
		return id.Actor()
	}
	return kernel.RestoreActor(nil, "staff")
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValueIsInvalidError(name)
	}
	return id, nil
}
