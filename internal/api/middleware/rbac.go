package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CtxAdmin holds the resolved admin capability of the caller.
const CtxAdmin = "admin"

// AdminResolver decides whether a user holds the admin capability.
type AdminResolver interface {
	IsAdmin(ctx context.Context, userID string, claimAdmin bool) (bool, error)
}

// ResolveAdmin combines the token claim with the role table and stores the
// outcome under CtxAdmin. It must run after Auth.
func ResolveAdmin(resolver AdminResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(CtxUserID).(string)
			claim, _ := c.Get(CtxClaimAdmin).(bool)

			admin, err := resolver.IsAdmin(c.Request().Context(), userID, claim)
			if err != nil {
				return err
			}
			c.Set(CtxAdmin, admin)
			return next(c)
		}
	}
}

// RequireAdmin rejects callers without the admin capability.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if admin, _ := c.Get(CtxAdmin).(bool); !admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
