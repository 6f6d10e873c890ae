package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/hikeplan/trip-planner/internal/api/middleware"
	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// ctxActor builds the caller from the values injected by the Auth and
// ResolveAdmin middleware. A missing user id means the middleware did not
// run and the request is rejected as unauthenticated.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	admin, _ := c.Get(middleware.CtxAdmin).(bool)
	return domain.Actor{UserID: userID, Admin: admin}, nil
}

// pathField parses the :user_id and :field path parameters.
func pathField(c echo.Context) (string, domain.FieldName, error) {
	userID := c.Param("user_id")
	if userID == "" {
		return "", "", fmt.Errorf("%w: user_id is required", domain.ErrInvalidValue)
	}
	field, err := domain.ParseFieldName(c.Param("field"))
	if err != nil {
		return "", "", err
	}
	return userID, field, nil
}

// authorizeRead lets owners read their own fields and admins read anyone's.
func authorizeRead(actor domain.Actor, userID string) error {
	if actor.Owns(userID) || actor.Admin {
		return nil
	}
	return fmt.Errorf("read %s: %w", userID, domain.ErrPermissionDenied)
}
