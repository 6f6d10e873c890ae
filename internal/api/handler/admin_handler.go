package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// AdminHandler serves the admin-only endpoints under /v1/admin.
type AdminHandler struct {
	overrides ports.OverrideService
	admins    ports.AdminService
}

func NewAdminHandler(overrides ports.OverrideService, admins ports.AdminService) *AdminHandler {
	return &AdminHandler{overrides: overrides, admins: admins}
}

// SetOverride handles PUT /v1/admin/users/:user_id/fields/:field/override.
//
// @Summary      Toggle the edit override of a governed field
// @Description  can_edit=true lets the owner edit a locked field again. The lock flag itself is never changed.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string           true  "Target user id"
// @Param        field    path      string           true  "Governed field"  Enums(emergency_info, user_role)
// @Param        body     body      overrideRequest  true  "Override flag"
// @Success      200      {object}  overrideResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/admin/users/{user_id}/fields/{field}/override [put]
func (h *AdminHandler) SetOverride(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	userID, field, err := pathField(c)
	if err != nil {
		return err
	}

	var req overrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.overrides.SetOverride(c.Request().Context(), actor, userID, field, *req.CanEdit); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overrideResponse{UserID: userID, Field: string(field), CanEdit: *req.CanEdit})
}

// ListLockStatuses handles GET /v1/admin/lock-statuses.
//
// @Summary      List lock flags of every member
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  lockStatusesResponse
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/admin/lock-statuses [get]
func (h *AdminHandler) ListLockStatuses(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.admins.ListLockStatuses(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lockStatusesResponse{Users: users})
}

// SetAdmin handles PUT /v1/admin/users/:user_id/admin.
//
// @Summary      Grant or revoke the admin capability
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string           true  "Target user id"
// @Param        body     body      setAdminRequest  true  "Admin flag"
// @Success      200      {object}  setAdminResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/admin/users/{user_id}/admin [put]
func (h *AdminHandler) SetAdmin(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	userID := c.Param("user_id")

	var req setAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admins.SetAdmin(c.Request().Context(), actor, userID, *req.IsAdmin); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setAdminResponse{UserID: userID, IsAdmin: *req.IsAdmin})
}

// RemoveMember handles DELETE /v1/admin/users/:user_id.
//
// @Summary      Remove a member and all of their stored data
// @Tags         admin
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Target user id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/admin/users/{user_id} [delete]
func (h *AdminHandler) RemoveMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.admins.RemoveMember(c.Request().Context(), actor, c.Param("user_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
