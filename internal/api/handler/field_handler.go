package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// FieldHandler serves the owner-facing governed field endpoints.
type FieldHandler struct {
	service ports.FieldService
}

func NewFieldHandler(service ports.FieldService) *FieldHandler {
	return &FieldHandler{service: service}
}

// Get handles GET /v1/users/:user_id/fields/:field.
//
// @Summary      Read a governed field
// @Description  Returns the projected value and lock flags. Fields never written project to defaults.
// @Tags         fields
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Owner user id"
// @Param        field    path      string  true  "Governed field"  Enums(emergency_info, user_role)
// @Success      200      {object}  fieldResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/users/{user_id}/fields/{field} [get]
func (h *FieldHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	userID, field, err := pathField(c)
	if err != nil {
		return err
	}
	if err := authorizeRead(actor, userID); err != nil {
		return err
	}

	p, err := h.service.ProjectField(c.Request().Context(), userID, field)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFieldResponse(p))
}

// Put handles PUT /v1/users/:user_id/fields/:field.
//
// The body is the field payload: an emergency info object, or {"role": "..."}
// for user_role. The first accepted write seals the field.
//
// @Summary      Write a governed field
// @Tags         fields
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string                true  "Owner user id"
// @Param        field    path      string                true  "Governed field"  Enums(emergency_info, user_role)
// @Param        body     body      emergencyInfoRequest  true  "Payload (userRoleRequest for user_role)"
// @Success      200      {object}  fieldResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/users/{user_id}/fields/{field} [put]
func (h *FieldHandler) Put(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	userID, field, err := pathField(c)
	if err != nil {
		return err
	}

	value, err := bindFieldValue(c, field)
	if err != nil {
		return err
	}

	p, err := h.service.WriteField(c.Request().Context(), actor, userID, field, value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFieldResponse(p))
}

// Watch handles GET /v1/users/:user_id/fields/:field/watch.
//
// @Summary      Stream projections of a governed field
// @Description  Server-sent events; one "projection" event now and one after every change.
// @Tags         fields
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        user_id  path  string  true  "Owner user id"
// @Param        field    path  string  true  "Governed field"  Enums(emergency_info, user_role)
// @Success      200      {object}  fieldResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/users/{user_id}/fields/{field}/watch [get]
func (h *FieldHandler) Watch(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	userID, field, err := pathField(c)
	if err != nil {
		return err
	}
	if err := authorizeRead(actor, userID); err != nil {
		return err
	}

	updates, err := h.service.Watch(c.Request().Context(), userID, field)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for p := range updates {
		data, err := json.Marshal(toFieldResponse(p))
		if err != nil {
			return nil
		}
		if _, err := fmt.Fprintf(res, "event: projection\ndata: %s\n\n", data); err != nil {
			return nil
		}
		res.Flush()
	}
	return nil
}

// bindFieldValue decodes and validates the request body for field.
func bindFieldValue(c echo.Context, field domain.FieldName) (any, error) {
	switch field {
	case domain.FieldEmergencyInfo:
		var req emergencyInfoRequest
		if err := c.Bind(&req); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return nil, err
		}
		return req.toDomain(), nil
	case domain.FieldUserRole:
		var req userRoleRequest
		if err := c.Bind(&req); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return nil, err
		}
		return domain.Role(req.Role), nil
	default:
		return nil, domain.ErrUnknownField
	}
}
