package handler

import (
	"github.com/hikeplan/trip-planner/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type emergencyInfoRequest struct {
	ContactName     string `json:"contact_name"     validate:"required,max=100"`
	ContactPhone    string `json:"contact_phone"    validate:"required,max=50"`
	InsurancePolicy string `json:"insurance_policy" validate:"max=200"`
	PoliceStation   string `json:"police_station"   validate:"max=200"`
}

func (r emergencyInfoRequest) toDomain() domain.EmergencyInfo {
	return domain.EmergencyInfo{
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
		InsurancePolicy: r.InsurancePolicy,
		PoliceStation:   r.PoliceStation,
	}
}

type userRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=leader chef photographer traveler"`
}

type overrideRequest struct {
	CanEdit *bool `json:"can_edit" validate:"required"`
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

// fieldResponse mirrors domain.Projection for the API docs.
type fieldResponse struct {
	Field   string `json:"field"    example:"emergency_info"`
	Value   any    `json:"value"`
	Locked  bool   `json:"locked"`
	CanEdit bool   `json:"can_edit"`
	State   string `json:"state"    example:"locked_sealed"`
}

func toFieldResponse(p domain.Projection) fieldResponse {
	return fieldResponse{
		Field:   string(p.Field),
		Value:   p.Value,
		Locked:  p.Locked,
		CanEdit: p.CanEdit,
		State:   string(p.State()),
	}
}

type overrideResponse struct {
	UserID  string `json:"user_id"`
	Field   string `json:"field"`
	CanEdit bool   `json:"can_edit"`
}

type lockStatusesResponse struct {
	Users []domain.UserLockStatus `json:"users"`
}

type setAdminResponse struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}
