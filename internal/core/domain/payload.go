package domain

import (
	"fmt"
	"strings"
)

// DefaultPoliceStation is the police post pre-filled into emergency info.
const DefaultPoliceStation = "武陵農場小隊 (04-25901350)"

// EmergencyInfo is the payload of the emergency_info field.
type EmergencyInfo struct {
	ContactName     string `json:"contact_name"`
	ContactPhone    string `json:"contact_phone"`
	InsurancePolicy string `json:"insurance_policy"`
	PoliceStation   string `json:"police_station"`
}

// Validate checks the fields a member must fill before the info is sealed.
func (e EmergencyInfo) Validate() error {
	if strings.TrimSpace(e.ContactName) == "" {
		return fmt.Errorf("%w: contact_name is required", ErrInvalidValue)
	}
	if strings.TrimSpace(e.ContactPhone) == "" {
		return fmt.Errorf("%w: contact_phone is required", ErrInvalidValue)
	}
	return nil
}

// Role is the payload of the user_role field.
type Role string

const (
	RoleLeader       Role = "leader"
	RoleChef         Role = "chef"
	RolePhotographer Role = "photographer"
	RoleTraveler     Role = "traveler"
)

// Roles lists the selectable trip roles.
var Roles = []Role{RoleLeader, RoleChef, RolePhotographer, RoleTraveler}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Defaults carries the values projected for fields that were never written.
type Defaults struct {
	PoliceStation string
}

// DefaultValue returns the zero payload of field.
func (d Defaults) DefaultValue(field FieldName) any {
	switch field {
	case FieldEmergencyInfo:
		return EmergencyInfo{PoliceStation: d.policeStation()}
	case FieldUserRole:
		return Role("")
	default:
		return nil
	}
}

func (d Defaults) policeStation() string {
	if d.PoliceStation == "" {
		return DefaultPoliceStation
	}
	return d.PoliceStation
}

// CheckValue verifies v is a well-formed payload for field.
func CheckValue(field FieldName, v any) error {
	switch field {
	case FieldEmergencyInfo:
		info, ok := v.(EmergencyInfo)
		if !ok {
			return fmt.Errorf("%w: expected emergency info, got %T", ErrInvalidValue, v)
		}
		return info.Validate()
	case FieldUserRole:
		role, ok := v.(Role)
		if !ok {
			return fmt.Errorf("%w: expected role, got %T", ErrInvalidValue, v)
		}
		if !role.Valid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidValue, role)
		}
		return nil
	default:
		return ErrUnknownField
	}
}
