package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawField holds the stored documents of one governed field. A nil entry
// means the row does not exist.
type RawField struct {
	Value   json.RawMessage
	Locked  json.RawMessage
	CanEdit json.RawMessage
}

// Projection is the typed view of a governed field for one user.
type Projection struct {
	Field   FieldName `json:"field"`
	Value   any       `json:"value"`
	Locked  bool      `json:"locked"`
	CanEdit bool      `json:"can_edit"`
}

// State returns the lock state encoded by the projection flags.
func (p Projection) State() LockState { return StateOf(p.Locked, p.CanEdit) }

// EmergencyInfo returns the payload when the projection is of emergency_info.
func (p Projection) EmergencyInfo() (EmergencyInfo, bool) {
	v, ok := p.Value.(EmergencyInfo)
	return v, ok
}

// Role returns the payload when the projection is of user_role.
func (p Projection) Role() (Role, bool) {
	v, ok := p.Value.(Role)
	return v, ok
}

// Project resolves the raw rows of field into a Projection. It never fails:
// absent or malformed rows project to false flags and the default payload.
func Project(field FieldName, raw RawField, d Defaults) Projection {
	return Projection{
		Field:   field,
		Value:   decodeValue(field, raw.Value, d),
		Locked:  CoerceBool(raw.Locked),
		CanEdit: CoerceBool(raw.CanEdit),
	}
}

// CoerceBool is the single truthiness rule for stored flags: JSON true or
// the string "true" in any case. Everything else, absence included, is false.
func CoerceBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return CoerceFlag(v)
}

// CoerceFlag applies the CoerceBool rule to an already decoded value, such
// as a token claim.
func CoerceFlag(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

// EncodeFlag renders a flag the way the rest of the application stores it.
func EncodeFlag(b bool) json.RawMessage {
	if b {
		return json.RawMessage(`"true"`)
	}
	return json.RawMessage(`"false"`)
}

// EncodeValue checks v against field and marshals it for storage.
func EncodeValue(field FieldName, v any) (json.RawMessage, error) {
	if err := CheckValue(field, v); err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", field, err)
	}
	return b, nil
}

func decodeValue(field FieldName, raw json.RawMessage, d Defaults) any {
	switch field {
	case FieldEmergencyInfo:
		return decodeEmergencyInfo(raw, d)
	case FieldUserRole:
		return decodeRole(raw)
	default:
		return d.DefaultValue(field)
	}
}

// decodeEmergencyInfo accepts an object or a string holding an object.
func decodeEmergencyInfo(raw json.RawMessage, d Defaults) EmergencyInfo {
	def := EmergencyInfo{PoliceStation: d.policeStation()}
	if len(raw) == 0 {
		return def
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}

	var info EmergencyInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return def
	}
	if info.PoliceStation == "" {
		info.PoliceStation = def.PoliceStation
	}
	return info
}

func decodeRole(raw json.RawMessage) Role {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	if r := Role(s); r.Valid() {
		return r
	}
	return ""
}
