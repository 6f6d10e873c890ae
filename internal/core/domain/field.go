package domain

// FieldName identifies a governed, user-owned field.
type FieldName string

const (
	FieldEmergencyInfo FieldName = "emergency_info"
	FieldUserRole      FieldName = "user_role"
)

const (
	lockedSuffix  = "_locked"
	canEditSuffix = "_can_edit"
)

// GovernedFields lists every field subject to lock-on-write.
var GovernedFields = []FieldName{FieldEmergencyInfo, FieldUserRole}

// ParseFieldName returns the governed field named s.
func ParseFieldName(s string) (FieldName, error) {
	for _, f := range GovernedFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// ValueKey is the store key holding the field payload.
func (f FieldName) ValueKey() string { return string(f) }

// LockedKey is the store key holding the one-shot lock flag.
func (f FieldName) LockedKey() string { return string(f) + lockedSuffix }

// CanEditKey is the store key holding the admin override flag.
func (f FieldName) CanEditKey() string { return string(f) + canEditSuffix }

// Keys returns the three correlated store keys of the field.
func (f FieldName) Keys() []string {
	return []string{f.ValueKey(), f.LockedKey(), f.CanEditKey()}
}

// Owns reports whether key is one of the field's rows.
func (f FieldName) Owns(key string) bool {
	return key == f.ValueKey() || key == f.LockedKey() || key == f.CanEditKey()
}

// LockState is the lifecycle state of a governed field.
type LockState string

const (
	StateUnlocked     LockState = "unlocked"
	StateLockedSealed LockState = "locked_sealed"
	StateLockedOpen   LockState = "locked_open"
)

// StateOf folds the two flags into a LockState. canEdit is ignored while
// the field is unlocked.
func StateOf(locked, canEdit bool) LockState {
	switch {
	case !locked:
		return StateUnlocked
	case canEdit:
		return StateLockedOpen
	default:
		return StateLockedSealed
	}
}

// WriteDecision is the outcome of an owner write attempt.
type WriteDecision struct {
	// Next is the state after the write is applied.
	Next LockState
	// SetLock is true when the write must also persist locked=true.
	SetLock bool
	// ResetCanEdit is true when a can_edit flag left over from the unlocked
	// state must be cleared so the field lands sealed.
	ResetCanEdit bool
}

// Decide applies the owner-write transition table to current.
//
//	unlocked      -> locked_sealed, lock row written, can_edit cleared
//	locked_sealed -> rejected with ErrFieldLocked
//	locked_open   -> locked_open, lock row untouched
func Decide(current LockState) (WriteDecision, error) {
	switch current {
	case StateUnlocked:
		return WriteDecision{Next: StateLockedSealed, SetLock: true, ResetCanEdit: true}, nil
	case StateLockedOpen:
		return WriteDecision{Next: StateLockedOpen}, nil
	default:
		return WriteDecision{Next: current}, ErrFieldLocked
	}
}
