package domain

// Actor is the caller of a lock or override operation. Admin is resolved by
// the caller from identity metadata or the user_roles table.
type Actor struct {
	UserID string
	Admin  bool
}

// Owns reports whether the actor is the owner of userID's fields.
func (a Actor) Owns(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

// UserLockStatus summarises both governed fields of one user for admins.
type UserLockStatus struct {
	UserID           string `json:"user_id"`
	EmergencyLocked  bool   `json:"emergency_locked"`
	RoleLocked       bool   `json:"role_locked"`
	CanEditEmergency bool   `json:"can_edit_emergency"`
	CanEditRole      bool   `json:"can_edit_role"`
}

// MemberRole is a row of the user_roles table.
type MemberRole struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	Notes   string `json:"notes,omitempty"`
}
