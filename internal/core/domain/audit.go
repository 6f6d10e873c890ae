package domain

import "time"

// AuditAction names what an audited operation did.
type AuditAction string

const (
	AuditWrite       AuditAction = "write"
	AuditOverride    AuditAction = "override"
	AuditGrantAdmin  AuditAction = "grant_admin"
	AuditRevokeAdmin AuditAction = "revoke_admin"
	AuditRemove      AuditAction = "remove"
)

// AuditEvent records an accepted write or admin action.
type AuditEvent struct {
	ID      string      `json:"id" bson:"_id"`
	UserID  string      `json:"user_id" bson:"user_id"`
	Field   FieldName   `json:"field,omitempty" bson:"field,omitempty"`
	Action  AuditAction `json:"action" bson:"action"`
	ActorID string      `json:"actor_id" bson:"actor_id"`
	Locked  bool        `json:"locked" bson:"locked"`
	CanEdit bool        `json:"can_edit" bson:"can_edit"`
	At      time.Time   `json:"at" bson:"at"`
}
