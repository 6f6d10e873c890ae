package domain

import (
	"encoding/json"
	"time"
)

// Row is one entry of the user_data key/value table.
type Row struct {
	UserID    string          `json:"user_id"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChangeOp is the kind of row change carried by a notification.
type ChangeOp string

const (
	ChangeUpsert ChangeOp = "upsert"
	ChangeDelete ChangeOp = "delete"
)

// ChangeEvent notifies subscribers that a row changed. Subscribers must
// re-read state rather than apply Row as a delta.
type ChangeEvent struct {
	Op  ChangeOp `json:"op"`
	Row Row      `json:"row"`
}

// ChangeFilter scopes a subscription. Empty fields match everything.
type ChangeFilter struct {
	UserID string
	Key    string
}

// Match reports whether ev passes the filter.
func (f ChangeFilter) Match(ev ChangeEvent) bool {
	if f.UserID != "" && ev.Row.UserID != f.UserID {
		return false
	}
	if f.Key != "" && ev.Row.Key != f.Key {
		return false
	}
	return true
}
