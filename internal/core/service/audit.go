package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/hikeplan/trip-planner/internal/core/domain"
	"github.com/hikeplan/trip-planner/internal/core/ports"
)

// emitAudit stamps ev and hands it to sink. A nil sink disables auditing.
func emitAudit(sink ports.AuditSink, ev domain.AuditEvent) {
	if sink == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.At = time.Now().UTC()
	sink.Enqueue(ev)
}
