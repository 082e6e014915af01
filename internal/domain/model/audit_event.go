package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one append-only log entry. Audit events are never mutated or
// deleted once written.
type AuditEvent struct {
	ID         string
	TenantID   string
	EventType  string
	SubjectID  string
	Metadata   map[string]string
	OccurredAt time.Time
}

// NewAuditEvent creates an audit event stamped with the given time.
func NewAuditEvent(tenantID, eventType, subjectID string, metadata map[string]string, now time.Time) AuditEvent {
	return AuditEvent{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		EventType:  eventType,
		SubjectID:  subjectID,
		Metadata:   metadata,
		OccurredAt: now,
	}
}
