package port

import (
	"context"

	"github.com/loanworks/advisor/internal/domain/event"
	"github.com/loanworks/advisor/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ScenarioRepository persists and retrieves loan scenarios.
type ScenarioRepository interface {
	Save(ctx context.Context, s model.Scenario) error
	FindByID(ctx context.Context, tenantID, id string) (model.Scenario, error)
	FindByOwner(ctx context.Context, tenantID, ownerID string) ([]model.Scenario, error)
}

// TradelineRepository persists and retrieves the liability lines under a
// scenario.
type TradelineRepository interface {
	Save(ctx context.Context, t model.Tradeline) error
	SaveAll(ctx context.Context, tradelines []model.Tradeline) error
	FindByID(ctx context.Context, tenantID, id string) (model.Tradeline, error)
	FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.Tradeline, error)
}

// DecisionRecordRepository persists append-only decision records. There is no
// update path; Void saves a new row version with the voided flag set.
type DecisionRecordRepository interface {
	Save(ctx context.Context, r model.DecisionRecord) error
	FindByID(ctx context.Context, tenantID, id string) (model.DecisionRecord, error)
	FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.DecisionRecord, error)
}

// AuditLogRepository appends audit events. Entries are never updated or
// deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, e model.AuditEvent) error
	FindBySubjectID(ctx context.Context, tenantID, subjectID string) ([]model.AuditEvent, error)
}

// ---------------------------------------------------------------------------
// Reference data port
// ---------------------------------------------------------------------------

// CatalogProvider supplies the DPA program catalog and AMI reference table as
// immutable snapshots. Implementations must return fresh data per call so
// engines never see a stale cached view.
type CatalogProvider interface {
	Programs(ctx context.Context) ([]model.Program, error)
	AMITable(ctx context.Context) (model.AMITable, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
