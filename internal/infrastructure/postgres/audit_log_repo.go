package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanworks/advisor/internal/domain/model"
)

// AuditLogRepo implements port.AuditLogRepository. Plain inserts only; the
// table has no update or delete path.
type AuditLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepo creates a new repository backed by PostgreSQL.
func NewAuditLogRepo(pool *pgxpool.Pool) *AuditLogRepo {
	return &AuditLogRepo{pool: pool}
}

// Append writes one audit event.
func (r *AuditLogRepo) Append(ctx context.Context, e model.AuditEvent) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	query := `
		INSERT INTO audit_events (id, tenant_id, event_type, subject_id, metadata, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	if _, err := r.pool.Exec(ctx, query,
		e.ID, e.TenantID, e.EventType, e.SubjectID, metadata, e.OccurredAt,
	); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// FindBySubjectID retrieves the audit trail for one subject, oldest first.
func (r *AuditLogRepo) FindBySubjectID(ctx context.Context, tenantID, subjectID string) ([]model.AuditEvent, error) {
	query := `
		SELECT id, tenant_id, event_type, subject_id, metadata, occurred_at
		FROM audit_events
		WHERE tenant_id = $1 AND subject_id = $2
		ORDER BY occurred_at, id
	`
	rows, err := r.pool.Query(ctx, query, tenantID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var result []model.AuditEvent
	for rows.Next() {
		var (
			e        model.AuditEvent
			metadata []byte
			occurred time.Time
		)
		if err := rows.Scan(&e.ID, &e.TenantID, &e.EventType, &e.SubjectID, &metadata, &occurred); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		e.OccurredAt = occurred
		result = append(result, e)
	}
	return result, rows.Err()
}
