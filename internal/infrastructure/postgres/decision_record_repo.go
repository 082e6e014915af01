package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
)

// DecisionRecordRepo implements port.DecisionRecordRepository. Records are
// append-only: the upsert path only ever flips the voided flag, never the
// decision fields themselves.
type DecisionRecordRepo struct {
	pool *pgxpool.Pool
}

// NewDecisionRecordRepo creates a new repository backed by PostgreSQL.
func NewDecisionRecordRepo(pool *pgxpool.Pool) *DecisionRecordRepo {
	return &DecisionRecordRepo{pool: pool}
}

// Save inserts a new record or applies a void to an existing one.
func (r *DecisionRecordRepo) Save(ctx context.Context, rec model.DecisionRecord) error {
	query := `
		INSERT INTO decision_records (
			id, tenant_id, scenario_id, program_id, lender_name,
			eligibility_status, total_assistance, resulting_cltv,
			data_source, guideline_version, scenario_snapshot,
			voided, void_reason, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO UPDATE SET
			voided      = EXCLUDED.voided,
			void_reason = EXCLUDED.void_reason
		WHERE decision_records.voided = FALSE
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID(), rec.TenantID(), rec.ScenarioID(), rec.ProgramID(), rec.LenderName(),
		rec.EligibilityStatus(), rec.TotalAssistance(), rec.ResultingCLTV(),
		rec.DataSource(), rec.GuidelineVersion(), []byte(rec.ScenarioSnapshot()),
		rec.Voided(), rec.VoidReason(), rec.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save decision record: %w", err)
	}
	return nil
}

const decisionSelect = `
	SELECT id, tenant_id, scenario_id, program_id, lender_name,
	       eligibility_status, total_assistance, resulting_cltv,
	       data_source, guideline_version, scenario_snapshot,
	       voided, void_reason, created_at
	FROM decision_records`

// FindByID retrieves a single decision record.
func (r *DecisionRecordRepo) FindByID(ctx context.Context, tenantID, id string) (model.DecisionRecord, error) {
	query := decisionSelect + ` WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, query, tenantID, id)
	return scanDecisionRecord(row)
}

// FindByScenarioID retrieves a scenario's decision history, oldest first.
func (r *DecisionRecordRepo) FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.DecisionRecord, error) {
	query := decisionSelect + ` WHERE tenant_id = $1 AND scenario_id = $2 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, tenantID, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("query decision records: %w", err)
	}
	defer rows.Close()

	var result []model.DecisionRecord
	for rows.Next() {
		rec, err := scanDecisionRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func scanDecisionRecord(s scannable) (model.DecisionRecord, error) {
	var (
		id, tenantID, scenarioID, programID, lenderName string
		eligibilityStatus                               string
		totalAssistance, resultingCLTV                  decimal.Decimal
		dataSource, guidelineVersion                    string
		snapshot                                        []byte
		voided                                          bool
		voidReason                                      string
		createdAt                                       time.Time
	)

	err := s.Scan(
		&id, &tenantID, &scenarioID, &programID, &lenderName,
		&eligibilityStatus, &totalAssistance, &resultingCLTV,
		&dataSource, &guidelineVersion, &snapshot,
		&voided, &voidReason, &createdAt,
	)
	if err != nil {
		return model.DecisionRecord{}, fmt.Errorf("scan decision record: %w", err)
	}

	return model.ReconstructDecisionRecord(
		id, tenantID, scenarioID, programID, lenderName, eligibilityStatus,
		totalAssistance, resultingCLTV,
		dataSource, guidelineVersion,
		json.RawMessage(snapshot),
		voided, voidReason, createdAt,
	), nil
}
