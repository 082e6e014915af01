package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// TradelineRepo implements port.TradelineRepository.
type TradelineRepo struct {
	pool *pgxpool.Pool
}

// NewTradelineRepo creates a new repository backed by PostgreSQL.
func NewTradelineRepo(pool *pgxpool.Pool) *TradelineRepo {
	return &TradelineRepo{pool: pool}
}

const tradelineUpsert = `
	INSERT INTO tradelines (
		id, scenario_id, tenant_id, creditor, debt_type, balance,
		reported_payment, documented_payment, account_last4, account_hash,
		account_status, idr_zero_verified, qualifying_method, qualifying_payment,
		qualifying_rationale, dedupe_action, dedupe_group_id, decision_reason,
		version, created_at, updated_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	ON CONFLICT (id) DO UPDATE SET
		balance              = EXCLUDED.balance,
		reported_payment     = EXCLUDED.reported_payment,
		documented_payment   = EXCLUDED.documented_payment,
		account_status       = EXCLUDED.account_status,
		idr_zero_verified    = EXCLUDED.idr_zero_verified,
		qualifying_method    = EXCLUDED.qualifying_method,
		qualifying_payment   = EXCLUDED.qualifying_payment,
		qualifying_rationale = EXCLUDED.qualifying_rationale,
		dedupe_action        = EXCLUDED.dedupe_action,
		dedupe_group_id      = EXCLUDED.dedupe_group_id,
		decision_reason      = EXCLUDED.decision_reason,
		version              = tradelines.version + 1,
		updated_at           = EXCLUDED.updated_at
	WHERE tradelines.version = $19
`

// Save persists one tradeline (upsert by ID with optimistic locking).
func (r *TradelineRepo) Save(ctx context.Context, t model.Tradeline) error {
	tag, err := r.pool.Exec(ctx, tradelineUpsert, tradelineArgs(t)...)
	if err != nil {
		return fmt.Errorf("save tradeline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on tradeline")
	}
	return nil
}

// SaveAll persists a batch of tradelines in one round trip.
func (r *TradelineRepo) SaveAll(ctx context.Context, tradelines []model.Tradeline) error {
	if len(tradelines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range tradelines {
		batch.Queue(tradelineUpsert, tradelineArgs(t)...)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range tradelines {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("save tradelines batch: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return errors.New("optimistic locking conflict on tradeline")
		}
	}
	return nil
}

func tradelineArgs(t model.Tradeline) []any {
	var method, rationale string
	payment := decimal.Zero
	hasPayment := false
	if qp, ok := t.StudentPayment(); ok {
		method = qp.Method
		payment = qp.Payment
		rationale = qp.Rationale
		hasPayment = true
	}

	var paymentArg any
	if hasPayment {
		paymentArg = payment
	}

	return []any{
		t.ID(), t.ScenarioID(), t.TenantID(), t.Creditor(), t.DebtType().String(),
		t.Balance(), t.ReportedPayment(), t.DocumentedPayment(),
		t.AccountLast4(), t.AccountHash(), t.AccountStatus(), t.IDRZeroVerified(),
		method, paymentArg, rationale,
		t.DedupeAction().String(), t.DedupeGroupID(), t.DecisionReason(),
		t.Version(), t.CreatedAt(), t.UpdatedAt(),
	}
}

const tradelineSelect = `
	SELECT id, scenario_id, tenant_id, creditor, debt_type, balance,
	       reported_payment, documented_payment, account_last4, account_hash,
	       account_status, idr_zero_verified, qualifying_method,
	       qualifying_payment, qualifying_rationale, dedupe_action,
	       dedupe_group_id, decision_reason, version, created_at, updated_at
	FROM tradelines`

// FindByID retrieves a single tradeline.
func (r *TradelineRepo) FindByID(ctx context.Context, tenantID, id string) (model.Tradeline, error) {
	query := tradelineSelect + ` WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, query, tenantID, id)
	return scanTradeline(row)
}

// FindByScenarioID retrieves every tradeline under a scenario.
func (r *TradelineRepo) FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.Tradeline, error) {
	query := tradelineSelect + ` WHERE tenant_id = $1 AND scenario_id = $2 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, tenantID, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("query tradelines: %w", err)
	}
	defer rows.Close()

	var result []model.Tradeline
	for rows.Next() {
		t, err := scanTradeline(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTradeline(s scannable) (model.Tradeline, error) {
	var (
		id, scenarioID, tenantID, creditor         string
		debtTypeStr                                string
		balance, reportedPayment, documentedPaymnt decimal.Decimal
		accountLast4, accountHash, accountStatus   string
		idrZeroVerified                            bool
		method, rationale                          *string
		payment                                    *decimal.Decimal
		dedupeActionStr, dedupeGroupID, reason     string
		version                                    int
		createdAt, updatedAt                       time.Time
	)

	err := s.Scan(
		&id, &scenarioID, &tenantID, &creditor, &debtTypeStr,
		&balance, &reportedPayment, &documentedPaymnt,
		&accountLast4, &accountHash, &accountStatus, &idrZeroVerified,
		&method, &payment, &rationale,
		&dedupeActionStr, &dedupeGroupID, &reason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Tradeline{}, fmt.Errorf("scan tradeline: %w", err)
	}

	debtType, err := valueobject.NewDebtType(debtTypeStr)
	if err != nil {
		return model.Tradeline{}, fmt.Errorf("parse debt type: %w", err)
	}
	dedupeAction, err := valueobject.NewDedupeAction(dedupeActionStr)
	if err != nil {
		return model.Tradeline{}, fmt.Errorf("parse dedupe action: %w", err)
	}

	var studentPayment *model.QualifyingPayment
	if method != nil && *method != "" && payment != nil {
		studentPayment = &model.QualifyingPayment{
			Method:    *method,
			Payment:   *payment,
			Rationale: deref(rationale),
		}
	}

	return model.ReconstructTradeline(
		id, scenarioID, tenantID, creditor, debtType,
		balance, reportedPayment, documentedPaymnt,
		accountLast4, accountHash, accountStatus, idrZeroVerified,
		studentPayment, dedupeAction, dedupeGroupID, reason,
		version, createdAt, updatedAt,
	), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
