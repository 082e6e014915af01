package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ScenarioRepo implements port.ScenarioRepository. The grouped value structs
// (borrower, property, housing) and the namespaced analysis snapshots are
// stored as JSONB columns; the queryable loan economics are flattened.
type ScenarioRepo struct {
	pool *pgxpool.Pool
}

// NewScenarioRepo creates a new repository backed by PostgreSQL.
func NewScenarioRepo(pool *pgxpool.Pool) *ScenarioRepo {
	return &ScenarioRepo{pool: pool}
}

type borrowerDoc struct {
	Names             []string        `json:"names"`
	CreditScore       int             `json:"credit_score"`
	AnnualIncome      decimal.Decimal `json:"annual_income"`
	MonthlyDebts      decimal.Decimal `json:"monthly_debts"`
	HouseholdSize     int             `json:"household_size"`
	FirstTimeBuyer    bool            `json:"first_time_buyer"`
	SpecialCategories []string        `json:"special_categories,omitempty"`
}

type propertyDoc struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	PropertyType string `json:"property_type"`
	Occupancy    string `json:"occupancy"`
}

type housingDoc struct {
	PrincipalAndInterest decimal.Decimal `json:"principal_and_interest"`
	Taxes                decimal.Decimal `json:"taxes"`
	Insurance            decimal.Decimal `json:"insurance"`
	MortgageInsurance    decimal.Decimal `json:"mortgage_insurance"`
	HOADues              decimal.Decimal `json:"hoa_dues"`
	TaxesEstimated       bool            `json:"taxes_estimated"`
	InsuranceEstimated   bool            `json:"insurance_estimated"`
}

// Save persists a scenario (upsert by ID with optimistic locking).
func (r *ScenarioRepo) Save(ctx context.Context, s model.Scenario) error {
	b := s.Borrower()
	p := s.Property()
	h := s.Housing()
	t := s.Terms()

	borrowerJSON, err := json.Marshal(borrowerDoc{
		Names:             b.Names,
		CreditScore:       b.CreditScore,
		AnnualIncome:      b.AnnualIncome,
		MonthlyDebts:      b.MonthlyDebts,
		HouseholdSize:     b.HouseholdSize,
		FirstTimeBuyer:    b.FirstTimeBuyer,
		SpecialCategories: b.SpecialCategories,
	})
	if err != nil {
		return fmt.Errorf("marshal borrower: %w", err)
	}
	propertyJSON, err := json.Marshal(propertyDoc{
		Street: p.Street, City: p.City, State: p.State, Zip: p.Zip,
		PropertyType: p.PropertyType, Occupancy: p.Occupancy,
	})
	if err != nil {
		return fmt.Errorf("marshal property: %w", err)
	}
	housingJSON, err := json.Marshal(housingDoc{
		PrincipalAndInterest: h.PrincipalAndInterest,
		Taxes:                h.Taxes,
		Insurance:            h.Insurance,
		MortgageInsurance:    h.MortgageInsurance,
		HOADues:              h.HOADues,
		TaxesEstimated:       h.TaxesEstimated,
		InsuranceEstimated:   h.InsuranceEstimated,
	})
	if err != nil {
		return fmt.Errorf("marshal housing: %w", err)
	}
	analysesJSON, err := json.Marshal(s.Analyses())
	if err != nil {
		return fmt.Errorf("marshal analyses: %w", err)
	}

	query := `
		INSERT INTO scenarios (
			id, tenant_id, officer_id, borrower, loan_amount, purchase_price,
			property_value, rate_pct, term_months, loan_type, investor, purpose,
			property, housing, status, analyses, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			borrower       = EXCLUDED.borrower,
			loan_amount    = EXCLUDED.loan_amount,
			purchase_price = EXCLUDED.purchase_price,
			property_value = EXCLUDED.property_value,
			rate_pct       = EXCLUDED.rate_pct,
			term_months    = EXCLUDED.term_months,
			loan_type      = EXCLUDED.loan_type,
			investor       = EXCLUDED.investor,
			purpose        = EXCLUDED.purpose,
			property       = EXCLUDED.property,
			housing        = EXCLUDED.housing,
			status         = EXCLUDED.status,
			analyses       = EXCLUDED.analyses,
			version        = scenarios.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE scenarios.version = $17
	`
	tag, err := r.pool.Exec(ctx, query,
		s.ID(), s.TenantID(), s.OfficerID(), borrowerJSON,
		t.Amount, t.PurchasePrice, t.PropertyValue, t.RatePct, t.TermMonths,
		t.LoanType.String(), t.Investor, t.Purpose,
		propertyJSON, housingJSON, s.Status().String(), analysesJSON,
		s.Version(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on scenario")
	}
	return nil
}

// FindByID retrieves a single scenario.
func (r *ScenarioRepo) FindByID(ctx context.Context, tenantID, id string) (model.Scenario, error) {
	query := scenarioSelect + ` WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, query, tenantID, id)
	return scanScenario(row)
}

// FindByOwner retrieves every scenario owned by a loan officer.
func (r *ScenarioRepo) FindByOwner(ctx context.Context, tenantID, officerID string) ([]model.Scenario, error) {
	query := scenarioSelect + ` WHERE tenant_id = $1 AND officer_id = $2 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, tenantID, officerID)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var result []model.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

const scenarioSelect = `
	SELECT id, tenant_id, officer_id, borrower, loan_amount, purchase_price,
	       property_value, rate_pct, term_months, loan_type, investor, purpose,
	       property, housing, status, analyses, version, created_at, updated_at
	FROM scenarios`

func scanScenario(s scannable) (model.Scenario, error) {
	var (
		id, tenantID, officerID                  string
		borrowerJSON, propertyJSON, housingJSON  []byte
		analysesJSON                             []byte
		loanAmount, purchasePrice, propertyValue decimal.Decimal
		ratePct                                  float64
		termMonths                               int
		loanTypeStr, investor, purpose           string
		statusStr                                string
		version                                  int
		createdAt, updatedAt                     time.Time
	)

	err := s.Scan(
		&id, &tenantID, &officerID, &borrowerJSON,
		&loanAmount, &purchasePrice, &propertyValue, &ratePct, &termMonths,
		&loanTypeStr, &investor, &purpose,
		&propertyJSON, &housingJSON, &statusStr, &analysesJSON,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("scan scenario: %w", err)
	}

	var b borrowerDoc
	if err := json.Unmarshal(borrowerJSON, &b); err != nil {
		return model.Scenario{}, fmt.Errorf("unmarshal borrower: %w", err)
	}
	var p propertyDoc
	if err := json.Unmarshal(propertyJSON, &p); err != nil {
		return model.Scenario{}, fmt.Errorf("unmarshal property: %w", err)
	}
	var h housingDoc
	if err := json.Unmarshal(housingJSON, &h); err != nil {
		return model.Scenario{}, fmt.Errorf("unmarshal housing: %w", err)
	}
	var analyses map[string]json.RawMessage
	if len(analysesJSON) > 0 {
		if err := json.Unmarshal(analysesJSON, &analyses); err != nil {
			return model.Scenario{}, fmt.Errorf("unmarshal analyses: %w", err)
		}
	}

	loanType, err := valueobject.NewLoanType(loanTypeStr)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("parse loan type: %w", err)
	}
	status, err := valueobject.NewScenarioStatus(statusStr)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructScenario(
		id, tenantID, officerID,
		model.BorrowerProfile{
			Names:             b.Names,
			CreditScore:       b.CreditScore,
			AnnualIncome:      b.AnnualIncome,
			MonthlyDebts:      b.MonthlyDebts,
			HouseholdSize:     b.HouseholdSize,
			FirstTimeBuyer:    b.FirstTimeBuyer,
			SpecialCategories: b.SpecialCategories,
		},
		model.LoanTerms{
			Amount:        loanAmount,
			PurchasePrice: purchasePrice,
			PropertyValue: propertyValue,
			RatePct:       ratePct,
			TermMonths:    termMonths,
			LoanType:      loanType,
			Investor:      investor,
			Purpose:       purpose,
		},
		model.PropertyInfo{
			Street: p.Street, City: p.City, State: p.State, Zip: p.Zip,
			PropertyType: p.PropertyType, Occupancy: p.Occupancy,
		},
		model.HousingExpense{
			PrincipalAndInterest: h.PrincipalAndInterest,
			Taxes:                h.Taxes,
			Insurance:            h.Insurance,
			MortgageInsurance:    h.MortgageInsurance,
			HOADues:              h.HOADues,
			TaxesEstimated:       h.TaxesEstimated,
			InsuranceEstimated:   h.InsuranceEstimated,
		},
		status, analyses, version, createdAt, updatedAt,
	), nil
}
