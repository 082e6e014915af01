package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/domain/event"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockScenarioRepository struct {
	saveFunc        func(ctx context.Context, s model.Scenario) error
	findByIDFunc    func(ctx context.Context, tenantID, id string) (model.Scenario, error)
	findByOwnerFunc func(ctx context.Context, tenantID, ownerID string) ([]model.Scenario, error)
	savedScenarios  []model.Scenario
}

func (m *mockScenarioRepository) Save(ctx context.Context, s model.Scenario) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s)
	}
	m.savedScenarios = append(m.savedScenarios, s)
	return nil
}

func (m *mockScenarioRepository) FindByID(ctx context.Context, tenantID, id string) (model.Scenario, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.Scenario{}, fmt.Errorf("scenario not found")
}

func (m *mockScenarioRepository) FindByOwner(ctx context.Context, tenantID, ownerID string) ([]model.Scenario, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, tenantID, ownerID)
	}
	return nil, nil
}

type mockTradelineRepository struct {
	saveFunc             func(ctx context.Context, t model.Tradeline) error
	saveAllFunc          func(ctx context.Context, tradelines []model.Tradeline) error
	findByIDFunc         func(ctx context.Context, tenantID, id string) (model.Tradeline, error)
	findByScenarioIDFunc func(ctx context.Context, tenantID, scenarioID string) ([]model.Tradeline, error)
	savedTradelines      []model.Tradeline
}

func (m *mockTradelineRepository) Save(ctx context.Context, t model.Tradeline) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, t)
	}
	m.savedTradelines = append(m.savedTradelines, t)
	return nil
}

func (m *mockTradelineRepository) SaveAll(ctx context.Context, tradelines []model.Tradeline) error {
	if m.saveAllFunc != nil {
		return m.saveAllFunc(ctx, tradelines)
	}
	m.savedTradelines = append(m.savedTradelines, tradelines...)
	return nil
}

func (m *mockTradelineRepository) FindByID(ctx context.Context, tenantID, id string) (model.Tradeline, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.Tradeline{}, fmt.Errorf("tradeline not found")
}

func (m *mockTradelineRepository) FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.Tradeline, error) {
	if m.findByScenarioIDFunc != nil {
		return m.findByScenarioIDFunc(ctx, tenantID, scenarioID)
	}
	return nil, nil
}

type mockDecisionRecordRepository struct {
	saveFunc             func(ctx context.Context, r model.DecisionRecord) error
	findByIDFunc         func(ctx context.Context, tenantID, id string) (model.DecisionRecord, error)
	findByScenarioIDFunc func(ctx context.Context, tenantID, scenarioID string) ([]model.DecisionRecord, error)
	savedRecords         []model.DecisionRecord
}

func (m *mockDecisionRecordRepository) Save(ctx context.Context, r model.DecisionRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, r)
	}
	m.savedRecords = append(m.savedRecords, r)
	return nil
}

func (m *mockDecisionRecordRepository) FindByID(ctx context.Context, tenantID, id string) (model.DecisionRecord, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.DecisionRecord{}, fmt.Errorf("decision record not found")
}

func (m *mockDecisionRecordRepository) FindByScenarioID(ctx context.Context, tenantID, scenarioID string) ([]model.DecisionRecord, error) {
	if m.findByScenarioIDFunc != nil {
		return m.findByScenarioIDFunc(ctx, tenantID, scenarioID)
	}
	return nil, nil
}

type mockAuditLogRepository struct {
	appendFunc func(ctx context.Context, e model.AuditEvent) error
	appended   []model.AuditEvent
}

func (m *mockAuditLogRepository) Append(ctx context.Context, e model.AuditEvent) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, e)
	}
	m.appended = append(m.appended, e)
	return nil
}

func (m *mockAuditLogRepository) FindBySubjectID(_ context.Context, _, _ string) ([]model.AuditEvent, error) {
	return nil, nil
}

type mockCatalogProvider struct {
	programsFunc func(ctx context.Context) ([]model.Program, error)
	amiTableFunc func(ctx context.Context) (model.AMITable, error)
}

func (m *mockCatalogProvider) Programs(ctx context.Context) ([]model.Program, error) {
	if m.programsFunc != nil {
		return m.programsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogProvider) AMITable(ctx context.Context) (model.AMITable, error) {
	if m.amiTableFunc != nil {
		return m.amiTableFunc(ctx)
	}
	return model.AMITable{Default: decimal.NewFromInt(97_800)}, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Fixtures ---

func fhaScenario(t *testing.T) model.Scenario {
	t.Helper()
	sc, err := model.NewScenario(
		"tenant-001", "officer-001",
		model.BorrowerProfile{
			Names:          []string{"Jordan Avery"},
			CreditScore:    700,
			AnnualIncome:   decimal.NewFromInt(85_000),
			HouseholdSize:  3,
			FirstTimeBuyer: true,
		},
		model.LoanTerms{
			Amount:        decimal.NewFromInt(270_000),
			PurchasePrice: decimal.NewFromInt(300_000),
			PropertyValue: decimal.NewFromInt(300_000),
			RatePct:       6.5,
			TermMonths:    360,
			LoanType:      valueobject.LoanTypeFHA,
			Purpose:       "PURCHASE",
		},
		model.PropertyInfo{
			Street:       "12 Travis Heights Blvd",
			City:         "Austin",
			State:        "TX",
			Zip:          "78704",
			PropertyType: "SINGLE_FAMILY",
			Occupancy:    "OWNER_OCCUPIED",
		},
		model.HousingExpense{PrincipalAndInterest: decimal.NewFromFloat(1_706.58)},
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return sc.ClearEvents()
}

func newTestTradeline(t *testing.T, scenarioID, creditor string, debtType valueobject.DebtType, balance, payment int64, hash string) model.Tradeline {
	t.Helper()
	tl, err := model.NewTradeline(
		scenarioID, "tenant-001", creditor,
		debtType,
		decimal.NewFromInt(balance), decimal.NewFromInt(payment), decimal.Zero,
		"", hash, "OPEN",
		false,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return tl
}
