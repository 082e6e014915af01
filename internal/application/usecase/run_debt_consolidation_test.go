package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

func newConsolidationUseCase(
	scenarioRepo *mockScenarioRepository,
	tradelineRepo *mockTradelineRepository,
	auditRepo *mockAuditLogRepository,
	publisher *mockEventPublisher,
) *usecase.RunDebtConsolidationUseCase {
	return usecase.NewRunDebtConsolidationUseCase(
		scenarioRepo, tradelineRepo, auditRepo, publisher,
		service.NewDuplicateDetector(),
		service.NewStudentLoanRuleSelector(),
	)
}

func tradelineByID(resp dto.RunDebtConsolidationResponse, id string) (dto.TradelineResponse, bool) {
	for _, tl := range resp.Tradelines {
		if tl.ID == id {
			return tl, true
		}
	}
	return dto.TradelineResponse{}, false
}

func TestRunDebtConsolidation_AutoResolvesAndResolvesStudentPayments(t *testing.T) {
	sc := fhaScenario(t)
	keep := newTestTradeline(t, sc.ID(), "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	remove := newTestTradeline(t, sc.ID(), "Chase Bank NA", valueobject.DebtTypeRevolving, 4_900, 150, "abc123")
	student := newTestTradeline(t, sc.ID(), "Navient", valueobject.DebtTypeStudentLoan, 40_000, 0, "")

	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, tenantID, id string) (model.Scenario, error) {
			require.Equal(t, "tenant-001", tenantID)
			require.Equal(t, sc.ID(), id)
			return sc, nil
		},
	}
	tradelineRepo := &mockTradelineRepository{
		findByScenarioIDFunc: func(_ context.Context, _, _ string) ([]model.Tradeline, error) {
			return []model.Tradeline{keep, remove, student}, nil
		},
	}
	auditRepo := &mockAuditLogRepository{}
	publisher := &mockEventPublisher{}

	uc := newConsolidationUseCase(scenarioRepo, tradelineRepo, auditRepo, publisher)

	resp, err := uc.Execute(context.Background(), dto.RunDebtConsolidationRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.AutoResolved)
	require.Len(t, resp.Groups, 1)
	assert.True(t, resp.Groups[0].Resolved)
	assert.Equal(t, service.ConfidenceHigh, resp.Groups[0].Confidence)

	removed, ok := tradelineByID(resp, remove.ID())
	require.True(t, ok)
	assert.Equal(t, "AUTO_REMOVED", removed.DedupeAction)
	assert.True(t, removed.MonthlyDebt.IsZero())

	resolved, ok := tradelineByID(resp, student.ID())
	require.True(t, ok)
	assert.Equal(t, service.MethodFHAHalfPercent, resolved.QualifyingMethod)
	assert.Equal(t, "200.00", resolved.QualifyingPayment.StringFixed(2))
	assert.NotEmpty(t, resolved.QualifyingRationale)

	// 150 kept revolving + 200 student qualifying; the removed line counts zero.
	assert.Equal(t, "350.00", resp.TotalMonthlyDebt.StringFixed(2))

	// All three tradelines are persisted in one batch.
	assert.Len(t, tradelineRepo.savedTradelines, 3)

	// The outcome is snapshotted onto the scenario.
	require.Len(t, scenarioRepo.savedScenarios, 1)
	snap, ok := scenarioRepo.savedScenarios[0].Analysis(model.AnalysisDebtConsolidation)
	require.True(t, ok)
	assert.NotEmpty(t, snap)

	require.Len(t, auditRepo.appended, 1)
	assert.Equal(t, "debt_consolidation.run", auditRepo.appended[0].EventType)
	assert.Equal(t, "1", auditRepo.appended[0].Metadata["auto_resolved"])

	assert.NotEmpty(t, publisher.publishedEvents)
}

func TestRunDebtConsolidation_NoDuplicatesIsANoOpRun(t *testing.T) {
	sc := fhaScenario(t)
	a := newTestTradeline(t, sc.ID(), "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "")
	b := newTestTradeline(t, sc.ID(), "Discover", valueobject.DebtTypeRevolving, 3_000, 90, "")

	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	tradelineRepo := &mockTradelineRepository{
		findByScenarioIDFunc: func(_ context.Context, _, _ string) ([]model.Tradeline, error) {
			return []model.Tradeline{a, b}, nil
		},
	}
	uc := newConsolidationUseCase(scenarioRepo, tradelineRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	resp, err := uc.Execute(context.Background(), dto.RunDebtConsolidationRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Groups)
	assert.Equal(t, 0, resp.AutoResolved)
	assert.Equal(t, "240.00", resp.TotalMonthlyDebt.StringFixed(2))

	// Even a clean run snapshots the result for the loan file.
	require.Len(t, scenarioRepo.savedScenarios, 1)
	_, ok := scenarioRepo.savedScenarios[0].Analysis(model.AnalysisDebtConsolidation)
	assert.True(t, ok)
}

func TestRunDebtConsolidation_RerunAfterKeepBothOverrideSucceeds(t *testing.T) {
	sc := fhaScenario(t)
	a := newTestTradeline(t, sc.ID(), "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	b := newTestTradeline(t, sc.ID(), "Chase Bank NA", valueobject.DebtTypeRevolving, 4_900, 150, "abc123")
	kept, err := b.OverrideKeepBoth("group-1", "Separate cards on a shared account.", sc.UpdatedAt())
	require.NoError(t, err)
	kept = kept.ClearEvents()

	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	tradelineRepo := &mockTradelineRepository{
		findByScenarioIDFunc: func(_ context.Context, _, _ string) ([]model.Tradeline, error) {
			return []model.Tradeline{a, kept}, nil
		},
	}
	uc := newConsolidationUseCase(scenarioRepo, tradelineRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	// A re-run after the user's keep-both decision must not re-flag the pair
	// or trip over the existing dedupe decision.
	resp, err := uc.Execute(context.Background(), dto.RunDebtConsolidationRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Groups)
	assert.Equal(t, 0, resp.AutoResolved)
	// Both lines still count toward the debt ratios.
	assert.Equal(t, "300.00", resp.TotalMonthlyDebt.StringFixed(2))
}

func TestRunDebtConsolidation_ScenarioLookupFailurePropagates(t *testing.T) {
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) {
			return model.Scenario{}, fmt.Errorf("connection refused")
		},
	}
	uc := newConsolidationUseCase(scenarioRepo, &mockTradelineRepository{}, &mockAuditLogRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), dto.RunDebtConsolidationRequest{
		TenantID:   "tenant-001",
		ScenarioID: "missing",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "find scenario")
}
