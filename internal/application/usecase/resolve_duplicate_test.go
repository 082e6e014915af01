package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

func TestResolveDuplicate_ApplyRecommendationExcludesTradeline(t *testing.T) {
	tl := newTestTradeline(t, "scenario-001", "Chase Bank NA", valueobject.DebtTypeRevolving, 4_900, 150, "abc123")
	tradelineRepo := &mockTradelineRepository{
		findByIDFunc: func(_ context.Context, tenantID, id string) (model.Tradeline, error) {
			require.Equal(t, "tenant-001", tenantID)
			require.Equal(t, tl.ID(), id)
			return tl, nil
		},
	}
	auditRepo := &mockAuditLogRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewResolveDuplicateUseCase(tradelineRepo, auditRepo, publisher)

	resp, err := uc.Execute(context.Background(), dto.ResolveDuplicateRequest{
		TenantID:    "tenant-001",
		ScenarioID:  "scenario-001",
		TradelineID: tl.ID(),
		GroupID:     "group-1",
		Action:      dto.ResolveActionApply,
		Reason:      "Duplicate of the Chase revolving line.",
	})

	require.NoError(t, err)
	assert.Equal(t, "MANUAL_EXCLUDED", resp.Tradeline.DedupeAction)
	assert.Equal(t, "group-1", resp.Tradeline.DedupeGroupID)
	assert.True(t, resp.Tradeline.MonthlyDebt.IsZero())

	require.Len(t, tradelineRepo.savedTradelines, 1)
	assert.True(t, tradelineRepo.savedTradelines[0].Excluded())

	require.Len(t, auditRepo.appended, 1)
	assert.Equal(t, "dedupe.resolved", auditRepo.appended[0].EventType)
	assert.Equal(t, dto.ResolveActionApply, auditRepo.appended[0].Metadata["action"])

	assert.NotEmpty(t, publisher.publishedEvents)
}

func TestResolveDuplicate_KeepBothRequiresAReason(t *testing.T) {
	tl := newTestTradeline(t, "scenario-001", "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	tradelineRepo := &mockTradelineRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Tradeline, error) { return tl, nil },
	}
	uc := usecase.NewResolveDuplicateUseCase(tradelineRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), dto.ResolveDuplicateRequest{
		TenantID:    "tenant-001",
		ScenarioID:  "scenario-001",
		TradelineID: tl.ID(),
		GroupID:     "group-1",
		Action:      dto.ResolveActionKeepBoth,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reason")
	assert.Empty(t, tradelineRepo.savedTradelines)
}

func TestResolveDuplicate_NotDuplicateDefaultsTheReason(t *testing.T) {
	tl := newTestTradeline(t, "scenario-001", "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	tradelineRepo := &mockTradelineRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Tradeline, error) { return tl, nil },
	}
	uc := usecase.NewResolveDuplicateUseCase(tradelineRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	resp, err := uc.Execute(context.Background(), dto.ResolveDuplicateRequest{
		TenantID:    "tenant-001",
		ScenarioID:  "scenario-001",
		TradelineID: tl.ID(),
		GroupID:     "group-1",
		Action:      dto.ResolveActionNotDuplicate,
	})

	require.NoError(t, err)
	assert.Equal(t, "OVERRIDDEN_KEEP_BOTH", resp.Tradeline.DedupeAction)
	assert.Equal(t, "Reviewed and determined not to be a duplicate.", resp.Tradeline.DecisionReason)
	// Keep-both lines stay in the debt ratios.
	assert.Equal(t, "150.00", resp.Tradeline.MonthlyDebt.StringFixed(2))
}

func TestResolveDuplicate_RejectsTradelineFromAnotherScenario(t *testing.T) {
	tl := newTestTradeline(t, "scenario-002", "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	tradelineRepo := &mockTradelineRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Tradeline, error) { return tl, nil },
	}
	auditRepo := &mockAuditLogRepository{}
	uc := usecase.NewResolveDuplicateUseCase(tradelineRepo, auditRepo, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), dto.ResolveDuplicateRequest{
		TenantID:    "tenant-001",
		ScenarioID:  "scenario-001",
		TradelineID: tl.ID(),
		GroupID:     "group-1",
		Action:      dto.ResolveActionApply,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to scenario")
	assert.Empty(t, tradelineRepo.savedTradelines)
	assert.Empty(t, auditRepo.appended)
}

func TestResolveDuplicate_UnknownActionIsRejected(t *testing.T) {
	tl := newTestTradeline(t, "scenario-001", "Chase", valueobject.DebtTypeRevolving, 5_000, 150, "abc123")
	tradelineRepo := &mockTradelineRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Tradeline, error) { return tl, nil },
	}
	uc := usecase.NewResolveDuplicateUseCase(tradelineRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	_, err := uc.Execute(context.Background(), dto.ResolveDuplicateRequest{
		TenantID:    "tenant-001",
		ScenarioID:  "scenario-001",
		TradelineID: tl.ID(),
		GroupID:     "group-1",
		Action:      "DELETE_EVERYTHING",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resolution action")
}
