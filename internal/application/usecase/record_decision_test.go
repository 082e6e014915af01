package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/model"
)

func validRecordDecisionRequest(scenarioID string) dto.RecordDecisionRequest {
	return dto.RecordDecisionRequest{
		TenantID:          "tenant-001",
		ScenarioID:        scenarioID,
		ProgramID:         "tx-tsahc-home-sweet",
		LenderName:        "First Federal",
		EligibilityStatus: "ELIGIBLE",
		TotalAssistance:   decimal.NewFromInt(10_500),
		ResultingCLTV:     decimal.NewFromFloat(96.77),
		DataSource:        "dpa_catalog_v2026_08",
		GuidelineVersion:  "2026.08",
	}
}

func TestRecordDecision_SnapshotsScenarioAndAppendsAudit(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	decisionRepo := &mockDecisionRecordRepository{}
	auditRepo := &mockAuditLogRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewRecordDecisionUseCase(scenarioRepo, decisionRepo, auditRepo, publisher)

	resp, err := uc.Execute(context.Background(), validRecordDecisionRequest(sc.ID()))

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "tx-tsahc-home-sweet", resp.ProgramID)
	assert.Equal(t, "dpa_catalog_v2026_08", resp.DataSource)
	assert.False(t, resp.Voided)

	require.Len(t, decisionRepo.savedRecords, 1)
	rec := decisionRepo.savedRecords[0]
	assert.Equal(t, sc.ID(), rec.ScenarioID())
	// The scenario state rides along for audit replay.
	assert.NotEmpty(t, rec.ScenarioSnapshot())

	require.Len(t, auditRepo.appended, 1)
	assert.Equal(t, "decision.recorded", auditRepo.appended[0].EventType)
	assert.Equal(t, rec.ID(), auditRepo.appended[0].SubjectID)

	assert.NotEmpty(t, publisher.publishedEvents)
}

func TestRecordDecision_MissingProvenanceIsRejected(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	decisionRepo := &mockDecisionRecordRepository{}
	uc := usecase.NewRecordDecisionUseCase(scenarioRepo, decisionRepo, &mockAuditLogRepository{}, &mockEventPublisher{})

	req := validRecordDecisionRequest(sc.ID())
	req.DataSource = ""

	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingProvenance)
	assert.Empty(t, decisionRepo.savedRecords)
}
