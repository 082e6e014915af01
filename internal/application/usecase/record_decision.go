package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
)

// RecordDecisionUseCase writes an append-only snapshot of a lender/program
// selection. The scenario's current state is embedded for audit replay.
type RecordDecisionUseCase struct {
	scenarioRepo port.ScenarioRepository
	decisionRepo port.DecisionRecordRepository
	auditRepo    port.AuditLogRepository
	publisher    port.EventPublisher
}

// NewRecordDecisionUseCase wires dependencies.
func NewRecordDecisionUseCase(
	scenarioRepo port.ScenarioRepository,
	decisionRepo port.DecisionRecordRepository,
	auditRepo port.AuditLogRepository,
	publisher port.EventPublisher,
) *RecordDecisionUseCase {
	return &RecordDecisionUseCase{
		scenarioRepo: scenarioRepo,
		decisionRepo: decisionRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
	}
}

// Execute snapshots the scenario and persists the decision record.
func (uc *RecordDecisionUseCase) Execute(
	ctx context.Context,
	req dto.RecordDecisionRequest,
) (dto.DecisionRecordResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	snapshot, err := json.Marshal(toScenarioResponse(sc))
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("marshal scenario snapshot: %w", err)
	}

	rec, err := model.NewDecisionRecord(
		req.TenantID, req.ScenarioID, req.ProgramID, req.LenderName, req.EligibilityStatus,
		req.TotalAssistance, req.ResultingCLTV,
		req.DataSource, req.GuidelineVersion,
		snapshot, now,
	)
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("create decision record: %w", err)
	}

	if err := uc.decisionRepo.Save(ctx, rec); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("save decision record: %w", err)
	}
	if err := uc.publisher.Publish(ctx, rec.DomainEvents()...); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("publish events: %w", err)
	}

	audit := model.NewAuditEvent(req.TenantID, "decision.recorded", rec.ID(), map[string]string{
		"scenario_id": req.ScenarioID,
		"program_id":  req.ProgramID,
		"status":      req.EligibilityStatus,
	}, now)
	if err := uc.auditRepo.Append(ctx, audit); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("append audit event: %w", err)
	}

	return toDecisionResponse(rec), nil
}
