package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
)

// VoidDecisionUseCase soft-voids a decision record with a reason. The record
// itself is never edited or deleted.
type VoidDecisionUseCase struct {
	decisionRepo port.DecisionRecordRepository
	auditRepo    port.AuditLogRepository
	publisher    port.EventPublisher
}

// NewVoidDecisionUseCase wires dependencies.
func NewVoidDecisionUseCase(
	decisionRepo port.DecisionRecordRepository,
	auditRepo port.AuditLogRepository,
	publisher port.EventPublisher,
) *VoidDecisionUseCase {
	return &VoidDecisionUseCase{
		decisionRepo: decisionRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
	}
}

// Execute voids the record and persists it.
func (uc *VoidDecisionUseCase) Execute(
	ctx context.Context,
	req dto.VoidDecisionRequest,
) (dto.DecisionRecordResponse, error) {
	now := time.Now().UTC()

	rec, err := uc.decisionRepo.FindByID(ctx, req.TenantID, req.DecisionID)
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("find decision record: %w", err)
	}

	rec, err = rec.Void(req.Reason, now)
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("void decision record: %w", err)
	}

	if err := uc.decisionRepo.Save(ctx, rec); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("save decision record: %w", err)
	}
	if err := uc.publisher.Publish(ctx, rec.DomainEvents()...); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("publish events: %w", err)
	}

	audit := model.NewAuditEvent(req.TenantID, "decision.voided", rec.ID(), map[string]string{
		"reason": req.Reason,
	}, now)
	if err := uc.auditRepo.Append(ctx, audit); err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("append audit event: %w", err)
	}

	return toDecisionResponse(rec), nil
}
