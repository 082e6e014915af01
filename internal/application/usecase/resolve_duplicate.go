package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
)

// ResolveDuplicateUseCase applies a user decision to a duplicate-group
// member. Every resolution is written to the audit log.
type ResolveDuplicateUseCase struct {
	tradelineRepo port.TradelineRepository
	auditRepo     port.AuditLogRepository
	publisher     port.EventPublisher
}

// NewResolveDuplicateUseCase wires dependencies.
func NewResolveDuplicateUseCase(
	tradelineRepo port.TradelineRepository,
	auditRepo port.AuditLogRepository,
	publisher port.EventPublisher,
) *ResolveDuplicateUseCase {
	return &ResolveDuplicateUseCase{
		tradelineRepo: tradelineRepo,
		auditRepo:     auditRepo,
		publisher:     publisher,
	}
}

// Execute applies the requested action to the tradeline and persists it.
func (uc *ResolveDuplicateUseCase) Execute(
	ctx context.Context,
	req dto.ResolveDuplicateRequest,
) (dto.ResolveDuplicateResponse, error) {
	now := time.Now().UTC()

	t, err := uc.tradelineRepo.FindByID(ctx, req.TenantID, req.TradelineID)
	if err != nil {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("find tradeline: %w", err)
	}
	if t.ScenarioID() != req.ScenarioID {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("tradeline %s does not belong to scenario %s", req.TradelineID, req.ScenarioID)
	}

	switch req.Action {
	case dto.ResolveActionApply:
		t, err = t.MarkManualExcluded(req.GroupID, req.Reason, now)
	case dto.ResolveActionKeepBoth:
		t, err = t.OverrideKeepBoth(req.GroupID, req.Reason, now)
	case dto.ResolveActionNotDuplicate:
		reason := req.Reason
		if reason == "" {
			reason = "Reviewed and determined not to be a duplicate."
		}
		t, err = t.OverrideKeepBoth(req.GroupID, reason, now)
	default:
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("unknown resolution action: %q", req.Action)
	}
	if err != nil {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("apply resolution: %w", err)
	}

	if err := uc.tradelineRepo.Save(ctx, t); err != nil {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("save tradeline: %w", err)
	}
	if err := uc.publisher.Publish(ctx, t.DomainEvents()...); err != nil {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("publish events: %w", err)
	}

	audit := model.NewAuditEvent(req.TenantID, "dedupe.resolved", t.ID(), map[string]string{
		"scenario_id": req.ScenarioID,
		"group_id":    req.GroupID,
		"action":      req.Action,
		"reason":      req.Reason,
	}, now)
	if err := uc.auditRepo.Append(ctx, audit); err != nil {
		return dto.ResolveDuplicateResponse{}, fmt.Errorf("append audit event: %w", err)
	}

	return dto.ResolveDuplicateResponse{Tradeline: toTradelineResponse(t)}, nil
}
