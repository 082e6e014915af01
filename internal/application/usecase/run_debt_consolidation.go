package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// RunDebtConsolidationUseCase runs duplicate detection over a scenario's
// tradelines, auto-resolves high-confidence general groups, resolves
// student-loan qualifying payments, and snapshots the outcome onto the
// scenario.
type RunDebtConsolidationUseCase struct {
	scenarioRepo  port.ScenarioRepository
	tradelineRepo port.TradelineRepository
	auditRepo     port.AuditLogRepository
	publisher     port.EventPublisher
	detector      *service.DuplicateDetector
	selector      *service.StudentLoanRuleSelector
}

// NewRunDebtConsolidationUseCase wires dependencies.
func NewRunDebtConsolidationUseCase(
	scenarioRepo port.ScenarioRepository,
	tradelineRepo port.TradelineRepository,
	auditRepo port.AuditLogRepository,
	publisher port.EventPublisher,
	detector *service.DuplicateDetector,
	selector *service.StudentLoanRuleSelector,
) *RunDebtConsolidationUseCase {
	return &RunDebtConsolidationUseCase{
		scenarioRepo:  scenarioRepo,
		tradelineRepo: tradelineRepo,
		auditRepo:     auditRepo,
		publisher:     publisher,
		detector:      detector,
		selector:      selector,
	}
}

// Execute runs both passes and persists the results.
func (uc *RunDebtConsolidationUseCase) Execute(
	ctx context.Context,
	req dto.RunDebtConsolidationRequest,
) (dto.RunDebtConsolidationResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("find scenario: %w", err)
	}
	tradelines, err := uc.tradelineRepo.FindByScenarioID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("load tradelines: %w", err)
	}

	// 1. Detect duplicates.
	groups := uc.detector.Detect(tradelines)

	// 2. Auto-resolve HIGH-confidence general groups: the REMOVE member is
	// excluded without user interaction. Everything else waits for a manual
	// decision.
	byID := make(map[string]model.Tradeline, len(tradelines))
	for _, t := range tradelines {
		byID[t.ID()] = t
	}

	autoResolved := 0
	for gi := range groups {
		g := &groups[gi]
		if g.GroupType != service.GroupTypeGeneral || g.Confidence != service.ConfidenceHigh {
			continue
		}
		for _, m := range g.Members {
			if m.Role != service.RoleRemove {
				continue
			}
			t, ok := byID[m.TradelineID]
			if !ok {
				continue
			}
			t, err = t.MarkAutoRemoved(g.ID, now)
			if err != nil {
				return dto.RunDebtConsolidationResponse{}, fmt.Errorf("auto-remove tradeline %s: %w", m.TradelineID, err)
			}
			byID[m.TradelineID] = t
			autoResolved++
		}
		g.Resolved = true
	}

	// 3. Resolve qualifying payments for unexcluded student loans.
	terms := sc.Terms()
	for id, t := range byID {
		if t.Excluded() || !t.DebtType().Equal(valueobject.DebtTypeStudentLoan) {
			continue
		}
		qp, err := uc.selector.QualifyingPayment(t, terms.LoanType, terms.Investor)
		if err != nil {
			return dto.RunDebtConsolidationResponse{}, fmt.Errorf("resolve student-loan payment: %w", err)
		}
		t, err = t.WithQualifyingPayment(qp, now)
		if err != nil {
			return dto.RunDebtConsolidationResponse{}, fmt.Errorf("attach qualifying payment: %w", err)
		}
		byID[id] = t
	}

	// 4. Persist tradelines, publish their events, and log auto-removals.
	updated := make([]model.Tradeline, 0, len(tradelines))
	total := decimal.Zero
	for _, orig := range tradelines {
		t := byID[orig.ID()]
		total = total.Add(t.MonthlyDebt())
		updated = append(updated, t)
	}
	if err := uc.tradelineRepo.SaveAll(ctx, updated); err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("save tradelines: %w", err)
	}
	for _, t := range updated {
		if err := uc.publisher.Publish(ctx, t.DomainEvents()...); err != nil {
			return dto.RunDebtConsolidationResponse{}, fmt.Errorf("publish events: %w", err)
		}
	}

	resp := dto.RunDebtConsolidationResponse{
		ScenarioID:       sc.ID(),
		Groups:           make([]dto.DuplicateGroupResponse, len(groups)),
		Tradelines:       make([]dto.TradelineResponse, len(updated)),
		TotalMonthlyDebt: service.RoundCents(total),
		AutoResolved:     autoResolved,
		CompletedAt:      now,
	}
	for i, g := range groups {
		resp.Groups[i] = toDuplicateGroupResponse(g)
	}
	for i, t := range updated {
		resp.Tradelines[i] = toTradelineResponse(t)
	}

	// 5. Snapshot the full result onto the scenario for audit replay.
	snapshot, err := json.Marshal(resp)
	if err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("marshal analysis snapshot: %w", err)
	}
	sc, err = sc.WithAnalysis(model.AnalysisDebtConsolidation, snapshot, now)
	if err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("attach analysis: %w", err)
	}
	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("save scenario: %w", err)
	}
	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	audit := model.NewAuditEvent(req.TenantID, "debt_consolidation.run", sc.ID(), map[string]string{
		"groups":        fmt.Sprintf("%d", len(groups)),
		"auto_resolved": fmt.Sprintf("%d", autoResolved),
	}, now)
	if err := uc.auditRepo.Append(ctx, audit); err != nil {
		return dto.RunDebtConsolidationResponse{}, fmt.Errorf("append audit event: %w", err)
	}

	return resp, nil
}
