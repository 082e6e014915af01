package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
	"github.com/loanworks/advisor/internal/domain/service"
)

// RunMIComparisonUseCase compares the four MI structures for a scenario and
// snapshots the result.
type RunMIComparisonUseCase struct {
	scenarioRepo port.ScenarioRepository
	publisher    port.EventPublisher
	optimizer    *service.MIOptimizer
}

// NewRunMIComparisonUseCase wires dependencies.
func NewRunMIComparisonUseCase(
	scenarioRepo port.ScenarioRepository,
	publisher port.EventPublisher,
	optimizer *service.MIOptimizer,
) *RunMIComparisonUseCase {
	return &RunMIComparisonUseCase{
		scenarioRepo: scenarioRepo,
		publisher:    publisher,
		optimizer:    optimizer,
	}
}

// Execute runs the comparison and persists the snapshot.
func (uc *RunMIComparisonUseCase) Execute(
	ctx context.Context,
	req dto.RunMIComparisonRequest,
) (dto.RunMIComparisonResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	terms := sc.Terms()
	value := terms.PropertyValue
	if value.IsZero() {
		value = terms.PurchasePrice
	}

	options, err := uc.optimizer.Compare(service.MIInput{
		LoanAmount:            terms.Amount,
		PropertyValue:         value,
		NoteRatePct:           terms.RatePct,
		TermMonths:            terms.TermMonths,
		HorizonMonths:         req.HorizonMonths,
		MonthlyFactorPct:      req.MonthlyFactorPct,
		SinglePremiumPct:      req.SinglePremiumPct,
		SplitUpfrontPct:       req.SplitUpfrontPct,
		SplitMonthlyFactorPct: req.SplitMonthlyFactorPct,
		LPMIRateAddPct:        req.LPMIRateAddPct,
	})
	if err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("compare MI structures: %w", err)
	}

	resp := dto.RunMIComparisonResponse{
		ScenarioID:  sc.ID(),
		Options:     make([]dto.MIOptionResponse, len(options)),
		CompletedAt: now,
	}
	for i, o := range options {
		resp.Options[i] = dto.MIOptionResponse{
			Structure:          o.Structure,
			UpfrontCost:        o.UpfrontCost,
			MonthlyMI:          o.MonthlyMI,
			TotalMonthly:       o.TotalMonthly,
			MonthsMIAccrues:    o.MonthsMIAccrues,
			TotalCostAtHorizon: o.TotalCostAtHorizon,
			CancelMonth:        o.CancelMonth,
			Badges:             o.Badges,
		}
	}

	snapshot, err := analysisSnapshot(req, resp)
	if err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("marshal analysis snapshot: %w", err)
	}
	sc, err = sc.WithAnalysis(model.AnalysisMIOptimizer, snapshot, now)
	if err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("attach analysis: %w", err)
	}
	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("save scenario: %w", err)
	}
	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.RunMIComparisonResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return resp, nil
}
