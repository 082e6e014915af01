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

// RunRateBuydownUseCase compares a lender's pricing grid against the
// scenario's baseline rate and snapshots the result.
type RunRateBuydownUseCase struct {
	scenarioRepo port.ScenarioRepository
	publisher    port.EventPublisher
	comparator   *service.BuydownComparator
}

// NewRunRateBuydownUseCase wires dependencies.
func NewRunRateBuydownUseCase(
	scenarioRepo port.ScenarioRepository,
	publisher port.EventPublisher,
	comparator *service.BuydownComparator,
) *RunRateBuydownUseCase {
	return &RunRateBuydownUseCase{
		scenarioRepo: scenarioRepo,
		publisher:    publisher,
		comparator:   comparator,
	}
}

// Execute runs the comparison and persists the snapshot.
func (uc *RunRateBuydownUseCase) Execute(
	ctx context.Context,
	req dto.RunRateBuydownRequest,
) (dto.RunRateBuydownResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	terms := sc.Terms()
	options := make([]service.BuydownOption, len(req.Options))
	for i, opt := range req.Options {
		options[i] = service.BuydownOption{
			Label:       opt.Label,
			NoteRatePct: opt.NoteRatePct,
			Price:       opt.Price,
		}
	}

	results, err := uc.comparator.Compare(service.BuydownBaseline{
		LoanAmount:     terms.Amount,
		NoteRatePct:    terms.RatePct,
		TermMonths:     terms.TermMonths,
		MonthlyPayment: sc.Housing().PrincipalAndInterest,
	}, options, req.HorizonMonths)
	if err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("compare rate options: %w", err)
	}

	resp := dto.RunRateBuydownResponse{
		ScenarioID:  sc.ID(),
		Options:     make([]dto.BuydownOptionResponse, len(results)),
		CompletedAt: now,
	}
	for i, r := range results {
		resp.Options[i] = dto.BuydownOptionResponse{
			Label:               r.Label,
			NoteRatePct:         r.NoteRatePct,
			UpfrontCost:         r.UpfrontCost,
			MonthlyPayment:      r.MonthlyPayment,
			MonthlySavings:      r.MonthlySavings,
			BreakevenMonths:     r.BreakevenMonths,
			NetSavingsAtHorizon: r.NetSavingsAtHorizon,
			BenefitScore:        r.BenefitScore,
			Badges:              r.Badges,
		}
	}

	snapshot, err := analysisSnapshot(req, resp)
	if err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("marshal analysis snapshot: %w", err)
	}
	sc, err = sc.WithAnalysis(model.AnalysisRateBuydown, snapshot, now)
	if err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("attach analysis: %w", err)
	}
	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("save scenario: %w", err)
	}
	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.RunRateBuydownResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return resp, nil
}
