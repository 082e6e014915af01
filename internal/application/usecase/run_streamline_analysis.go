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

// RunStreamlineAnalysisUseCase runs the FHA Streamline eligibility chain and
// the NTB/MIP analysis, then snapshots both onto the scenario.
type RunStreamlineAnalysisUseCase struct {
	scenarioRepo port.ScenarioRepository
	publisher    port.EventPublisher
	rules        *service.StreamlineRuleEngine
	analyzer     *service.NTBAnalyzer
}

// NewRunStreamlineAnalysisUseCase wires dependencies.
func NewRunStreamlineAnalysisUseCase(
	scenarioRepo port.ScenarioRepository,
	publisher port.EventPublisher,
	rules *service.StreamlineRuleEngine,
	analyzer *service.NTBAnalyzer,
) *RunStreamlineAnalysisUseCase {
	return &RunStreamlineAnalysisUseCase{
		scenarioRepo: scenarioRepo,
		publisher:    publisher,
		rules:        rules,
		analyzer:     analyzer,
	}
}

// Execute evaluates eligibility, analyzes the pricing options, and persists
// the snapshot.
func (uc *RunStreamlineAnalysisUseCase) Execute(
	ctx context.Context,
	req dto.RunStreamlineAnalysisRequest,
) (dto.RunStreamlineAnalysisResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	eligibility := uc.rules.Evaluate(service.StreamlineInput{
		FHAInsured:       req.FHAInsured,
		Delinquent:       req.Delinquent,
		LatesLast6Months: req.LatesLast6Months,
		LatesMonths7To12: req.LatesMonths7To12,
		OwnerOccupied:    req.OwnerOccupied,
		InForbearance:    req.InForbearance,
		BorrowerRemoved:  req.BorrowerRemoved,
		TitleChanged:     req.TitleChanged,
	})

	options := make([]service.PricingOption, len(req.PricingOptions))
	for i, opt := range req.PricingOptions {
		options[i] = service.PricingOption{
			Label:       opt.Label,
			NoteRatePct: opt.NoteRatePct,
			TermMonths:  opt.TermMonths,
		}
	}

	results, err := uc.analyzer.Analyze(service.NTBInput{
		UnpaidBalance:          req.UnpaidBalance,
		ExistingNoteRatePct:    req.ExistingNoteRatePct,
		ExistingMIPFactorPct:   req.ExistingMIPFactorPct,
		ExistingMonthlyPI:      req.ExistingMonthlyPI,
		ExistingMonthlyMIP:     req.ExistingMonthlyMIP,
		OriginalUFMIP:          req.OriginalUFMIP,
		MonthsSinceEndorsement: req.MonthsSinceEndorsement,
	}, options)
	if err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("analyze pricing options: %w", err)
	}

	resp := dto.RunStreamlineAnalysisResponse{
		ScenarioID:    sc.ID(),
		Rules:         make([]dto.RuleResultResponse, len(eligibility.Rules)),
		FinalDecision: eligibility.FinalDecision,
		Options:       make([]dto.NTBOptionResponse, len(results)),
		CompletedAt:   now,
	}
	for i, r := range eligibility.Rules {
		resp.Rules[i] = dto.RuleResultResponse{Name: r.Name, Status: r.Status, Hard: r.Hard, Message: r.Message}
	}
	for i, r := range results {
		resp.Options[i] = dto.NTBOptionResponse{
			Label:            r.Label,
			NoteRatePct:      r.NoteRatePct,
			CombinedRatePct:  r.CombinedRatePct,
			RateReductionPct: r.RateReductionPct,
			NTBPass:          r.NTBPass,
			NewMonthlyPI:     r.NewMonthlyPI,
			NewMonthlyMIP:    r.NewMonthlyMIP,
			NewTotalPayment:  r.NewTotalPayment,
			MonthlySavings:   r.MonthlySavings,
			NewUFMIP:         r.NewUFMIP,
			UFMIPRefundPct:   r.UFMIPRefundPct,
			UFMIPRefund:      r.UFMIPRefund,
			NetUFMIP:         r.NetUFMIP,
			BreakevenMonths:  r.BreakevenMonths,
			Badge:            r.Badge,
		}
	}

	snapshot, err := analysisSnapshot(req, resp)
	if err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("marshal analysis snapshot: %w", err)
	}
	sc, err = sc.WithAnalysis(model.AnalysisFHAStreamline, snapshot, now)
	if err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("attach analysis: %w", err)
	}
	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("save scenario: %w", err)
	}
	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.RunStreamlineAnalysisResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return resp, nil
}
