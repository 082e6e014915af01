package usecase

import (
	"context"
	"fmt"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/port"
	"github.com/loanworks/advisor/internal/domain/service"
)

// BuildAssistanceStacksUseCase filters the DPA catalog against a scenario and
// returns the ranked candidate stacks. Stacks are computed fresh on every
// call against the current catalog snapshot; only a later decision record
// persists a selection.
type BuildAssistanceStacksUseCase struct {
	scenarioRepo port.ScenarioRepository
	catalog      port.CatalogProvider
	filter       *service.EligibilityFilter
	builder      *service.StackBuilder
}

// NewBuildAssistanceStacksUseCase wires dependencies.
func NewBuildAssistanceStacksUseCase(
	scenarioRepo port.ScenarioRepository,
	catalog port.CatalogProvider,
	filter *service.EligibilityFilter,
	builder *service.StackBuilder,
) *BuildAssistanceStacksUseCase {
	return &BuildAssistanceStacksUseCase{
		scenarioRepo: scenarioRepo,
		catalog:      catalog,
		filter:       filter,
		builder:      builder,
	}
}

// Execute runs the eligibility filter and the stack builder.
func (uc *BuildAssistanceStacksUseCase) Execute(
	ctx context.Context,
	req dto.BuildAssistanceStacksRequest,
) (dto.BuildAssistanceStacksResponse, error) {
	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.BuildAssistanceStacksResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	programs, err := uc.catalog.Programs(ctx)
	if err != nil {
		return dto.BuildAssistanceStacksResponse{}, fmt.Errorf("load program catalog: %w", err)
	}
	ami, err := uc.catalog.AMITable(ctx)
	if err != nil {
		return dto.BuildAssistanceStacksResponse{}, fmt.Errorf("load AMI table: %w", err)
	}

	borrower := sc.Borrower()
	terms := sc.Terms()

	eligible := uc.filter.EligiblePrograms(service.EligibilityInput{
		State:             sc.Property().State,
		LoanType:          terms.LoanType,
		CreditScore:       borrower.CreditScore,
		PurchasePrice:     terms.PurchasePrice,
		AnnualIncome:      borrower.AnnualIncome,
		HouseholdSize:     borrower.HouseholdSize,
		FirstTimeBuyer:    borrower.FirstTimeBuyer,
		SpecialCategories: borrower.SpecialCategories,
	}, programs, ami)

	stacks := uc.builder.BuildCandidateStacks(eligible, service.StackInput{
		PurchasePrice: terms.PurchasePrice,
		LoanAmount:    terms.Amount,
		LoanType:      terms.LoanType,
	})

	resp := dto.BuildAssistanceStacksResponse{
		ScenarioID:           sc.ID(),
		EligibleProgramCount: len(eligible),
		Stacks:               make([]dto.StackResponse, len(stacks)),
	}
	for i, st := range stacks {
		resp.Stacks[i] = toStackResponse(st)
	}
	return resp, nil
}
