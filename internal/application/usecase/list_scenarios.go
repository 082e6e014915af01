package usecase

import (
	"context"
	"fmt"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/port"
)

// ListScenariosUseCase lists the scenarios owned by a loan officer.
type ListScenariosUseCase struct {
	scenarioRepo port.ScenarioRepository
}

// NewListScenariosUseCase wires dependencies.
func NewListScenariosUseCase(scenarioRepo port.ScenarioRepository) *ListScenariosUseCase {
	return &ListScenariosUseCase{scenarioRepo: scenarioRepo}
}

// Execute returns the officer's scenarios.
func (uc *ListScenariosUseCase) Execute(
	ctx context.Context,
	req dto.ListScenariosRequest,
) ([]dto.ScenarioResponse, error) {
	scenarios, err := uc.scenarioRepo.FindByOwner(ctx, req.TenantID, req.OfficerID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	out := make([]dto.ScenarioResponse, len(scenarios))
	for i, sc := range scenarios {
		out[i] = toScenarioResponse(sc)
	}
	return out, nil
}
