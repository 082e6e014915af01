package usecase

import (
	"context"
	"fmt"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/port"
)

// GetScenarioUseCase retrieves a scenario by ID.
type GetScenarioUseCase struct {
	scenarioRepo port.ScenarioRepository
}

// NewGetScenarioUseCase wires dependencies.
func NewGetScenarioUseCase(scenarioRepo port.ScenarioRepository) *GetScenarioUseCase {
	return &GetScenarioUseCase{scenarioRepo: scenarioRepo}
}

// Execute loads and returns a scenario.
func (uc *GetScenarioUseCase) Execute(
	ctx context.Context,
	req dto.GetScenarioRequest,
) (dto.ScenarioResponse, error) {
	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("find scenario: %w", err)
	}
	return toScenarioResponse(sc), nil
}
