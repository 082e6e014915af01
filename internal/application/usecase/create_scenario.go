package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
)

// CreateScenarioUseCase creates a new draft scenario for a loan officer.
type CreateScenarioUseCase struct {
	scenarioRepo port.ScenarioRepository
	publisher    port.EventPublisher
}

// NewCreateScenarioUseCase wires dependencies.
func NewCreateScenarioUseCase(
	scenarioRepo port.ScenarioRepository,
	publisher port.EventPublisher,
) *CreateScenarioUseCase {
	return &CreateScenarioUseCase{scenarioRepo: scenarioRepo, publisher: publisher}
}

// Execute creates and persists a draft scenario.
func (uc *CreateScenarioUseCase) Execute(
	ctx context.Context,
	req dto.CreateScenarioRequest,
) (dto.ScenarioResponse, error) {
	now := time.Now().UTC()

	borrower, terms, property, housing, err := scenarioPartsFromDTO(req.Borrower, req.Terms, req.Property, req.Housing)
	if err != nil {
		return dto.ScenarioResponse{}, err
	}

	sc, err := model.NewScenario(req.TenantID, req.OfficerID, borrower, terms, property, housing, now)
	if err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("create scenario: %w", err)
	}

	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("save scenario: %w", err)
	}

	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toScenarioResponse(sc), nil
}
