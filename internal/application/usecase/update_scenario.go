package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/port"
)

// UpdateScenarioUseCase replaces the editable sections of a scenario and
// optionally activates a draft.
type UpdateScenarioUseCase struct {
	scenarioRepo port.ScenarioRepository
	publisher    port.EventPublisher
}

// NewUpdateScenarioUseCase wires dependencies.
func NewUpdateScenarioUseCase(
	scenarioRepo port.ScenarioRepository,
	publisher port.EventPublisher,
) *UpdateScenarioUseCase {
	return &UpdateScenarioUseCase{scenarioRepo: scenarioRepo, publisher: publisher}
}

// Execute applies the update and persists the new version.
func (uc *UpdateScenarioUseCase) Execute(
	ctx context.Context,
	req dto.UpdateScenarioRequest,
) (dto.ScenarioResponse, error) {
	now := time.Now().UTC()

	sc, err := uc.scenarioRepo.FindByID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("find scenario: %w", err)
	}

	borrower, terms, property, housing, err := scenarioPartsFromDTO(req.Borrower, req.Terms, req.Property, req.Housing)
	if err != nil {
		return dto.ScenarioResponse{}, err
	}

	sc, err = sc.UpdateDetails(borrower, terms, property, housing, now)
	if err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("update scenario: %w", err)
	}

	if req.Activate {
		sc, err = sc.Activate(now)
		if err != nil {
			return dto.ScenarioResponse{}, fmt.Errorf("activate scenario: %w", err)
		}
	}

	if err := uc.scenarioRepo.Save(ctx, sc); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("save scenario: %w", err)
	}

	if err := uc.publisher.Publish(ctx, sc.DomainEvents()...); err != nil {
		return dto.ScenarioResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toScenarioResponse(sc), nil
}
