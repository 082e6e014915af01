package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/service"
)

func texasGrantProgram() model.Program {
	return model.Program{
		ID:                "tx-tsahc-home-sweet",
		Name:              "Home Sweet Texas",
		Administrator:     "TSAHC",
		State:             "TX",
		LoanTypes:         []string{"FHA", "CONVENTIONAL"},
		MinCreditScore:    620,
		MaxPurchasePrice:  decimal.NewFromInt(400_000),
		IncomeLimitType:   model.IncomeLimitAMIPercent,
		AMIPercent:        115,
		AssistancePercent: 3,
		ProgramType:       model.ProgramTypeGrant,
		Layering:          model.LayeringYes,
		FundingSource:     model.FundingStateBond,
		Active:            true,
	}
}

func TestBuildAssistanceStacks_ReturnsRankedStacks(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	catalog := &mockCatalogProvider{
		programsFunc: func(_ context.Context) ([]model.Program, error) {
			return []model.Program{texasGrantProgram()}, nil
		},
		amiTableFunc: func(_ context.Context) (model.AMITable, error) {
			return model.AMITable{
				ByState: map[string]decimal.Decimal{"TX": decimal.NewFromInt(89_000)},
				Default: decimal.NewFromInt(97_800),
			}, nil
		},
	}
	uc := usecase.NewBuildAssistanceStacksUseCase(
		scenarioRepo, catalog,
		service.NewEligibilityFilter(),
		service.NewStackBuilder(),
	)

	resp, err := uc.Execute(context.Background(), dto.BuildAssistanceStacksRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Equal(t, sc.ID(), resp.ScenarioID)
	assert.Equal(t, 1, resp.EligibleProgramCount)
	require.NotEmpty(t, resp.Stacks)

	// 3% of the 300,000 purchase price.
	top := resp.Stacks[0]
	require.Len(t, top.Programs, 1)
	assert.Equal(t, "tx-tsahc-home-sweet", top.Programs[0].ID)
	assert.Equal(t, "9000.00", top.TotalAssistance.StringFixed(2))
	assert.Contains(t, top.AgencyCitation, "HUD")
}

func TestBuildAssistanceStacks_IneligibleBorrowerYieldsNoStacks(t *testing.T) {
	sc := fhaScenario(t)
	program := texasGrantProgram()
	program.MinCreditScore = 740 // above the fixture borrower's 700

	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	catalog := &mockCatalogProvider{
		programsFunc: func(_ context.Context) ([]model.Program, error) {
			return []model.Program{program}, nil
		},
	}
	uc := usecase.NewBuildAssistanceStacksUseCase(
		scenarioRepo, catalog,
		service.NewEligibilityFilter(),
		service.NewStackBuilder(),
	)

	resp, err := uc.Execute(context.Background(), dto.BuildAssistanceStacksRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.EligibleProgramCount)
	assert.Empty(t, resp.Stacks)
}

func TestBuildAssistanceStacks_CatalogFailurePropagates(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	catalog := &mockCatalogProvider{
		programsFunc: func(_ context.Context) ([]model.Program, error) {
			return nil, fmt.Errorf("catalog fetch timed out")
		},
	}
	uc := usecase.NewBuildAssistanceStacksUseCase(
		scenarioRepo, catalog,
		service.NewEligibilityFilter(),
		service.NewStackBuilder(),
	)

	_, err := uc.Execute(context.Background(), dto.BuildAssistanceStacksRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load program catalog")
}
