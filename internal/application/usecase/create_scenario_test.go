package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

func validCreateScenarioRequest() dto.CreateScenarioRequest {
	return dto.CreateScenarioRequest{
		TenantID:  "tenant-001",
		OfficerID: "officer-001",
		Borrower: dto.BorrowerProfile{
			Names:          []string{"Jordan Avery"},
			CreditScore:    700,
			AnnualIncome:   decimal.NewFromInt(85_000),
			HouseholdSize:  3,
			FirstTimeBuyer: true,
		},
		Terms: dto.LoanTerms{
			Amount:        decimal.NewFromInt(270_000),
			PurchasePrice: decimal.NewFromInt(300_000),
			PropertyValue: decimal.NewFromInt(300_000),
			RatePct:       6.5,
			TermMonths:    360,
			LoanType:      "FHA",
			Purpose:       "PURCHASE",
		},
		Property: dto.PropertyInfo{
			Street:       "12 Travis Heights Blvd",
			City:         "Austin",
			State:        "TX",
			Zip:          "78704",
			PropertyType: "SINGLE_FAMILY",
			Occupancy:    "OWNER_OCCUPIED",
		},
		Housing: dto.HousingExpense{PrincipalAndInterest: decimal.NewFromFloat(1_706.58)},
	}
}

func TestCreateScenario_PersistsDraft(t *testing.T) {
	scenarioRepo := &mockScenarioRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewCreateScenarioUseCase(scenarioRepo, publisher)

	resp, err := uc.Execute(context.Background(), validCreateScenarioRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.Equal(t, 1, resp.Version)
	// 270,000 against a 300,000 value.
	assert.Equal(t, "90.00", resp.LTVPct.StringFixed(2))

	require.Len(t, scenarioRepo.savedScenarios, 1)
	assert.Equal(t, resp.ID, scenarioRepo.savedScenarios[0].ID())
	assert.NotEmpty(t, publisher.publishedEvents)
}

func TestCreateScenario_RejectsUnknownLoanType(t *testing.T) {
	scenarioRepo := &mockScenarioRepository{}
	uc := usecase.NewCreateScenarioUseCase(scenarioRepo, &mockEventPublisher{})

	req := validCreateScenarioRequest()
	req.Terms.LoanType = "JUMBO"

	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse loan type")
	assert.Empty(t, scenarioRepo.savedScenarios)
}

func TestUpdateScenario_ActivatesDraft(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	uc := usecase.NewUpdateScenarioUseCase(scenarioRepo, &mockEventPublisher{})

	base := validCreateScenarioRequest()
	resp, err := uc.Execute(context.Background(), dto.UpdateScenarioRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
		Borrower:   base.Borrower,
		Terms:      base.Terms,
		Property:   base.Property,
		Housing:    base.Housing,
		Activate:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)
	require.Len(t, scenarioRepo.savedScenarios, 1)
	assert.True(t, scenarioRepo.savedScenarios[0].Status().Equal(valueobject.ScenarioStatusActive))
}

func TestUpdateScenario_ActivatingAnActiveScenarioFails(t *testing.T) {
	sc := fhaScenario(t)
	active, err := sc.Activate(sc.UpdatedAt())
	require.NoError(t, err)

	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return active, nil },
	}
	uc := usecase.NewUpdateScenarioUseCase(scenarioRepo, &mockEventPublisher{})

	base := validCreateScenarioRequest()
	_, err = uc.Execute(context.Background(), dto.UpdateScenarioRequest{
		TenantID:   "tenant-001",
		ScenarioID: active.ID(),
		Borrower:   base.Borrower,
		Terms:      base.Terms,
		Property:   base.Property,
		Housing:    base.Housing,
		Activate:   true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestGetScenario_MapsAggregate(t *testing.T) {
	sc := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByIDFunc: func(_ context.Context, _, _ string) (model.Scenario, error) { return sc, nil },
	}
	uc := usecase.NewGetScenarioUseCase(scenarioRepo)

	resp, err := uc.Execute(context.Background(), dto.GetScenarioRequest{
		TenantID:   "tenant-001",
		ScenarioID: sc.ID(),
	})

	require.NoError(t, err)
	assert.Equal(t, sc.ID(), resp.ID)
	assert.Equal(t, []string{"Jordan Avery"}, resp.Borrower.Names)
	assert.Equal(t, "FHA", resp.Terms.LoanType)
	assert.Equal(t, "TX", resp.Property.State)
}

func TestListScenarios_ReturnsOwnerScenarios(t *testing.T) {
	a := fhaScenario(t)
	b := fhaScenario(t)
	scenarioRepo := &mockScenarioRepository{
		findByOwnerFunc: func(_ context.Context, _, ownerID string) ([]model.Scenario, error) {
			require.Equal(t, "officer-001", ownerID)
			return []model.Scenario{a, b}, nil
		},
	}
	uc := usecase.NewListScenariosUseCase(scenarioRepo)

	resp, err := uc.Execute(context.Background(), dto.ListScenariosRequest{
		TenantID:  "tenant-001",
		OfficerID: "officer-001",
	})

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, a.ID(), resp[0].ID)
	assert.Equal(t, b.ID(), resp[1].ID)
}
