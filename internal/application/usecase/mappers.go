package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// analysisSnapshot pairs the engine inputs with the produced result so a
// stored analysis can be replayed from the loan file without re-running the
// engine against data that may since have changed.
func analysisSnapshot(inputs, result any) (json.RawMessage, error) {
	return json.Marshal(struct {
		Inputs any `json:"inputs"`
		Result any `json:"result"`
	}{inputs, result})
}

// ---------------------------------------------------------------------------
// DTO <-> domain mapping shared by the use cases
// ---------------------------------------------------------------------------

func toScenarioResponse(s model.Scenario) dto.ScenarioResponse {
	b := s.Borrower()
	t := s.Terms()
	p := s.Property()
	h := s.Housing()
	return dto.ScenarioResponse{
		ID:        s.ID(),
		TenantID:  s.TenantID(),
		OfficerID: s.OfficerID(),
		Borrower: dto.BorrowerProfile{
			Names:             b.Names,
			CreditScore:       b.CreditScore,
			AnnualIncome:      b.AnnualIncome,
			MonthlyDebts:      b.MonthlyDebts,
			HouseholdSize:     b.HouseholdSize,
			FirstTimeBuyer:    b.FirstTimeBuyer,
			SpecialCategories: b.SpecialCategories,
		},
		Terms: dto.LoanTerms{
			Amount:        t.Amount,
			PurchasePrice: t.PurchasePrice,
			PropertyValue: t.PropertyValue,
			RatePct:       t.RatePct,
			TermMonths:    t.TermMonths,
			LoanType:      t.LoanType.String(),
			Investor:      t.Investor,
			Purpose:       t.Purpose,
		},
		Property: dto.PropertyInfo{
			Street:       p.Street,
			City:         p.City,
			State:        p.State,
			Zip:          p.Zip,
			PropertyType: p.PropertyType,
			Occupancy:    p.Occupancy,
		},
		Housing: dto.HousingExpense{
			PrincipalAndInterest: h.PrincipalAndInterest,
			Taxes:                h.Taxes,
			Insurance:            h.Insurance,
			MortgageInsurance:    h.MortgageInsurance,
			HOADues:              h.HOADues,
			TaxesEstimated:       h.TaxesEstimated,
			InsuranceEstimated:   h.InsuranceEstimated,
		},
		Status:    s.Status().String(),
		LTVPct:    service.RoundCents(s.LTV()),
		Analyses:  s.Analyses(),
		Version:   s.Version(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func scenarioPartsFromDTO(
	borrower dto.BorrowerProfile,
	terms dto.LoanTerms,
	property dto.PropertyInfo,
	housing dto.HousingExpense,
) (model.BorrowerProfile, model.LoanTerms, model.PropertyInfo, model.HousingExpense, error) {
	loanType, err := valueobject.NewLoanType(terms.LoanType)
	if err != nil {
		return model.BorrowerProfile{}, model.LoanTerms{}, model.PropertyInfo{}, model.HousingExpense{},
			fmt.Errorf("parse loan type: %w", err)
	}

	return model.BorrowerProfile{
			Names:             borrower.Names,
			CreditScore:       borrower.CreditScore,
			AnnualIncome:      borrower.AnnualIncome,
			MonthlyDebts:      borrower.MonthlyDebts,
			HouseholdSize:     borrower.HouseholdSize,
			FirstTimeBuyer:    borrower.FirstTimeBuyer,
			SpecialCategories: borrower.SpecialCategories,
		},
		model.LoanTerms{
			Amount:        terms.Amount,
			PurchasePrice: terms.PurchasePrice,
			PropertyValue: terms.PropertyValue,
			RatePct:       terms.RatePct,
			TermMonths:    terms.TermMonths,
			LoanType:      loanType,
			Investor:      terms.Investor,
			Purpose:       terms.Purpose,
		},
		model.PropertyInfo{
			Street:       property.Street,
			City:         property.City,
			State:        property.State,
			Zip:          property.Zip,
			PropertyType: property.PropertyType,
			Occupancy:    property.Occupancy,
		},
		model.HousingExpense{
			PrincipalAndInterest: housing.PrincipalAndInterest,
			Taxes:                housing.Taxes,
			Insurance:            housing.Insurance,
			MortgageInsurance:    housing.MortgageInsurance,
			HOADues:              housing.HOADues,
			TaxesEstimated:       housing.TaxesEstimated,
			InsuranceEstimated:   housing.InsuranceEstimated,
		},
		nil
}

func toTradelineResponse(t model.Tradeline) dto.TradelineResponse {
	resp := dto.TradelineResponse{
		ID:                t.ID(),
		ScenarioID:        t.ScenarioID(),
		Creditor:          t.Creditor(),
		DebtType:          t.DebtType().String(),
		Balance:           t.Balance(),
		ReportedPayment:   t.ReportedPayment(),
		DocumentedPayment: t.DocumentedPayment(),
		MonthlyDebt:       service.RoundCents(t.MonthlyDebt()),
		DedupeAction:      t.DedupeAction().String(),
		DedupeGroupID:     t.DedupeGroupID(),
		DecisionReason:    t.DecisionReason(),
	}
	if qp, ok := t.StudentPayment(); ok {
		resp.QualifyingMethod = qp.Method
		resp.QualifyingPayment = service.RoundCents(qp.Payment)
		resp.QualifyingRationale = qp.Rationale
	}
	return resp
}

func toDuplicateGroupResponse(g service.DuplicateGroup) dto.DuplicateGroupResponse {
	members := make([]dto.GroupMemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = dto.GroupMemberResponse{TradelineID: m.TradelineID, Role: m.Role}
	}
	return dto.DuplicateGroupResponse{
		ID:                g.ID,
		GroupType:         g.GroupType,
		Confidence:        g.Confidence,
		ReasonCode:        g.ReasonCode,
		RecommendedAction: g.RecommendedAction,
		Members:           members,
		Resolved:          g.Resolved,
	}
}

func toStackResponse(st service.CandidateStack) dto.StackResponse {
	programs := make([]dto.ProgramResponse, len(st.Programs))
	for i, p := range st.Programs {
		programs[i] = dto.ProgramResponse{
			ID:            p.ID,
			Name:          p.Name,
			Administrator: p.Administrator,
			ProgramType:   p.ProgramType,
		}
	}
	return dto.StackResponse{
		Programs:             programs,
		TotalAssistance:      service.RoundCents(st.TotalAssistance),
		ResultingCLTV:        st.ResultingCLTV.Round(2),
		MonthlyPaymentImpact: service.RoundCents(st.MonthlyPaymentImpact),
		LayeringBasis:        st.LayeringBasis,
		AgencyCitation:       st.AgencyCitation,
		StackType:            st.StackType,
	}
}

func toDecisionResponse(r model.DecisionRecord) dto.DecisionRecordResponse {
	return dto.DecisionRecordResponse{
		ID:                r.ID(),
		TenantID:          r.TenantID(),
		ScenarioID:        r.ScenarioID(),
		ProgramID:         r.ProgramID(),
		LenderName:        r.LenderName(),
		EligibilityStatus: r.EligibilityStatus(),
		TotalAssistance:   r.TotalAssistance(),
		ResultingCLTV:     r.ResultingCLTV(),
		DataSource:        r.DataSource(),
		GuidelineVersion:  r.GuidelineVersion(),
		Voided:            r.Voided(),
		VoidReason:        r.VoidReason(),
		CreatedAt:         r.CreatedAt(),
	}
}
