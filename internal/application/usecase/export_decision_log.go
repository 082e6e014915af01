package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/loanworks/advisor/internal/application/dto"
	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/port"
)

// ExportDecisionLogUseCase renders a scenario's decision history as plain
// text for inclusion in the loan file.
type ExportDecisionLogUseCase struct {
	decisionRepo port.DecisionRecordRepository
}

// NewExportDecisionLogUseCase wires dependencies.
func NewExportDecisionLogUseCase(decisionRepo port.DecisionRecordRepository) *ExportDecisionLogUseCase {
	return &ExportDecisionLogUseCase{decisionRepo: decisionRepo}
}

// Execute formats every decision record for the scenario, oldest first.
func (uc *ExportDecisionLogUseCase) Execute(
	ctx context.Context,
	req dto.ExportDecisionLogRequest,
) (dto.ExportDecisionLogResponse, error) {
	records, err := uc.decisionRepo.FindByScenarioID(ctx, req.TenantID, req.ScenarioID)
	if err != nil {
		return dto.ExportDecisionLogResponse{}, fmt.Errorf("load decision records: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("DECISION LOG\n")
	sb.WriteString("Scenario: " + req.ScenarioID + "\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for i, rec := range records {
		sb.WriteString(formatDecisionLine(i+1, rec))
	}
	if len(records) == 0 {
		sb.WriteString("No decisions recorded.\n")
	}

	return dto.ExportDecisionLogResponse{
		ScenarioID: req.ScenarioID,
		Content:    sb.String(),
	}, nil
}

// formatDecisionLine renders one record keyed by its 1-based position in the
// history.
func formatDecisionLine(index int, rec model.DecisionRecord) string {
	line := fmt.Sprintf(
		"#%d [%s] program=%s lender=%s status=%s assistance=%s cltv=%s source=%s guideline=%s",
		index,
		rec.CreatedAt().Format("2006-01-02 15:04:05 MST"),
		rec.ProgramID(),
		rec.LenderName(),
		rec.EligibilityStatus(),
		rec.TotalAssistance().StringFixed(2),
		rec.ResultingCLTV().StringFixed(2),
		rec.DataSource(),
		rec.GuidelineVersion(),
	)
	if rec.Voided() {
		line += fmt.Sprintf(" VOIDED (%s)", rec.VoidReason())
	}
	return line + "\n"
}
