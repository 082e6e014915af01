package grpc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loanworks/advisor/internal/application/usecase"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// AdvisorHandler is the gRPC handler for scenario and analysis operations.
type AdvisorHandler struct {
	UnimplementedAdvisorServiceServer

	createScenario *usecase.CreateScenarioUseCase
	getScenario    *usecase.GetScenarioUseCase
	updateScenario *usecase.UpdateScenarioUseCase
	listScenarios  *usecase.ListScenariosUseCase

	buildStacks   *usecase.BuildAssistanceStacksUseCase
	consolidation *usecase.RunDebtConsolidationUseCase
	resolveDupe   *usecase.ResolveDuplicateUseCase
	streamline    *usecase.RunStreamlineAnalysisUseCase
	miComparison  *usecase.RunMIComparisonUseCase
	rateBuydown   *usecase.RunRateBuydownUseCase

	recordDecision *usecase.RecordDecisionUseCase
	voidDecision   *usecase.VoidDecisionUseCase
	exportLog      *usecase.ExportDecisionLogUseCase

	// Provenance defaults stamped onto decision records when the caller
	// does not supply them.
	dataSource       string
	guidelineVersion string
}

// HandlerDeps bundles the use-case dependencies for NewAdvisorHandler.
type HandlerDeps struct {
	CreateScenario *usecase.CreateScenarioUseCase
	GetScenario    *usecase.GetScenarioUseCase
	UpdateScenario *usecase.UpdateScenarioUseCase
	ListScenarios  *usecase.ListScenariosUseCase

	BuildStacks   *usecase.BuildAssistanceStacksUseCase
	Consolidation *usecase.RunDebtConsolidationUseCase
	ResolveDupe   *usecase.ResolveDuplicateUseCase
	Streamline    *usecase.RunStreamlineAnalysisUseCase
	MIComparison  *usecase.RunMIComparisonUseCase
	RateBuydown   *usecase.RunRateBuydownUseCase

	RecordDecision *usecase.RecordDecisionUseCase
	VoidDecision   *usecase.VoidDecisionUseCase
	ExportLog      *usecase.ExportDecisionLogUseCase

	DataSource       string
	GuidelineVersion string
}

// NewAdvisorHandler creates a new handler with all use-case dependencies.
func NewAdvisorHandler(deps HandlerDeps) *AdvisorHandler {
	return &AdvisorHandler{
		createScenario:   deps.CreateScenario,
		getScenario:      deps.GetScenario,
		updateScenario:   deps.UpdateScenario,
		listScenarios:    deps.ListScenarios,
		buildStacks:      deps.BuildStacks,
		consolidation:    deps.Consolidation,
		resolveDupe:      deps.ResolveDupe,
		streamline:       deps.Streamline,
		miComparison:     deps.MIComparison,
		rateBuydown:      deps.RateBuydown,
		recordDecision:   deps.RecordDecision,
		voidDecision:     deps.VoidDecision,
		exportLog:        deps.ExportLog,
		dataSource:       deps.DataSource,
		guidelineVersion: deps.GuidelineVersion,
	}
}

// CreateScenario opens a new draft scenario.
func (h *AdvisorHandler) CreateScenario(ctx context.Context, req *CreateScenarioRequest) (*ScenarioResponse, error) {
	resp, err := h.createScenario.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// GetScenario retrieves a scenario by ID.
func (h *AdvisorHandler) GetScenario(ctx context.Context, req *GetScenarioRequest) (*ScenarioResponse, error) {
	resp, err := h.getScenario.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// UpdateScenario updates scenario inputs and optionally activates it.
func (h *AdvisorHandler) UpdateScenario(ctx context.Context, req *UpdateScenarioRequest) (*ScenarioResponse, error) {
	resp, err := h.updateScenario.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// ListScenarios lists scenarios owned by a loan officer.
func (h *AdvisorHandler) ListScenarios(ctx context.Context, req *ListScenariosRequest) (*ListScenariosResponse, error) {
	scenarios, err := h.listScenarios.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &ListScenariosResponse{Scenarios: scenarios}, nil
}

// BuildAssistanceStacks runs the assistance eligibility filter and stacker.
func (h *AdvisorHandler) BuildAssistanceStacks(ctx context.Context, req *BuildAssistanceStacksRequest) (*BuildAssistanceStacksResponse, error) {
	resp, err := h.buildStacks.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// RunDebtConsolidation runs duplicate detection and student-loan payment rules.
func (h *AdvisorHandler) RunDebtConsolidation(ctx context.Context, req *RunDebtConsolidationRequest) (*RunDebtConsolidationResponse, error) {
	resp, err := h.consolidation.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// ResolveDuplicate applies a reviewer decision to a flagged tradeline.
func (h *AdvisorHandler) ResolveDuplicate(ctx context.Context, req *ResolveDuplicateRequest) (*ResolveDuplicateResponse, error) {
	resp, err := h.resolveDupe.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// RunStreamlineAnalysis evaluates refinance eligibility and benefit.
func (h *AdvisorHandler) RunStreamlineAnalysis(ctx context.Context, req *RunStreamlineAnalysisRequest) (*RunStreamlineAnalysisResponse, error) {
	resp, err := h.streamline.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// RunMIComparison compares mortgage insurance structures.
func (h *AdvisorHandler) RunMIComparison(ctx context.Context, req *RunMIComparisonRequest) (*RunMIComparisonResponse, error) {
	resp, err := h.miComparison.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// RunRateBuydown compares discount point options against a baseline rate.
func (h *AdvisorHandler) RunRateBuydown(ctx context.Context, req *RunRateBuydownRequest) (*RunRateBuydownResponse, error) {
	resp, err := h.rateBuydown.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// RecordDecision records a program selection with provenance.
func (h *AdvisorHandler) RecordDecision(ctx context.Context, req *RecordDecisionRequest) (*DecisionRecordResponse, error) {
	r := *req
	if r.DataSource == "" {
		r.DataSource = h.dataSource
	}
	if r.GuidelineVersion == "" {
		r.GuidelineVersion = h.guidelineVersion
	}
	resp, err := h.recordDecision.Execute(ctx, r)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// VoidDecision marks a decision record as voided.
func (h *AdvisorHandler) VoidDecision(ctx context.Context, req *VoidDecisionRequest) (*DecisionRecordResponse, error) {
	resp, err := h.voidDecision.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// ExportDecisionLog renders the decision log for a scenario as plain text.
func (h *AdvisorHandler) ExportDecisionLog(ctx context.Context, req *ExportDecisionLogRequest) (*ExportDecisionLogResponse, error) {
	resp, err := h.exportLog.Execute(ctx, *req)
	if err != nil {
		return nil, toStatusErr(err)
	}
	return &resp, nil
}

// toStatusErr maps domain and storage errors to gRPC status codes.
func toStatusErr(err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
