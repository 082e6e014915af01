package grpc

// proto.go defines the gRPC server interface derived from
// loanworks/advisor/v1/advisor.proto. This file serves as a stand-in for
// buf-generated code; messages reuse the application DTOs through the JSON
// codec. Once `buf generate` is run, replace this file with the import from
// github.com/loanworks/advisor/api/gen/go/loanworks/advisor/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/loanworks/advisor/internal/application/dto"
)

// Message aliases: with the JSON codec registered, the DTOs are the wire
// format.
type (
	CreateScenarioRequest = dto.CreateScenarioRequest
	GetScenarioRequest    = dto.GetScenarioRequest
	UpdateScenarioRequest = dto.UpdateScenarioRequest
	ListScenariosRequest  = dto.ListScenariosRequest
	ScenarioResponse      = dto.ScenarioResponse

	BuildAssistanceStacksRequest  = dto.BuildAssistanceStacksRequest
	BuildAssistanceStacksResponse = dto.BuildAssistanceStacksResponse
	RunDebtConsolidationRequest   = dto.RunDebtConsolidationRequest
	RunDebtConsolidationResponse  = dto.RunDebtConsolidationResponse
	ResolveDuplicateRequest       = dto.ResolveDuplicateRequest
	ResolveDuplicateResponse      = dto.ResolveDuplicateResponse
	RunStreamlineAnalysisRequest  = dto.RunStreamlineAnalysisRequest
	RunStreamlineAnalysisResponse = dto.RunStreamlineAnalysisResponse
	RunMIComparisonRequest        = dto.RunMIComparisonRequest
	RunMIComparisonResponse       = dto.RunMIComparisonResponse
	RunRateBuydownRequest         = dto.RunRateBuydownRequest
	RunRateBuydownResponse        = dto.RunRateBuydownResponse

	RecordDecisionRequest     = dto.RecordDecisionRequest
	VoidDecisionRequest       = dto.VoidDecisionRequest
	DecisionRecordResponse    = dto.DecisionRecordResponse
	ExportDecisionLogRequest  = dto.ExportDecisionLogRequest
	ExportDecisionLogResponse = dto.ExportDecisionLogResponse
)

// ListScenariosResponse wraps the scenario list for the wire.
type ListScenariosResponse struct {
	Scenarios []dto.ScenarioResponse `json:"scenarios"`
}

// AdvisorServiceServer is the server API for AdvisorService.
// It mirrors the proto interface from loanworks.advisor.v1.AdvisorService.
type AdvisorServiceServer interface {
	CreateScenario(context.Context, *CreateScenarioRequest) (*ScenarioResponse, error)
	GetScenario(context.Context, *GetScenarioRequest) (*ScenarioResponse, error)
	UpdateScenario(context.Context, *UpdateScenarioRequest) (*ScenarioResponse, error)
	ListScenarios(context.Context, *ListScenariosRequest) (*ListScenariosResponse, error)
	BuildAssistanceStacks(context.Context, *BuildAssistanceStacksRequest) (*BuildAssistanceStacksResponse, error)
	RunDebtConsolidation(context.Context, *RunDebtConsolidationRequest) (*RunDebtConsolidationResponse, error)
	ResolveDuplicate(context.Context, *ResolveDuplicateRequest) (*ResolveDuplicateResponse, error)
	RunStreamlineAnalysis(context.Context, *RunStreamlineAnalysisRequest) (*RunStreamlineAnalysisResponse, error)
	RunMIComparison(context.Context, *RunMIComparisonRequest) (*RunMIComparisonResponse, error)
	RunRateBuydown(context.Context, *RunRateBuydownRequest) (*RunRateBuydownResponse, error)
	RecordDecision(context.Context, *RecordDecisionRequest) (*DecisionRecordResponse, error)
	VoidDecision(context.Context, *VoidDecisionRequest) (*DecisionRecordResponse, error)
	ExportDecisionLog(context.Context, *ExportDecisionLogRequest) (*ExportDecisionLogResponse, error)
	mustEmbedUnimplementedAdvisorServiceServer()
}

// UnimplementedAdvisorServiceServer provides forward-compatible defaults.
type UnimplementedAdvisorServiceServer struct{}

func (UnimplementedAdvisorServiceServer) CreateScenario(context.Context, *CreateScenarioRequest) (*ScenarioResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateScenario not implemented")
}
func (UnimplementedAdvisorServiceServer) GetScenario(context.Context, *GetScenarioRequest) (*ScenarioResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScenario not implemented")
}
func (UnimplementedAdvisorServiceServer) UpdateScenario(context.Context, *UpdateScenarioRequest) (*ScenarioResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateScenario not implemented")
}
func (UnimplementedAdvisorServiceServer) ListScenarios(context.Context, *ListScenariosRequest) (*ListScenariosResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScenarios not implemented")
}
func (UnimplementedAdvisorServiceServer) BuildAssistanceStacks(context.Context, *BuildAssistanceStacksRequest) (*BuildAssistanceStacksResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BuildAssistanceStacks not implemented")
}
func (UnimplementedAdvisorServiceServer) RunDebtConsolidation(context.Context, *RunDebtConsolidationRequest) (*RunDebtConsolidationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunDebtConsolidation not implemented")
}
func (UnimplementedAdvisorServiceServer) ResolveDuplicate(context.Context, *ResolveDuplicateRequest) (*ResolveDuplicateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResolveDuplicate not implemented")
}
func (UnimplementedAdvisorServiceServer) RunStreamlineAnalysis(context.Context, *RunStreamlineAnalysisRequest) (*RunStreamlineAnalysisResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunStreamlineAnalysis not implemented")
}
func (UnimplementedAdvisorServiceServer) RunMIComparison(context.Context, *RunMIComparisonRequest) (*RunMIComparisonResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunMIComparison not implemented")
}
func (UnimplementedAdvisorServiceServer) RunRateBuydown(context.Context, *RunRateBuydownRequest) (*RunRateBuydownResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunRateBuydown not implemented")
}
func (UnimplementedAdvisorServiceServer) RecordDecision(context.Context, *RecordDecisionRequest) (*DecisionRecordResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordDecision not implemented")
}
func (UnimplementedAdvisorServiceServer) VoidDecision(context.Context, *VoidDecisionRequest) (*DecisionRecordResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VoidDecision not implemented")
}
func (UnimplementedAdvisorServiceServer) ExportDecisionLog(context.Context, *ExportDecisionLogRequest) (*ExportDecisionLogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExportDecisionLog not implemented")
}
func (UnimplementedAdvisorServiceServer) mustEmbedUnimplementedAdvisorServiceServer() {}

// RegisterAdvisorServiceServer registers the AdvisorServiceServer.
func RegisterAdvisorServiceServer(s *grpclib.Server, srv AdvisorServiceServer) {
	s.RegisterService(&_AdvisorService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

const serviceName = "loanworks.advisor.v1.AdvisorService"

//nolint:revive // gRPC handler registration
var _AdvisorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AdvisorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateScenario", Handler: _AdvisorService_CreateScenario_Handler},
		{MethodName: "GetScenario", Handler: _AdvisorService_GetScenario_Handler},
		{MethodName: "UpdateScenario", Handler: _AdvisorService_UpdateScenario_Handler},
		{MethodName: "ListScenarios", Handler: _AdvisorService_ListScenarios_Handler},
		{MethodName: "BuildAssistanceStacks", Handler: _AdvisorService_BuildAssistanceStacks_Handler},
		{MethodName: "RunDebtConsolidation", Handler: _AdvisorService_RunDebtConsolidation_Handler},
		{MethodName: "ResolveDuplicate", Handler: _AdvisorService_ResolveDuplicate_Handler},
		{MethodName: "RunStreamlineAnalysis", Handler: _AdvisorService_RunStreamlineAnalysis_Handler},
		{MethodName: "RunMIComparison", Handler: _AdvisorService_RunMIComparison_Handler},
		{MethodName: "RunRateBuydown", Handler: _AdvisorService_RunRateBuydown_Handler},
		{MethodName: "RecordDecision", Handler: _AdvisorService_RecordDecision_Handler},
		{MethodName: "VoidDecision", Handler: _AdvisorService_VoidDecision_Handler},
		{MethodName: "ExportDecisionLog", Handler: _AdvisorService_ExportDecisionLog_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler adapts one typed server method into the grpc.MethodDesc shape.
// Generated code spells each of these out; a type parameter keeps the
// hand-maintained version honest.
func unaryHandler[Req any, Resp any](
	method string,
	call func(AdvisorServiceServer, context.Context, *Req) (*Resp, error),
) func(interface{}, context.Context, func(interface{}) error, grpclib.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AdvisorServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + serviceName + "/" + method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AdvisorServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

//nolint:revive // gRPC handler registration
var (
	_AdvisorService_CreateScenario_Handler = unaryHandler("CreateScenario", AdvisorServiceServer.CreateScenario)
	_AdvisorService_GetScenario_Handler    = unaryHandler("GetScenario", AdvisorServiceServer.GetScenario)
	_AdvisorService_UpdateScenario_Handler = unaryHandler("UpdateScenario", AdvisorServiceServer.UpdateScenario)
	_AdvisorService_ListScenarios_Handler  = unaryHandler("ListScenarios", AdvisorServiceServer.ListScenarios)

	_AdvisorService_BuildAssistanceStacks_Handler = unaryHandler("BuildAssistanceStacks", AdvisorServiceServer.BuildAssistanceStacks)
	_AdvisorService_RunDebtConsolidation_Handler  = unaryHandler("RunDebtConsolidation", AdvisorServiceServer.RunDebtConsolidation)
	_AdvisorService_ResolveDuplicate_Handler      = unaryHandler("ResolveDuplicate", AdvisorServiceServer.ResolveDuplicate)
	_AdvisorService_RunStreamlineAnalysis_Handler = unaryHandler("RunStreamlineAnalysis", AdvisorServiceServer.RunStreamlineAnalysis)
	_AdvisorService_RunMIComparison_Handler       = unaryHandler("RunMIComparison", AdvisorServiceServer.RunMIComparison)
	_AdvisorService_RunRateBuydown_Handler        = unaryHandler("RunRateBuydown", AdvisorServiceServer.RunRateBuydown)

	_AdvisorService_RecordDecision_Handler    = unaryHandler("RecordDecision", AdvisorServiceServer.RecordDecision)
	_AdvisorService_VoidDecision_Handler      = unaryHandler("VoidDecision", AdvisorServiceServer.VoidDecision)
	_AdvisorService_ExportDecisionLog_Handler = unaryHandler("ExportDecisionLog", AdvisorServiceServer.ExportDecisionLog)
)
