package energyv1

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationComplianceServiceEvaluate         = "/energy.v1.ComplianceService/Evaluate"
	OperationComplianceServiceGetEvaluation    = "/energy.v1.ComplianceService/GetEvaluation"
	OperationComplianceServiceListEvaluations  = "/energy.v1.ComplianceService/ListEvaluations"
	OperationComplianceServiceDeleteEvaluation = "/energy.v1.ComplianceService/DeleteEvaluation"
)

// ComplianceServiceHTTPServer is the REST surface of ComplianceService.
type ComplianceServiceHTTPServer interface {
	Evaluate(context.Context, *EvaluateRequest) (*EvaluateResponse, error)
	GetEvaluation(context.Context, *GetEvaluationRequest) (*GetEvaluationResponse, error)
	ListEvaluations(context.Context, *ListEvaluationsRequest) (*ListEvaluationsResponse, error)
	DeleteEvaluation(context.Context, *DeleteEvaluationRequest) (*DeleteEvaluationResponse, error)
}

func RegisterComplianceServiceHTTPServer(s *http.Server, srv ComplianceServiceHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/evaluations", _ComplianceService_Evaluate0_HTTP_Handler(srv))
	r.GET("/v1/evaluations", _ComplianceService_ListEvaluations0_HTTP_Handler(srv))
	r.GET("/v1/evaluations/{uuid}", _ComplianceService_GetEvaluation0_HTTP_Handler(srv))
	r.DELETE("/v1/evaluations/{uuid}", _ComplianceService_DeleteEvaluation0_HTTP_Handler(srv))
}

func _ComplianceService_Evaluate0_HTTP_Handler(srv ComplianceServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in EvaluateRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationComplianceServiceEvaluate)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Evaluate(ctx, req.(*EvaluateRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*EvaluateResponse))
	}
}

func _ComplianceService_ListEvaluations0_HTTP_Handler(srv ComplianceServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in ListEvaluationsRequest
		if err := ctx.BindQuery(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationComplianceServiceListEvaluations)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ListEvaluations(ctx, req.(*ListEvaluationsRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*ListEvaluationsResponse))
	}
}

func _ComplianceService_GetEvaluation0_HTTP_Handler(srv ComplianceServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in GetEvaluationRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationComplianceServiceGetEvaluation)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.GetEvaluation(ctx, req.(*GetEvaluationRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*GetEvaluationResponse))
	}
}

func _ComplianceService_DeleteEvaluation0_HTTP_Handler(srv ComplianceServiceHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in DeleteEvaluationRequest
		if err := ctx.BindVars(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationComplianceServiceDeleteEvaluation)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.DeleteEvaluation(ctx, req.(*DeleteEvaluationRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*DeleteEvaluationResponse))
	}
}
