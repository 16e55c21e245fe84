package server

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/convert"
	"github.com/go-tangra/go-tangra-energy/internal/estar"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/store"
)

// Handler implements the ComplianceService over gRPC and HTTP.
type Handler struct {
	energyv1.UnimplementedComplianceServiceServer
	store     *store.Store
	evaluator *estar.Evaluator
	log       *log.Helper
	now       func() time.Time
}

var (
	_ energyv1.ComplianceServiceServer     = (*Handler)(nil)
	_ energyv1.ComplianceServiceHTTPServer = (*Handler)(nil)
)

// NewHandler creates a handler backed by the given store and evaluator.
func NewHandler(s *store.Store, e *estar.Evaluator, logger log.Logger) *Handler {
	return &Handler{
		store:     s,
		evaluator: e,
		log:       log.NewHelper(log.With(logger, "module", "server")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// evaluationError maps rule engine failures to status codes.
func evaluationError(err error) error {
	switch {
	case errors.Is(err, profile.ErrInvalidProfile):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, estar.ErrUnsupportedCategory), errors.Is(err, estar.ErrUnimplementedStandard):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Errorf(codes.Internal, "evaluate: %v", err)
}

func (h *Handler) Evaluate(ctx context.Context, req *energyv1.EvaluateRequest) (*energyv1.EvaluateResponse, error) {
	if len(req.Profile) == 0 {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	// Remote profiles are evaluated as submitted; nothing is probed here.
	p, err := profile.NewBuilder(req.Profile, nil).Build()
	if err != nil {
		return nil, evaluationError(err)
	}
	rep, err := h.evaluator.Evaluate(p)
	if err != nil {
		return nil, evaluationError(err)
	}

	resp := &energyv1.EvaluateResponse{
		UUID:   uuid.NewString(),
		Report: rep,
	}
	sum := rep.Summary()
	h.log.Infow("msg", "evaluated", "uuid", resp.UUID, "category", rep.Category,
		"product", rep.ProductName, "passed", sum.Passed, "failed", sum.Failed)

	if prev := h.previous(ctx, rep.ProductName); prev != nil {
		resp.Previous = prev
		if prev.Failed == 0 && sum.Failed > 0 {
			h.log.Warnw("msg", "compliance regressed", "product", rep.ProductName,
				"previous", prev.UUID, "failed", sum.Failed)
		}
	}

	if !req.Store {
		return resp, nil
	}

	rec, err := convert.ReportToRecord(resp.UUID, p, rep, h.now())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "convert report: %v", err)
	}
	_, storedAt, err := h.store.Insert(ctx, rec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "store evaluation: %v", err)
	}
	resp.Stored = true
	resp.StoredAt = &storedAt
	return resp, nil
}

// previous returns the latest stored evaluation of a product. Lookup
// failures only cost the comparison.
func (h *Handler) previous(ctx context.Context, productName string) *energyv1.EvaluationSummary {
	if productName == "" {
		return nil
	}
	rec, err := h.store.LatestByProduct(ctx, productName)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.log.Warnf("look up previous evaluation of %s: %v", productName, err)
		}
		return nil
	}
	return convert.RecordToSummary(rec)
}

func (h *Handler) GetEvaluation(ctx context.Context, req *energyv1.GetEvaluationRequest) (*energyv1.GetEvaluationResponse, error) {
	if req.UUID == "" {
		return nil, status.Error(codes.InvalidArgument, "uuid is required")
	}

	rec, err := h.store.Get(ctx, req.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Errorf(codes.NotFound, "evaluation %s not found", req.UUID)
		}
		return nil, status.Errorf(codes.Internal, "get evaluation: %v", err)
	}

	rep, err := convert.RecordToReport(rec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "decode report: %v", err)
	}

	return &energyv1.GetEvaluationResponse{
		Evaluation: convert.RecordToSummary(rec),
		Report:     rep,
	}, nil
}

func (h *Handler) ListEvaluations(ctx context.Context, req *energyv1.ListEvaluationsRequest) (*energyv1.ListEvaluationsResponse, error) {
	records, total, err := h.store.List(ctx, convert.ListRequestToFilter(req))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list evaluations: %v", err)
	}

	summaries := make([]*energyv1.EvaluationSummary, len(records))
	for i := range records {
		summaries[i] = convert.RecordToSummary(&records[i])
	}

	return &energyv1.ListEvaluationsResponse{
		Evaluations: summaries,
		TotalCount:  total,
	}, nil
}

func (h *Handler) DeleteEvaluation(ctx context.Context, req *energyv1.DeleteEvaluationRequest) (*energyv1.DeleteEvaluationResponse, error) {
	err := h.store.Delete(ctx, req.UUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Errorf(codes.NotFound, "evaluation %s not found", req.UUID)
		}
		return nil, status.Errorf(codes.Internal, "delete evaluation: %v", err)
	}
	return &energyv1.DeleteEvaluationResponse{}, nil
}
