package convert

import (
	"encoding/json"
	"fmt"
	"time"

	energyv1 "github.com/go-tangra/go-tangra-energy/api/energy/v1"
	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
	"github.com/go-tangra/go-tangra-energy/internal/store"
)

// ReportToRecord converts an evaluation report to a store record.
func ReportToRecord(id string, p profile.DeviceProfile, r *report.Report, evaluatedAt time.Time) (*store.EvaluationRecord, error) {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal report to JSON: %w", err)
	}

	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now().UTC()
	}

	sum := r.Summary()
	return &store.EvaluationRecord{
		UUID:        id,
		ProductName: r.ProductName,
		BIOSVersion: r.BIOSVersion,
		ProductType: int(p.ProductType),
		Category:    r.Category,
		Passed:      sum.Passed,
		Failed:      sum.Failed,
		EvaluatedAt: evaluatedAt,
		ReportJSON:  string(jsonBytes),
	}, nil
}

// RecordToReport converts a store record back to a report.
func RecordToReport(rec *store.EvaluationRecord) (*report.Report, error) {
	var r report.Report
	if err := json.Unmarshal([]byte(rec.ReportJSON), &r); err != nil {
		return nil, fmt.Errorf("unmarshal report JSON: %w", err)
	}
	return &r, nil
}

// RecordToSummary converts a store record to an API summary.
func RecordToSummary(rec *store.EvaluationRecord) *energyv1.EvaluationSummary {
	return &energyv1.EvaluationSummary{
		ID:          rec.ID,
		UUID:        rec.UUID,
		ProductName: rec.ProductName,
		BIOSVersion: rec.BIOSVersion,
		ProductType: rec.ProductType,
		Category:    rec.Category,
		Passed:      rec.Passed,
		Failed:      rec.Failed,
		EvaluatedAt: rec.EvaluatedAt,
		StoredAt:    rec.StoredAt,
	}
}

// ListRequestToFilter converts API list parameters to a store filter.
func ListRequestToFilter(req *energyv1.ListEvaluationsRequest) store.ListFilter {
	return store.ListFilter{
		ProductName:     req.ProductName,
		ProductType:     req.ProductType,
		FailingOnly:     req.FailingOnly,
		EvaluatedAfter:  req.EvaluatedAfter,
		EvaluatedBefore: req.EvaluatedBefore,
		PageSize:        req.PageSize,
		Page:            req.Page,
	}
}
