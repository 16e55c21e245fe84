// Package energyv1 holds the request and response messages of the
// energy.v1 compliance API and its gRPC service binding. Messages travel as
// JSON on both the HTTP and gRPC transports.
package energyv1

import (
	"time"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

// EvaluateRequest submits a profile for evaluation. When Store is set the
// resulting report is kept in the history.
type EvaluateRequest struct {
	Profile profile.Answers `json:"profile"`
	Store   bool            `json:"store,omitempty"`
}

type EvaluateResponse struct {
	UUID     string         `json:"uuid"`
	Stored   bool           `json:"stored"`
	StoredAt *time.Time     `json:"stored_at,omitempty"`
	Report   *report.Report `json:"report"`

	// Previous is the latest stored evaluation of the same product, if any.
	Previous *EvaluationSummary `json:"previous,omitempty"`
}

type GetEvaluationRequest struct {
	UUID string `json:"uuid"`
}

type GetEvaluationResponse struct {
	Evaluation *EvaluationSummary `json:"evaluation"`
	Report     *report.Report     `json:"report"`
}

type DeleteEvaluationRequest struct {
	UUID string `json:"uuid"`
}

type DeleteEvaluationResponse struct{}

// ListEvaluationsRequest filters the history. Zero values match everything.
type ListEvaluationsRequest struct {
	ProductName     string     `json:"product_name,omitempty"`
	ProductType     int        `json:"product_type,omitempty"`
	FailingOnly     bool       `json:"failing_only,omitempty"`
	EvaluatedAfter  *time.Time `json:"evaluated_after,omitempty"`
	EvaluatedBefore *time.Time `json:"evaluated_before,omitempty"`
	PageSize        int        `json:"page_size,omitempty"`
	Page            int        `json:"page,omitempty"`
}

type ListEvaluationsResponse struct {
	Evaluations []*EvaluationSummary `json:"evaluations"`
	TotalCount  int                  `json:"total_count"`
}

// EvaluationSummary describes a stored evaluation without its lines.
type EvaluationSummary struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	ProductName string    `json:"product_name"`
	BIOSVersion string    `json:"bios_version"`
	ProductType int       `json:"product_type"`
	Category    string    `json:"category"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	EvaluatedAt time.Time `json:"evaluated_at"`
	StoredAt    time.Time `json:"stored_at"`
}
