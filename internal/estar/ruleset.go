// Package estar implements the Energy Star 5.2 and 6.0 computer rule sets
// and the evaluator that runs a device profile through them.
package estar

import (
	"errors"
	"io"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

// Standard versions.
const (
	Legacy  = "5.2"
	Current = "6.0"
)

var (
	// ErrUnsupportedCategory is returned for a product type outside the
	// four defined categories.
	ErrUnsupportedCategory = errors.New("unsupported product category")
	// ErrUnimplementedStandard is returned when a registered rule set has
	// no formula for the product category.
	ErrUnimplementedStandard = errors.New("standard not implemented for product category")
)

// RuleSet is one standard revision. Evaluate must be pure: it reads the
// profile and returns fresh lines.
type RuleSet interface {
	Version() string
	Supports(pt profile.ProductType) bool
	Evaluate(p profile.DeviceProfile) []report.Line
}

// Scenario labels shared by both revisions.
const (
	scenarioWOLOn  = "Wake-on-LAN enabled by default upon shipment"
	scenarioWOLOff = "Wake-on-LAN disabled by default upon shipment"
)

var wolStates = []bool{true, false}

func wolScenario(wol bool) string {
	if wol {
		return scenarioWOLOn
	}
	return scenarioWOLOff
}

func boolFactor(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func extraDisks(n int) float64 {
	return float64(max(n-1, 0))
}

func discardHelper() *log.Helper {
	return log.NewHelper(log.NewStdLogger(io.Discard))
}

func helperFor(logger log.Logger, std string) *log.Helper {
	if logger == nil {
		return discardHelper()
	}
	return log.NewHelper(log.With(logger, "module", "estar", "standard", std))
}
