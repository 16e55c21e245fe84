package estar

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger receiving debug traces of each formula.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithRuleSets replaces the default 5.2 and 6.0 rule sets.
func WithRuleSets(sets ...RuleSet) Option {
	return func(e *Evaluator) {
		e.sets = sets
	}
}

// Evaluator runs a profile through every registered rule set in order.
// It holds no per-evaluation state and is safe for concurrent use.
type Evaluator struct {
	logger log.Logger
	sets   []RuleSet
}

// New returns an evaluator over the 5.2 and 6.0 rule sets unless
// WithRuleSets says otherwise.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, o := range opts {
		o(e)
	}
	if e.sets == nil {
		e.sets = []RuleSet{NewLegacyRules(e.logger), NewCurrentRules(e.logger)}
	}
	return e
}

// Evaluate validates p and returns the lines of every rule set. No partial
// report is returned on error.
func (e *Evaluator) Evaluate(p profile.DeviceProfile) (*report.Report, error) {
	if !p.ProductType.Valid() {
		return nil, fmt.Errorf("%w: product type %d", ErrUnsupportedCategory, int(p.ProductType))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, rs := range e.sets {
		if !rs.Supports(p.ProductType) {
			return nil, fmt.Errorf("%w: Energy Star %s has no rules for %s", ErrUnimplementedStandard, rs.Version(), p.ProductType)
		}
	}

	rep := &report.Report{
		Category:    Category(p),
		ProductName: p.ProductName,
		BIOSVersion: p.BIOSVersion,
	}
	if p.Discrete && p.FrameBufferBandwidth > 0 {
		g := ClassifyGPU(p.FrameBufferBandwidth, p.FrameBufferWidth)
		rep.Notes = append(rep.Notes, "declared discrete graphics fall in "+g.Label())
	}
	for _, rs := range e.sets {
		rep.Lines = append(rep.Lines, rs.Evaluate(p)...)
	}
	return rep, nil
}

// Evaluate runs p through the default rule sets.
func Evaluate(p profile.DeviceProfile) (*report.Report, error) {
	return New().Evaluate(p)
}

// Category names the profile's product category, down to the computer form
// factor.
func Category(p profile.DeviceProfile) string {
	if p.ProductType == profile.Computer {
		return p.ComputerType.String() + " Computer"
	}
	return p.ProductType.String()
}
