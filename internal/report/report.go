// Package report holds the compliance report produced by the rule engine
// and its text, JSON and YAML renderings.
package report

import "slices"

// Verdict is the outcome of one comparison.
type Verdict string

const (
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"
)

// Comparison operators as printed on a line.
const (
	OpWithin = "<="
	OpAbove  = ">"
)

// Line is one measured value compared against one allowance.
type Line struct {
	Standard string  `json:"standard" yaml:"standard"`
	Scenario string  `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Tier     string  `json:"tier,omitempty" yaml:"tier,omitempty"`
	Metric   string  `json:"metric" yaml:"metric"`
	Measured float64 `json:"measured" yaml:"measured"`
	Allowed  float64 `json:"allowed" yaml:"allowed"`
	Op       string  `json:"op" yaml:"op"`
	Verdict  Verdict `json:"verdict" yaml:"verdict"`
}

// Compare builds a line. The interval is closed: a measured value equal to
// the allowance passes. Anything not provably within the allowance, NaN
// included, fails.
func Compare(standard, scenario, tier, metric string, measured, allowed float64) Line {
	l := Line{
		Standard: standard,
		Scenario: scenario,
		Tier:     tier,
		Metric:   metric,
		Measured: measured,
		Allowed:  allowed,
		Op:       OpAbove,
		Verdict:  Fail,
	}
	if measured <= allowed {
		l.Op = OpWithin
		l.Verdict = Pass
	}
	return l
}

// Limit returns the name of the allowance the metric is compared against.
func (l Line) Limit() string {
	return l.Metric + "_MAX"
}

// Report is the ordered result of evaluating one device.
type Report struct {
	Category    string   `json:"category" yaml:"category"`
	ProductName string   `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	BIOSVersion string   `json:"bios_version,omitempty" yaml:"bios_version,omitempty"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Lines       []Line   `json:"lines" yaml:"lines"`
}

// Summary counts verdicts across all lines.
type Summary struct {
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// Summary counts the passing and failing lines.
func (r *Report) Summary() Summary {
	var s Summary
	for _, l := range r.Lines {
		if l.Verdict == Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Standards returns the standards present in line order, without repeats.
func (r *Report) Standards() []string {
	var out []string
	for _, l := range r.Lines {
		if !slices.Contains(out, l.Standard) {
			out = append(out, l.Standard)
		}
	}
	return out
}

// ForStandard returns the lines belonging to standard, in order.
func (r *Report) ForStandard(standard string) []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Standard == standard {
			out = append(out, l)
		}
	}
	return out
}
