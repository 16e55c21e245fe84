package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// WriteText prints the report grouped by standard and scenario. Values are
// rounded to two decimals for display only.
func WriteText(w io.Writer, r *Report, color bool) error {
	var b strings.Builder
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	title := r.Category
	if r.ProductName != "" {
		title = r.ProductName + " (" + r.Category + ")"
	}
	b.WriteString(paint(headerStyle, title))
	b.WriteString("\n")
	if r.BIOSVersion != "" {
		fmt.Fprintf(&b, "BIOS version: %s\n", r.BIOSVersion)
	}
	for _, n := range r.Notes {
		fmt.Fprintf(&b, "Note: %s\n", n)
	}

	for _, std := range r.Standards() {
		fmt.Fprintf(&b, "\n%s\n", paint(headerStyle, "Energy Star "+std+":"))
		scenario := ""
		first := true
		for _, l := range r.ForStandard(std) {
			indent := "  "
			if l.Scenario != "" {
				if first || l.Scenario != scenario {
					fmt.Fprintf(&b, "  %s:\n", l.Scenario)
				}
				indent = "    "
			}
			scenario, first = l.Scenario, false

			verdict := paint(passStyle, string(l.Verdict))
			if l.Verdict == Fail {
				verdict = paint(failStyle, string(l.Verdict))
			}
			b.WriteString(indent)
			if l.Tier != "" {
				fmt.Fprintf(&b, "Category %s: ", l.Tier)
			}
			fmt.Fprintf(&b, "%.2f (%s) %s %.2f (%s), %s\n",
				l.Measured, l.Metric, l.Op, l.Allowed, l.Limit(), verdict)
		}
	}

	s := r.Summary()
	fmt.Fprintf(&b, "\n%d passed, %d failed\n", s.Passed, s.Failed)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Write renders the report in the named format: text, json or yaml.
func Write(w io.Writer, r *Report, format string, color bool) error {
	switch strings.ToLower(format) {
	case "", "text":
		return WriteText(w, r, color)
	case "json":
		return WriteJSON(w, r)
	case "yaml", "yml":
		return WriteYAML(w, r)
	}
	return fmt.Errorf("unknown report format %q", format)
}
