package estar

import (
	"fmt"
	"slices"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

// TierAllowance is the E_TEC_MAX of one qualifying 5.2 category.
type TierAllowance struct {
	Tier      string
	Allowance float64
}

// Frame buffer width thresholds in bits.
const (
	desktopWidthThreshold  = 128
	notebookWidthThreshold = 64
)

// LegacyRules is Energy Star 5.2.
type LegacyRules struct {
	log *log.Helper
}

// NewLegacyRules returns the 5.2 rule set. A nil logger disables the debug
// trace of intermediate terms.
func NewLegacyRules(logger log.Logger) *LegacyRules {
	return &LegacyRules{log: helperFor(logger, Legacy)}
}

func (r *LegacyRules) Version() string { return Legacy }

// Supports reports every defined category.
func (r *LegacyRules) Supports(pt profile.ProductType) bool { return pt.Valid() }

// Evaluate emits the 5.2 lines for the profile's category.
func (r *LegacyRules) Evaluate(p profile.DeviceProfile) []report.Line {
	switch p.ProductType {
	case profile.Computer:
		return r.computer(p)
	case profile.Workstation:
		return r.workstation(p)
	case profile.SmallServer:
		return r.smallServer(p)
	case profile.ThinClient:
		return r.thinClient(p)
	}
	return nil
}

// TEC is the 5.2 typical energy consumption in kWh for a computer. Idle is
// the short idle reading.
func (r *LegacyRules) TEC(p profile.DeviceProfile) float64 {
	tOff, tSleep, tIdle := 0.55, 0.05, 0.40
	if p.IsNotebook() {
		tOff, tSleep, tIdle = 0.60, 0.10, 0.30
	}
	e := (p.Off*tOff + p.Sleep*tSleep + p.ShortIdle*tIdle) * 8760 / 1000
	r.log.Debugw("msg", "E_TEC", "T_OFF", tOff, "T_SLEEP", tSleep, "T_IDLE", tIdle, "E_TEC", e)
	return e
}

// WidthThreshold returns the frame buffer width above which the wide
// graphics allowance applies.
func WidthThreshold(p profile.DeviceProfile) int {
	if p.IsNotebook() {
		return notebookWidthThreshold
	}
	return desktopWidthThreshold
}

// MaxAllowances returns the allowance of every category the computer
// qualifies for, in A..D order. overWidth selects the wide frame buffer
// branch of the graphics terms.
func (r *LegacyRules) MaxAllowances(p profile.DeviceProfile, overWidth bool) []TierAllowance {
	if p.IsNotebook() {
		return r.notebookAllowances(p, overWidth)
	}
	return r.desktopAllowances(p, overWidth)
}

func (r *LegacyRules) desktopAllowances(p profile.DeviceProfile, overWidth bool) []TierAllowance {
	cores, mem := p.CPUCores, p.MemoryGB
	storage := 25.0 * extraDisks(p.DiskCount)
	memOver := func(floor float64) float64 { return max(mem-floor, 0) }

	graphics := func(narrow float64) float64 {
		if overWidth {
			return 50
		}
		return narrow
	}

	var out []TierAllowance
	add := func(tier string, base, memory, gfx float64) {
		total := base + memory + gfx + storage
		r.log.Debugw("msg", "E_TEC_MAX", "tier", tier, "TEC_BASE", base, "TEC_MEMORY", memory,
			"TEC_GRAPHICS", gfx, "TEC_STORAGE", storage, "E_TEC_MAX", total)
		out = append(out, TierAllowance{Tier: tier, Allowance: total})
	}

	add("A", 148, memOver(2), graphics(35))
	if cores == 2 && mem >= 2 {
		add("B", 175, memOver(2), graphics(35))
	}
	if cores >= 2 && (mem >= 2 || p.Discrete) {
		add("C", 209, memOver(2), graphics(0))
	}
	if cores >= 4 && (mem >= 4 || overWidth) {
		add("D", 234, memOver(4), graphics(0))
	}
	return out
}

func (r *LegacyRules) notebookAllowances(p profile.DeviceProfile, overWidth bool) []TierAllowance {
	memory := 0.4 * max(p.MemoryGB-4, 0)
	storage := 3.0 * extraDisks(p.DiskCount)

	var out []TierAllowance
	add := func(tier string, base, gfx float64) {
		total := base + memory + gfx + storage
		r.log.Debugw("msg", "E_TEC_MAX", "tier", tier, "TEC_BASE", base, "TEC_MEMORY", memory,
			"TEC_GRAPHICS", gfx, "TEC_STORAGE", storage, "E_TEC_MAX", total)
		out = append(out, TierAllowance{Tier: tier, Allowance: total})
	}

	add("A", 40, 0)
	if p.Discrete {
		gfx := 0.0
		if overWidth {
			gfx = 3
		}
		add("B", 53, gfx)
	}
	if p.CPUCores >= 2 && p.MemoryGB >= 2 && p.Discrete && overWidth {
		add("C", 88.5, 0)
	}
	return out
}

func widthScenario(p profile.DeviceProfile, over bool) string {
	if over {
		return fmt.Sprintf("If GPU frame buffer width > %d bits", WidthThreshold(p))
	}
	return fmt.Sprintf("If GPU frame buffer width <= %d bits", WidthThreshold(p))
}

func (r *LegacyRules) computer(p profile.DeviceProfile) []report.Line {
	tec := r.TEC(p)

	type scenario struct {
		label string
		tiers []TierAllowance
	}
	var scenarios []scenario

	if p.FrameBufferWidth > 0 {
		over := p.FrameBufferWidth > WidthThreshold(p)
		scenarios = append(scenarios, scenario{widthScenario(p, over), r.MaxAllowances(p, over)})
	} else {
		over := r.MaxAllowances(p, true)
		under := r.MaxAllowances(p, false)
		if slices.Equal(over, under) {
			scenarios = append(scenarios, scenario{"", under})
		} else {
			scenarios = append(scenarios,
				scenario{widthScenario(p, true), over},
				scenario{widthScenario(p, false), under})
		}
	}

	var lines []report.Line
	for _, s := range scenarios {
		for _, t := range s.tiers {
			lines = append(lines, report.Compare(Legacy, s.label, t.Tier, "E_TEC", tec, t.Allowance))
		}
	}
	return lines
}

func (r *LegacyRules) workstation(p profile.DeviceProfile) []report.Line {
	ptec := p.Off*0.35 + p.Sleep*0.10 + p.ShortIdle*0.55
	limit := 0.28 * (p.MaxPower + float64(p.DiskCount)*5)
	r.log.Debugw("msg", "P_TEC", "P_TEC", ptec, "P_TEC_MAX", limit)
	return []report.Line{report.Compare(Legacy, "", "", "P_TEC", ptec, limit)}
}

func (r *LegacyRules) smallServer(p profile.DeviceProfile) []report.Line {
	tier, idleMax := "A", 50.0
	if (p.CPUCores > 1 || p.MoreDiscrete) && p.MemoryGB >= 1 {
		tier, idleMax = "B", 65.0
	}

	var lines []report.Line
	for _, wol := range wolStates {
		offMax := 2.0 + 0.7*boolFactor(wol)
		s := wolScenario(wol)
		lines = append(lines,
			report.Compare(Legacy, s, tier, "P_OFF", p.Off, offMax),
			report.Compare(Legacy, s, tier, "P_IDLE", p.ShortIdle, idleMax))
	}
	return lines
}

func (r *LegacyRules) thinClient(p profile.DeviceProfile) []report.Line {
	tier, idleMax := "A", 12.0
	if p.MediaCodec {
		tier, idleMax = "B", 15.0
	}

	var lines []report.Line
	for _, wol := range wolStates {
		ceiling := 2.0 + 0.7*boolFactor(wol)
		s := wolScenario(wol)
		lines = append(lines,
			report.Compare(Legacy, s, tier, "P_OFF", p.Off, ceiling),
			report.Compare(Legacy, s, tier, "P_SLEEP", p.Sleep, ceiling),
			report.Compare(Legacy, s, tier, "P_IDLE", p.ShortIdle, idleMax))
	}
	return lines
}
