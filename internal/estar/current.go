package estar

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
	"github.com/go-tangra/go-tangra-energy/internal/report"
)

// CurrentRules is Energy Star 6.0.
type CurrentRules struct {
	log *log.Helper
}

// NewCurrentRules returns the 6.0 rule set. A nil logger disables the debug
// trace of intermediate terms.
func NewCurrentRules(logger log.Logger) *CurrentRules {
	return &CurrentRules{log: helperFor(logger, Current)}
}

func (r *CurrentRules) Version() string { return Current }

// Supports reports every defined category.
func (r *CurrentRules) Supports(pt profile.ProductType) bool { return pt.Valid() }

// Evaluate emits the 6.0 lines for the profile's category.
func (r *CurrentRules) Evaluate(p profile.DeviceProfile) []report.Line {
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

// TEC is the 6.0 typical energy consumption in kWh. Thin clients use the
// desktop weights.
func (r *CurrentRules) TEC(p profile.DeviceProfile) float64 {
	tOff, tSleep, tLong, tShort := 0.45, 0.05, 0.15, 0.35
	if p.IsNotebook() {
		tOff, tSleep, tLong, tShort = 0.25, 0.35, 0.10, 0.30
	}
	e := (p.Off*tOff + p.Sleep*tSleep + p.LongIdle*tLong + p.ShortIdle*tShort) * 8760 / 1000
	r.log.Debugw("msg", "E_TEC", "T_OFF", tOff, "T_SLEEP", tSleep, "T_LONG_IDLE", tLong,
		"T_SHORT_IDLE", tShort, "E_TEC", e)
	return e
}

// DisplayTerms returns the enhanced performance factor EP, the resolution in
// megapixels r and the viewable area A in square inches.
func DisplayTerms(p profile.DeviceProfile) (ep, r, a float64) {
	if p.EnhancedDisplay {
		ep = 0.3
		if p.DisplayDiagonal >= 27 {
			ep = 0.75
		}
	}
	return ep, p.Megapixels(), p.ScreenArea()
}

// desktopDisplayAllowance is the integrated desktop display term, also used
// by thin clients with an integrated display.
func desktopDisplayAllowance(p profile.DeviceProfile) float64 {
	ep, r, a := DisplayTerms(p)
	return 8.76 * 0.35 * (1 + ep) * (4*r + 0.05*a)
}

func notebookDisplayAllowance(p profile.DeviceProfile) float64 {
	ep, r, a := DisplayTerms(p)
	return 8.76 * 0.30 * (1 + ep) * (2*r + 0.02*a)
}

func hasGraphics(p profile.DeviceProfile) bool {
	return p.Switchable || p.Discrete
}

func (r *CurrentRules) base(p profile.DeviceProfile) float64 {
	perf := p.PerformanceScore()
	if p.IsNotebook() {
		switch {
		case perf <= 2:
			return 14
		case hasGraphics(p):
			switch {
			case perf <= 5.2:
				return 22
			case perf <= 8:
				return 24
			}
			return 28
		case perf <= 9:
			return 16
		}
		return 18
	}
	switch {
	case perf <= 3:
		return 69
	case hasGraphics(p):
		switch {
		case perf <= 6:
			return 112
		case perf <= 7:
			return 120
		}
		return 135
	case perf <= 9:
		return 115
	}
	return 135
}

// MaxAllowance returns E_TEC_MAX for a computer before the power supply
// multiplier. gpu is only read when the computer has discrete graphics.
func (r *CurrentRules) MaxAllowance(p profile.DeviceProfile, gpu GPUCategory) float64 {
	notebook := p.IsNotebook()

	base := r.base(p)
	memory := 0.8 * p.MemoryGB

	var graphics, switchable float64
	switch {
	case p.Switchable:
		if !notebook {
			switchable = 0.5 * desktopGraphics[G1-1]
		}
	case p.Discrete:
		graphics = graphicsAllowance(gpu, notebook)
	}

	eee := 8.76 * 0.2 * (0.15 + 0.35) * float64(p.EEEPorts)
	storage := 26 * extraDisks(p.DiskCount)
	if notebook {
		eee = 8.76 * 0.2 * (0.10 + 0.30) * float64(p.EEEPorts)
		storage = 2.6 * extraDisks(p.DiskCount)
	}
	display := 0.0
	switch {
	case !p.HasIntegratedDisplay():
	case notebook:
		display = notebookDisplayAllowance(p)
	default:
		display = desktopDisplayAllowance(p)
	}

	total := base + memory + graphics + storage + display + switchable + eee
	r.log.Debugw("msg", "E_TEC_MAX", "P", p.PerformanceScore(), "gpu", gpu.String(),
		"TEC_BASE", base, "TEC_MEMORY", memory, "TEC_GRAPHICS", graphics, "TEC_SWITCHABLE", switchable,
		"TEC_EEE", eee, "TEC_STORAGE", storage, "TEC_INT_DISPLAY", display, "E_TEC_MAX", total)
	return total
}

func (r *CurrentRules) computer(p profile.DeviceProfile) []report.Line {
	tec := r.TEC(p)

	var lines []report.Line
	for _, psu := range PSUTiers {
		mult := psu.Multiplier(p)
		if !p.Discrete {
			lines = append(lines, report.Compare(Current, psu.Scenario(), "", "E_TEC", tec, r.MaxAllowance(p, G1)*mult))
			continue
		}
		for _, g := range GPUCategories {
			lines = append(lines, report.Compare(Current, psu.Scenario(), g.Label(), "E_TEC", tec, r.MaxAllowance(p, g)*mult))
		}
	}
	return lines
}

func (r *CurrentRules) workstation(p profile.DeviceProfile) []report.Line {
	ptec := p.Off*0.35 + p.Sleep*0.10 + p.LongIdle*0.15 + p.ShortIdle*0.40
	eee := 0.2 * float64(p.EEEPorts)
	limit := 0.28*(p.MaxPower+float64(p.DiskCount)*5) + 8.76*eee*(0.10+0.15+0.40)
	r.log.Debugw("msg", "P_TEC", "P_TEC", ptec, "P_TEC_MAX", limit)
	return []report.Line{report.Compare(Current, "", "", "P_TEC", ptec, limit)}
}

func (r *CurrentRules) smallServer(p profile.DeviceProfile) []report.Line {
	idleMax := 24.0 + 8.0*extraDisks(p.DiskCount) + 0.2*float64(p.EEEPorts)

	var lines []report.Line
	for _, wol := range wolStates {
		offMax := 1.0 + 0.4*boolFactor(wol)
		s := wolScenario(wol)
		lines = append(lines,
			report.Compare(Current, s, "", "P_OFF", p.Off, offMax),
			report.Compare(Current, s, "", "P_IDLE", p.ShortIdle, idleMax))
	}
	return lines
}

func thinClientScenario(discrete, wol bool) string {
	d := "Without discrete graphics"
	if discrete {
		d = "With discrete graphics"
	}
	w := "Wake-on-LAN disabled"
	if wol {
		w = "Wake-on-LAN enabled"
	}
	return d + ", " + w + " by default upon shipment"
}

// ThinClientAllowance returns E_TEC_MAX for a thin client under one
// graphics and Wake-on-LAN combination.
func (r *CurrentRules) ThinClientAllowance(p profile.DeviceProfile, discrete, wol bool) float64 {
	display := 0.0
	if p.HasIntegratedDisplay() {
		display = desktopDisplayAllowance(p)
	}
	eee := 8.76 * 0.2 * (0.15 + 0.35) * float64(p.EEEPorts)
	total := 60 + 36*boolFactor(discrete) + 2*boolFactor(wol) + display + eee
	r.log.Debugw("msg", "E_TEC_MAX", "discrete", discrete, "wol", wol,
		"TEC_INT_DISPLAY", display, "TEC_EEE", eee, "E_TEC_MAX", total)
	return total
}

func (r *CurrentRules) thinClient(p profile.DeviceProfile) []report.Line {
	tec := r.TEC(p)

	var lines []report.Line
	for _, discrete := range []bool{true, false} {
		for _, wol := range wolStates {
			lines = append(lines, report.Compare(Current, thinClientScenario(discrete, wol), "", "E_TEC",
				tec, r.ThinClientAllowance(p, discrete, wol)))
		}
	}
	return lines
}
