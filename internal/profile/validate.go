package profile

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProfile is matched by every validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Problem describes one field that failed validation.
type Problem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every problem found in a profile.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Field + ": " + p.Reason
	}
	return fmt.Sprintf("%s: %s", ErrInvalidProfile, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidProfile) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProfile
}

type problems []Problem

func (ps *problems) add(field, format string, args ...any) {
	*ps = append(*ps, Problem{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// finite reports NaN and infinities, which strconv accepts as spellings.
func (ps *problems) finite(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		ps.add(field, "must be a finite number, got %g", v)
		return false
	}
	return true
}

func (ps *problems) nonNegative(field string, v float64) {
	if ps.finite(field, v) && v < 0 {
		ps.add(field, "must not be negative, got %g", v)
	}
}

func (ps problems) err() error {
	if len(ps) == 0 {
		return nil
	}
	return &ValidationError{Problems: ps}
}

// Validate checks the fields the declared category relies on. An unknown
// product type is not reported here; the evaluator rejects it separately.
func (p DeviceProfile) Validate() error {
	var ps problems

	ps.nonNegative(KeyOffMode, p.Off)
	ps.nonNegative(KeySleepMode, p.Sleep)
	ps.nonNegative(KeyLongIdleMode, p.LongIdle)
	ps.nonNegative(KeyShortIdleMode, p.ShortIdle)
	ps.nonNegative(KeyMaximumPower, p.MaxPower)
	ps.nonNegative(KeyMemorySize, p.MemoryGB)
	ps.nonNegative(KeyDiskNumber, float64(p.DiskCount))
	ps.nonNegative(KeyGigabitEthernet, float64(p.EEEPorts))
	ps.nonNegative(KeyFrameBufferBandwidth, p.FrameBufferBandwidth)
	ps.nonNegative(KeyFrameBufferWidth, float64(p.FrameBufferWidth))
	ps.nonNegative(KeyOffModeWOL, p.OffWOL)
	ps.nonNegative(KeySleepModeWOL, p.SleepWOL)
	ps.nonNegative(KeyScreenArea, p.ScreenAreaSqIn)
	ps.nonNegative(KeyMemoryTotalSlots, float64(p.MemoryTotalSlots))
	ps.nonNegative(KeyMemoryUsedSlots, float64(p.MemoryUsedSlots))
	if p.MemoryTotalSlots > 0 && p.MemoryUsedSlots > p.MemoryTotalSlots {
		ps.add(KeyMemoryUsedSlots, "%d used slots exceed %d total", p.MemoryUsedSlots, p.MemoryTotalSlots)
	}
	clockOK := ps.finite(KeyCPUClock, p.CPUClockGHz)
	diagonalOK := ps.finite(KeyDisplayDiagonal, p.DisplayDiagonal)

	if p.PowerSupply != "" && p.PowerSupply != External && p.PowerSupply != Internal {
		ps.add(KeyPowerSupply, "must be %q or %q, got %q", External, Internal, p.PowerSupply)
	}
	if p.Switchable && p.Discrete {
		ps.add(KeySwitchableGraphics, "switchable graphics cannot claim the discrete graphics allowance")
	}

	switch p.ProductType {
	case Computer:
		if p.ComputerType < Desktop || p.ComputerType > Notebook {
			ps.add(KeyComputerType, "must be 1 (desktop), 2 (integrated desktop) or 3 (notebook), got %d", p.ComputerType)
		}
		if clockOK {
			p.checkCPU(&ps)
		}
		if diagonalOK && p.HasIntegratedDisplay() {
			p.checkDisplay(&ps)
		}
	case Workstation:
		if p.MaxPower <= 0 {
			ps.add(KeyMaximumPower, "is required for workstations")
		}
	case SmallServer:
		if p.CPUCores < 1 {
			ps.add(KeyCPUCores, "must be at least 1, got %d", p.CPUCores)
		}
	case ThinClient:
		if diagonalOK && p.HasIntegratedDisplay() {
			p.checkDisplay(&ps)
		}
	}

	return ps.err()
}

func (p DeviceProfile) checkCPU(ps *problems) {
	if p.CPUCores < 1 {
		ps.add(KeyCPUCores, "must be at least 1, got %d", p.CPUCores)
	}
	if p.CPUClockGHz <= 0 {
		ps.add(KeyCPUClock, "must be positive, got %g", p.CPUClockGHz)
	}
}

func (p DeviceProfile) checkDisplay(ps *problems) {
	if p.DisplayDiagonal <= 0 {
		ps.add(KeyDisplayDiagonal, "is required for an integrated display")
	}
	if p.DisplayWidth <= 0 || p.DisplayHeight <= 0 {
		ps.add(KeyDisplayWidth, "resolution %dx%d is not usable", p.DisplayWidth, p.DisplayHeight)
	}
}
