package estar

import "github.com/go-tangra/go-tangra-energy/internal/profile"

// PSUTier is the power supply efficiency allowance a 6.0 computer claims.
type PSUTier int

const (
	PSUNone PSUTier = iota
	PSULower
	PSUHigher
)

// PSUTiers lists the tiers in report order.
var PSUTiers = []PSUTier{PSUNone, PSULower, PSUHigher}

// Scenario returns the report label for the tier.
func (t PSUTier) Scenario() string {
	switch t {
	case PSULower:
		return "Power supply meets lower efficiency requirements"
	case PSUHigher:
		return "Power supply meets higher efficiency requirements"
	}
	return "Power supply does not meet efficiency allowance requirements"
}

// Multiplier returns the factor the tier applies to E_TEC_MAX. Notebooks
// always ship an external supply; any other computer without an internal
// supply is treated as external.
func (t PSUTier) Multiplier(p profile.DeviceProfile) float64 {
	switch t {
	case PSULower:
		return 1.015
	case PSUHigher:
		if p.PowerSupply == profile.Internal && !p.IsNotebook() {
			if p.ComputerType == profile.Desktop {
				return 1.03
			}
			return 1.04
		}
		if p.ComputerType == profile.IntegratedDesktop {
			return 1.04
		}
		return 1.03
	}
	return 1.0
}
