package profile

import (
	"fmt"
	"strings"
)

// Collector probes the local machine for hardware facts that were not
// answered explicitly. Implementations live outside this package so the
// rule engine never depends on OS access.
type Collector interface {
	CPUCores() (int, error)
	CPUClockGHz() (float64, error)
	MemoryGB() (float64, error)
	DiskCount() (int, error)
	EEEPorts() (int, error)
	WakeOnLAN() (bool, error)
	Resolution() (width, height int, err error)
	DisplayDiagonal() (float64, error)
	BIOSVersion() (string, error)
	ProductName() (string, error)
}

// enhancedDisplayMinPixels is the native resolution an enhanced-performance
// display must reach (2.3 MP).
const enhancedDisplayMinPixels = 2300000

// Builder turns recorded answers into a DeviceProfile. Hardware facts that
// were not answered are taken from the collector, when one is set, and
// written back into the answers so the cache can be saved afterwards.
type Builder struct {
	answers   Answers
	collector Collector
	ps        problems
}

// NewBuilder returns a builder over answers. A nil answers map starts empty;
// a nil collector disables probing.
func NewBuilder(answers Answers, c Collector) *Builder {
	if answers == nil {
		answers = Answers{}
	}
	return &Builder{answers: answers, collector: c}
}

// Set records an answer, replacing any previous value.
func (b *Builder) Set(key string, value any) *Builder {
	b.answers[key] = value
	return b
}

// Answers returns the accumulated answers, including probed values.
func (b *Builder) Answers() Answers {
	return b.answers
}

// Build assembles and validates the profile. Missing or malformed answers
// produce an error matching ErrInvalidProfile; probe failures are returned
// wrapped as they are.
func (b *Builder) Build() (DeviceProfile, error) {
	b.ps = nil
	var p DeviceProfile

	pt, ok := b.requireInt(KeyProductType)
	if !ok {
		return DeviceProfile{}, b.ps.err()
	}
	p.ProductType = ProductType(pt)

	var err error
	switch p.ProductType {
	case Computer:
		err = b.buildComputer(&p)
	case Workstation:
		err = b.buildWorkstation(&p)
	case SmallServer:
		err = b.buildServer(&p)
	case ThinClient:
		err = b.buildThinClient(&p)
	default:
		// The evaluator owns the unsupported-category failure.
		return p, nil
	}
	if err != nil {
		return DeviceProfile{}, err
	}

	p.BIOSVersion = b.identity(KeyBIOSVersion, Collector.BIOSVersion)
	p.ProductName = b.identity(KeyProductName, Collector.ProductName)
	b.reference(&p)

	if len(b.ps) > 0 {
		return DeviceProfile{}, b.ps.err()
	}
	if err := p.Validate(); err != nil {
		return DeviceProfile{}, err
	}
	return p, nil
}

func (b *Builder) buildComputer(p *DeviceProfile) error {
	ct, _ := b.requireInt(KeyComputerType)
	p.ComputerType = ComputerType(ct)

	p.Switchable = b.optionalBool(KeySwitchableGraphics)
	if !p.Switchable {
		p.DiscreteGPUs = b.optionalInt(KeyDiscreteGraphicsCard)
		p.Discrete = p.DiscreteGPUs > 0
		if p.Discrete {
			p.FrameBufferWidth = b.optionalInt(KeyFrameBufferWidth)
			if p.ComputerType == Notebook {
				p.FrameBufferBandwidth = b.optionalFloat(KeyFrameBufferBandwidth)
			}
		}
	}

	if p.ComputerType != Desktop {
		if err := b.display(p); err != nil {
			return err
		}
	}

	b.powerModes(p, true)
	if err := b.wakeOnLAN(p); err != nil {
		return err
	}

	if p.ComputerType == Notebook {
		p.PowerSupply = External
	} else if s, ok := b.requireText(KeyPowerSupply); ok {
		p.PowerSupply = PowerSupply(strings.ToLower(strings.TrimSpace(s)))
	}

	if err := b.cpu(p, true); err != nil {
		return err
	}
	if err := b.memory(p); err != nil {
		return err
	}
	if err := b.disks(p); err != nil {
		return err
	}
	return b.ethernet(p)
}

func (b *Builder) buildWorkstation(p *DeviceProfile) error {
	b.powerModes(p, true)
	if v, ok := b.requireFloat(KeyMaximumPower); ok {
		p.MaxPower = v
	}
	if err := b.disks(p); err != nil {
		return err
	}
	return b.ethernet(p)
}

func (b *Builder) buildServer(p *DeviceProfile) error {
	if v, ok := b.requireFloat(KeyOffMode); ok {
		p.Off = v
	}
	if v, ok := b.requireFloat(KeyShortIdleMode); ok {
		p.ShortIdle = v
	}
	if err := b.cpu(p, false); err != nil {
		return err
	}
	if p.CPUCores < 2 {
		p.MoreDiscrete = b.optionalBool(KeyMoreDiscrete)
	}
	if err := b.memory(p); err != nil {
		return err
	}
	if err := b.disks(p); err != nil {
		return err
	}
	return b.ethernet(p)
}

func (b *Builder) buildThinClient(p *DeviceProfile) error {
	b.powerModes(p, true)
	p.MediaCodec = b.optionalBool(KeyMediaCodec)
	p.Discrete = b.optionalBool(KeyDiscreteGraphics)
	p.IntegratedDisplay = b.optionalBool(KeyIntegratedDisplay)
	if p.IntegratedDisplay {
		if err := b.display(p); err != nil {
			return err
		}
	}
	return b.ethernet(p)
}

func (b *Builder) powerModes(p *DeviceProfile, all bool) {
	if v, ok := b.requireFloat(KeyOffMode); ok {
		p.Off = v
	}
	if v, ok := b.requireFloat(KeyShortIdleMode); ok {
		p.ShortIdle = v
	}
	if !all {
		return
	}
	if v, ok := b.requireFloat(KeySleepMode); ok {
		p.Sleep = v
	}
	if v, ok := b.requireFloat(KeyLongIdleMode); ok {
		p.LongIdle = v
	}
}

func (b *Builder) display(p *DeviceProfile) error {
	if !b.answers.Has(KeyDisplayWidth) || !b.answers.Has(KeyDisplayHeight) {
		if b.collector != nil {
			w, h, err := b.collector.Resolution()
			if err != nil {
				return fmt.Errorf("probe resolution: %w", err)
			}
			b.answers[KeyDisplayWidth] = w
			b.answers[KeyDisplayHeight] = h
		}
	}
	p.DisplayWidth, _ = b.requireInt(KeyDisplayWidth)
	p.DisplayHeight, _ = b.requireInt(KeyDisplayHeight)

	if !b.answers.Has(KeyDisplayDiagonal) && b.collector != nil {
		d, err := b.collector.DisplayDiagonal()
		if err != nil {
			return fmt.Errorf("probe display diagonal: %w", err)
		}
		b.answers[KeyDisplayDiagonal] = d
	}
	p.DisplayDiagonal, _ = b.requireFloat(KeyDisplayDiagonal)

	if p.DisplayWidth*p.DisplayHeight >= enhancedDisplayMinPixels {
		p.EnhancedDisplay = b.optionalBool(KeyEnhancedDisplay)
	}
	return nil
}

// reference loads the optional readings older caches carry. They are
// never probed.
func (b *Builder) reference(p *DeviceProfile) {
	p.OffWOL = b.optionalFloat(KeyOffModeWOL)
	p.SleepWOL = b.optionalFloat(KeySleepModeWOL)
	p.ScreenAreaSqIn = b.optionalFloat(KeyScreenArea)
	p.MemoryTotalSlots = b.optionalInt(KeyMemoryTotalSlots)
	p.MemoryUsedSlots = b.optionalInt(KeyMemoryUsedSlots)
}

func (b *Builder) wakeOnLAN(p *DeviceProfile) error {
	if !b.answers.Has(KeyWakeOnLAN) && b.collector != nil {
		v, err := b.collector.WakeOnLAN()
		if err != nil {
			return fmt.Errorf("probe wake-on-lan: %w", err)
		}
		b.answers[KeyWakeOnLAN] = v
	}
	p.WakeOnLAN = b.optionalBool(KeyWakeOnLAN)
	return nil
}

func (b *Builder) cpu(p *DeviceProfile, withClock bool) error {
	if err := probeInto(b, KeyCPUCores, Collector.CPUCores); err != nil {
		return err
	}
	p.CPUCores, _ = b.requireInt(KeyCPUCores)
	if !withClock {
		return nil
	}
	if err := probeInto(b, KeyCPUClock, Collector.CPUClockGHz); err != nil {
		return err
	}
	p.CPUClockGHz, _ = b.requireFloat(KeyCPUClock)
	return nil
}

func (b *Builder) memory(p *DeviceProfile) error {
	if err := probeInto(b, KeyMemorySize, Collector.MemoryGB); err != nil {
		return err
	}
	p.MemoryGB, _ = b.requireFloat(KeyMemorySize)
	return nil
}

func (b *Builder) disks(p *DeviceProfile) error {
	if err := probeInto(b, KeyDiskNumber, Collector.DiskCount); err != nil {
		return err
	}
	p.DiskCount, _ = b.requireInt(KeyDiskNumber)
	return nil
}

func (b *Builder) ethernet(p *DeviceProfile) error {
	if err := probeInto(b, KeyGigabitEthernet, Collector.EEEPorts); err != nil {
		return err
	}
	p.EEEPorts = b.optionalInt(KeyGigabitEthernet)
	return nil
}

func (b *Builder) identity(key string, probe func(Collector) (string, error)) string {
	if s, ok := b.answers.Text(key); ok {
		return s
	}
	if b.collector == nil {
		return ""
	}
	// Identity strings are informational; a failed probe leaves them empty.
	s, err := probe(b.collector)
	if err != nil {
		return ""
	}
	b.answers[key] = s
	return s
}

// probeInto fills key from the collector when it has not been answered.
func probeInto[T any](b *Builder, key string, probe func(Collector) (T, error)) error {
	if b.answers.Has(key) || b.collector == nil {
		return nil
	}
	v, err := probe(b.collector)
	if err != nil {
		return fmt.Errorf("probe %s: %w", key, err)
	}
	b.answers[key] = v
	return nil
}

func (b *Builder) requireFloat(key string) (float64, bool) {
	v, ok, err := b.answers.Float(key)
	switch {
	case err != nil:
		b.ps.add(key, "%v", err)
		return 0, false
	case !ok:
		b.ps.add(key, "is required")
		return 0, false
	}
	return v, true
}

func (b *Builder) requireInt(key string) (int, bool) {
	v, ok, err := b.answers.Int(key)
	switch {
	case err != nil:
		b.ps.add(key, "%v", err)
		return 0, false
	case !ok:
		b.ps.add(key, "is required")
		return 0, false
	}
	return v, true
}

func (b *Builder) requireText(key string) (string, bool) {
	s, ok := b.answers.Text(key)
	if !ok {
		b.ps.add(key, "is required")
	}
	return s, ok
}

func (b *Builder) optionalFloat(key string) float64 {
	v, _, err := b.answers.Float(key)
	if err != nil {
		b.ps.add(key, "%v", err)
	}
	return v
}

func (b *Builder) optionalInt(key string) int {
	v, _, err := b.answers.Int(key)
	if err != nil {
		b.ps.add(key, "%v", err)
	}
	return v
}

func (b *Builder) optionalBool(key string) bool {
	v, _, err := b.answers.Bool(key)
	if err != nil {
		b.ps.add(key, "%v", err)
	}
	return v
}
