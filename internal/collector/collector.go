// Package collector probes the local Linux host for the hardware facts a
// device profile needs: CPU, memory, storage, network, display and
// firmware identity.
package collector

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
)

var (
	// ErrUnknownCPUVendor is returned when the clock cannot be derived
	// because the processor is neither Intel nor AMD.
	ErrUnknownCPUVendor = errors.New("unknown CPU vendor")
	// ErrNoDisplay is returned when no connected display can be found.
	ErrNoDisplay = errors.New("no connected display")
)

// Option configures a Linux collector.
type Option func(*Linux)

// WithRoots points the collector at alternative /proc and /sys trees.
func WithRoots(procRoot, sysRoot string) Option {
	return func(c *Linux) {
		c.procRoot = procRoot
		c.sysRoot = sysRoot
	}
}

// WithFirmware replaces the SMBIOS reader.
func WithFirmware(read func() (*Firmware, error)) Option {
	return func(c *Linux) {
		c.readFirmware = read
	}
}

// WithLogger sets the logger for probe diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *Linux) {
		c.log = log.NewHelper(log.With(logger, "module", "collector"))
	}
}

// Linux implements profile.Collector on top of procfs, sysfs and SMBIOS.
// SMBIOS is read at most once per collector.
type Linux struct {
	procRoot     string
	sysRoot      string
	readFirmware func() (*Firmware, error)
	systemMemory func() (float64, error)
	log          *log.Helper

	once  sync.Once
	fw    *Firmware
	fwErr error
}

var _ profile.Collector = (*Linux)(nil)

// New returns a collector reading the live /proc, /sys and SMBIOS tables.
func New(opts ...Option) *Linux {
	c := &Linux{
		procRoot:     "/proc",
		sysRoot:      "/sys",
		readFirmware: readSMBIOS,
		systemMemory: systemMemoryGB,
		log:          log.NewHelper(log.NewStdLogger(io.Discard)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Linux) firmware() (*Firmware, error) {
	c.once.Do(func() {
		c.fw, c.fwErr = c.readFirmware()
		if c.fwErr != nil {
			c.log.Debugf("smbios unavailable: %v", c.fwErr)
		}
	})
	return c.fw, c.fwErr
}

// Collect runs every probe and records the results under their answer
// keys. It attempts all probes and returns partial answers alongside any
// errors.
func (c *Linux) Collect() (profile.Answers, error) {
	a := profile.Answers{}
	var errs []error

	record := func(key string, v any, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		a[key] = v
	}

	cores, err := c.CPUCores()
	record(profile.KeyCPUCores, cores, err)
	clock, err := c.CPUClockGHz()
	record(profile.KeyCPUClock, clock, err)
	mem, err := c.MemoryGB()
	record(profile.KeyMemorySize, mem, err)
	disks, err := c.DiskCount()
	record(profile.KeyDiskNumber, disks, err)
	eee, err := c.EEEPorts()
	record(profile.KeyGigabitEthernet, eee, err)
	wol, err := c.WakeOnLAN()
	record(profile.KeyWakeOnLAN, wol, err)

	if w, h, err := c.Resolution(); err == nil {
		a[profile.KeyDisplayWidth] = w
		a[profile.KeyDisplayHeight] = h
		diag, err := c.DisplayDiagonal()
		record(profile.KeyDisplayDiagonal, diag, err)
	} else if !errors.Is(err, ErrNoDisplay) {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	bios, err := c.BIOSVersion()
	record(profile.KeyBIOSVersion, bios, err)
	product, err := c.ProductName()
	record(profile.KeyProductName, product, err)

	if len(errs) > 0 {
		return a, fmt.Errorf("collection errors: %w", errors.Join(errs...))
	}
	return a, nil
}
