// Package profile defines the device snapshot the compliance rules read,
// along with the builder that assembles it from recorded answers and
// hardware probes.
package profile

import "math"

// ProductType is the Energy Star product category of the device.
type ProductType int

const (
	// Computer covers desktops, integrated desktops and notebooks. The
	// concrete form factor is carried by ComputerType.
	Computer    ProductType = 1
	Workstation ProductType = 2
	SmallServer ProductType = 3
	ThinClient  ProductType = 4
)

func (t ProductType) String() string {
	switch t {
	case Computer:
		return "Desktop, Integrated Desktop, and Notebook Computers"
	case Workstation:
		return "Workstations"
	case SmallServer:
		return "Small-scale Servers"
	case ThinClient:
		return "Thin Clients"
	}
	return "Unknown"
}

// Valid reports whether t is one of the four defined product types.
func (t ProductType) Valid() bool {
	return t >= Computer && t <= ThinClient
}

// ComputerType is the form factor of a Computer product.
type ComputerType int

const (
	Desktop           ComputerType = 1
	IntegratedDesktop ComputerType = 2
	Notebook          ComputerType = 3
)

func (t ComputerType) String() string {
	switch t {
	case Desktop:
		return "Desktop"
	case IntegratedDesktop:
		return "Integrated Desktop"
	case Notebook:
		return "Notebook"
	}
	return "Unknown"
}

// PowerSupply is the kind of power supply shipped with the device.
type PowerSupply string

const (
	External PowerSupply = "e"
	Internal PowerSupply = "i"
)

func (p PowerSupply) String() string {
	switch p {
	case External:
		return "External"
	case Internal:
		return "Internal"
	}
	return "Unknown"
}

// DeviceProfile is an immutable snapshot of everything the rule sets need.
// Rules receive it by value; fields not relevant to the declared category
// stay at their zero value.
type DeviceProfile struct {
	ProductType  ProductType  `json:"product_type"`
	ComputerType ComputerType `json:"computer_type,omitempty"`

	CPUCores    int     `json:"cpu_cores,omitempty"`
	CPUClockGHz float64 `json:"cpu_clock_ghz,omitempty"`
	MemoryGB    float64 `json:"memory_gb,omitempty"`
	DiskCount   int     `json:"disk_count,omitempty"`
	EEEPorts    int     `json:"eee_ports,omitempty"`

	Switchable   bool `json:"switchable,omitempty"`
	Discrete     bool `json:"discrete,omitempty"`
	DiscreteGPUs int  `json:"discrete_gpus,omitempty"`
	// FrameBufferBandwidth is the declared FB_BW in GB/s.
	FrameBufferBandwidth float64 `json:"frame_buffer_bandwidth,omitempty"`
	// FrameBufferWidth is the frame buffer data width in bits, 0 when unknown.
	FrameBufferWidth int `json:"frame_buffer_width,omitempty"`

	DisplayDiagonal   float64 `json:"display_diagonal,omitempty"`
	DisplayWidth      int     `json:"display_width,omitempty"`
	DisplayHeight     int     `json:"display_height,omitempty"`
	EnhancedDisplay   bool    `json:"enhanced_display,omitempty"`
	IntegratedDisplay bool    `json:"integrated_display,omitempty"`

	Off       float64 `json:"off"`
	Sleep     float64 `json:"sleep"`
	LongIdle  float64 `json:"long_idle"`
	ShortIdle float64 `json:"short_idle"`
	MaxPower  float64 `json:"max_power,omitempty"`

	WakeOnLAN    bool        `json:"wake_on_lan,omitempty"`
	PowerSupply  PowerSupply `json:"power_supply,omitempty"`
	MediaCodec   bool        `json:"media_codec,omitempty"`
	MoreDiscrete bool        `json:"more_discrete,omitempty"`

	BIOSVersion string `json:"bios_version,omitempty"`
	ProductName string `json:"product_name,omitempty"`

	// Reference readings. Off and sleep with Wake-on-LAN armed, the
	// physical screen area in square inches and the memory slot usage.
	OffWOL           float64 `json:"off_wol,omitempty"`
	SleepWOL         float64 `json:"sleep_wol,omitempty"`
	ScreenAreaSqIn   float64 `json:"screen_area_sq_in,omitempty"`
	MemoryTotalSlots int     `json:"memory_total_slots,omitempty"`
	MemoryUsedSlots  int     `json:"memory_used_slots,omitempty"`
}

// Megapixels returns the native resolution in millions of pixels.
func (p DeviceProfile) Megapixels() float64 {
	return float64(p.DisplayWidth) * float64(p.DisplayHeight) / 1e6
}

// ScreenArea returns the viewable area in square inches, derived from the
// diagonal and the pixel aspect ratio.
func (p DeviceProfile) ScreenArea() float64 {
	w, h := float64(p.DisplayWidth), float64(p.DisplayHeight)
	if w == 0 || h == 0 {
		return 0
	}
	return p.DisplayDiagonal * p.DisplayDiagonal * w * h / (w*w + h*h)
}

// PerformanceScore is cores times clock in GHz.
func (p DeviceProfile) PerformanceScore() float64 {
	return float64(p.CPUCores) * p.CPUClockGHz
}

// IsNotebook reports whether the profile is a notebook computer.
func (p DeviceProfile) IsNotebook() bool {
	return p.ProductType == Computer && p.ComputerType == Notebook
}

// HasIntegratedDisplay reports whether display terms apply to the device.
func (p DeviceProfile) HasIntegratedDisplay() bool {
	switch p.ProductType {
	case Computer:
		return p.ComputerType == IntegratedDesktop || p.ComputerType == Notebook
	case ThinClient:
		return p.IntegratedDisplay
	}
	return false
}

// DiagonalFromMillimetres converts a physical panel size to a diagonal in inches.
func DiagonalFromMillimetres(widthMM, heightMM float64) float64 {
	return math.Hypot(widthMM, heightMM) / 25.4
}
