package profile

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestScreenArea(t *testing.T) {
	p := DeviceProfile{DisplayDiagonal: 14, DisplayWidth: 1366, DisplayHeight: 768}
	if got := p.ScreenArea(); math.Abs(got-83.7295) > 1e-3 {
		t.Errorf("ScreenArea() = %v, want 83.7295", got)
	}
	if got := p.Megapixels(); got != 1.049088 {
		t.Errorf("Megapixels() = %v, want 1.049088", got)
	}
	if got := (DeviceProfile{DisplayDiagonal: 14}).ScreenArea(); got != 0 {
		t.Errorf("ScreenArea() without resolution = %v, want 0", got)
	}
}

func TestDiagonalFromMillimetres(t *testing.T) {
	if got := DiagonalFromMillimetres(300, 400); math.Abs(got-500/25.4) > 1e-9 {
		t.Errorf("DiagonalFromMillimetres(300, 400) = %v", got)
	}
}

func TestProductTypeString(t *testing.T) {
	if Workstation.String() != "Workstations" || ProductType(9).String() != "Unknown" {
		t.Error("unexpected product type names")
	}
	if ProductType(0).Valid() || !ThinClient.Valid() {
		t.Error("unexpected Valid results")
	}
}

func validNotebook() DeviceProfile {
	return DeviceProfile{
		ProductType:     Computer,
		ComputerType:    Notebook,
		CPUCores:        2,
		CPUClockGHz:     2,
		MemoryGB:        8,
		DiskCount:       1,
		DisplayDiagonal: 14,
		DisplayWidth:    1366,
		DisplayHeight:   768,
		PowerSupply:     External,
	}
}

func problemFields(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, len(ve.Problems))
	for i, p := range ve.Problems {
		out[i] = p.Field
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(*DeviceProfile)
		fields []string
	}{
		{"valid notebook", func(p *DeviceProfile) {}, nil},
		{"negative off", func(p *DeviceProfile) { p.Off = -0.1 }, []string{KeyOffMode}},
		{"negative memory and disks", func(p *DeviceProfile) { p.MemoryGB, p.DiskCount = -1, -1 }, []string{KeyMemorySize, KeyDiskNumber}},
		{"switchable and discrete", func(p *DeviceProfile) { p.Switchable, p.Discrete = true, true }, []string{KeySwitchableGraphics}},
		{"bad computer type", func(p *DeviceProfile) { p.ComputerType = 4 }, []string{KeyComputerType}},
		{"no cores", func(p *DeviceProfile) { p.CPUCores = 0 }, []string{KeyCPUCores}},
		{"no clock", func(p *DeviceProfile) { p.CPUClockGHz = 0 }, []string{KeyCPUClock}},
		{"no diagonal", func(p *DeviceProfile) { p.DisplayDiagonal = 0 }, []string{KeyDisplayDiagonal}},
		{"no resolution", func(p *DeviceProfile) { p.DisplayHeight = 0 }, []string{KeyDisplayWidth}},
		{"desktop without display", func(p *DeviceProfile) {
			p.ComputerType = Desktop
			p.DisplayDiagonal, p.DisplayWidth, p.DisplayHeight = 0, 0, 0
		}, nil},
		{"bad power supply", func(p *DeviceProfile) { p.PowerSupply = "x" }, []string{KeyPowerSupply}},
		{"workstation without max power", func(p *DeviceProfile) { *p = DeviceProfile{ProductType: Workstation} }, []string{KeyMaximumPower}},
		{"server without cores", func(p *DeviceProfile) { *p = DeviceProfile{ProductType: SmallServer} }, []string{KeyCPUCores}},
		{"thin client without display", func(p *DeviceProfile) { *p = DeviceProfile{ProductType: ThinClient} }, nil},
		{"thin client with empty display", func(p *DeviceProfile) {
			*p = DeviceProfile{ProductType: ThinClient, IntegratedDisplay: true}
		}, []string{KeyDisplayDiagonal, KeyDisplayWidth}},
		{"unknown product type", func(p *DeviceProfile) { *p = DeviceProfile{ProductType: 8} }, nil},
		{"nan off", func(p *DeviceProfile) { p.Off = math.NaN() }, []string{KeyOffMode}},
		{"infinite short idle", func(p *DeviceProfile) { p.ShortIdle = math.Inf(1) }, []string{KeyShortIdleMode}},
		{"negative infinite memory", func(p *DeviceProfile) { p.MemoryGB = math.Inf(-1) }, []string{KeyMemorySize}},
		{"nan clock", func(p *DeviceProfile) { p.CPUClockGHz = math.NaN() }, []string{KeyCPUClock}},
		{"infinite diagonal", func(p *DeviceProfile) { p.DisplayDiagonal = math.Inf(1) }, []string{KeyDisplayDiagonal}},
		{"nan off with wol", func(p *DeviceProfile) { p.OffWOL = math.NaN() }, []string{KeyOffModeWOL}},
		{"slots over total", func(p *DeviceProfile) { p.MemoryTotalSlots, p.MemoryUsedSlots = 2, 4 }, []string{KeyMemoryUsedSlots}},
		{"workstation nan max power", func(p *DeviceProfile) {
			*p = DeviceProfile{ProductType: Workstation, MaxPower: math.NaN()}
		}, []string{KeyMaximumPower}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validNotebook()
			tt.edit(&p)
			err := p.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("Validate() = %v, want ErrInvalidProfile", err)
			}
			got := problemFields(err)
			if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("problem fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestLoadAnswers(t *testing.T) {
	in := `{
		// cached by a previous run
		"Product Type": 1,
		"Computer Type": "3",
		"Switchable Graphics": "y",
		"CPU Clock": 2.5,
		"Product name": "X1",
	}`
	a, err := LoadAnswers(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadAnswers: %v", err)
	}
	if v, ok, err := a.Int(KeyProductType); v != 1 || !ok || err != nil {
		t.Errorf("Int(Product Type) = %v %v %v", v, ok, err)
	}
	if v, ok, err := a.Int(KeyComputerType); v != 3 || !ok || err != nil {
		t.Errorf("Int(Computer Type) = %v %v %v", v, ok, err)
	}
	if v, ok, err := a.Bool(KeySwitchableGraphics); !v || !ok || err != nil {
		t.Errorf("Bool(Switchable Graphics) = %v %v %v", v, ok, err)
	}
	if _, _, err := a.Int(KeyCPUClock); err == nil {
		t.Error("Int(CPU Clock) accepted a fraction")
	}
	if s, ok := a.Text(KeyProductName); s != "X1" || !ok {
		t.Errorf("Text(Product name) = %q %v", s, ok)
	}
	if _, ok, _ := a.Float(KeyOffMode); ok {
		t.Error("Float reported an unanswered key")
	}
}

func TestLoadAnswersEmpty(t *testing.T) {
	a, err := LoadAnswers(strings.NewReader("  \n"))
	if err != nil || len(a) != 0 {
		t.Fatalf("LoadAnswers(empty) = %v, %v", a, err)
	}
	if _, err := LoadAnswers(strings.NewReader("{")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestAnswersSaveRoundTrip(t *testing.T) {
	a := Answers{KeyProductType: 2, KeyMaximumPower: 180.5, KeyWakeOnLAN: true}
	var buf bytes.Buffer
	if err := a.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(buf.String(), "    \"Maximum Power\": 180.5") {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}
	back, err := LoadAnswers(&buf)
	if err != nil {
		t.Fatalf("LoadAnswers: %v", err)
	}
	if v, _, _ := back.Float(KeyMaximumPower); v != 180.5 {
		t.Errorf("Maximum Power = %v", v)
	}
}

func TestBoolSpellings(t *testing.T) {
	for _, s := range []string{"y", "Y", "yes", "1", "true"} {
		if v, _, err := (Answers{"k": s}).Bool("k"); !v || err != nil {
			t.Errorf("Bool(%q) = %v, %v", s, v, err)
		}
	}
	for _, s := range []string{"n", "N", "no", "0", "false"} {
		if v, _, err := (Answers{"k": s}).Bool("k"); v || err != nil {
			t.Errorf("Bool(%q) = %v, %v", s, v, err)
		}
	}
	if _, _, err := (Answers{"k": "maybe"}).Bool("k"); err == nil {
		t.Error("Bool accepted maybe")
	}
}
