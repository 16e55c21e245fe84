package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

// Answer keys. They match the prompt names used by the questionnaire so a
// cached profile can be replayed without asking again.
const (
	KeyProductType          = "Product Type"
	KeyComputerType         = "Computer Type"
	KeySwitchableGraphics   = "Switchable Graphics"
	KeyDiscreteGraphicsCard = "Discrete Graphics Cards"
	KeyDiscreteGraphics     = "Discrete Graphics"
	KeyFrameBufferBandwidth = "Frame Buffer Bandwidth"
	KeyFrameBufferWidth     = "Frame Buffer Width"
	KeyDisplayDiagonal      = "Display Diagonal"
	KeyDisplayWidth         = "Display Width"
	KeyDisplayHeight        = "Display Height"
	KeyEnhancedDisplay      = "Enhanced Display"
	KeyIntegratedDisplay    = "Integrated Display"
	KeyOffMode              = "Off Mode"
	KeySleepMode            = "Sleep Mode"
	KeyLongIdleMode         = "Long Idle Mode"
	KeyShortIdleMode        = "Short Idle Mode"
	KeyMaximumPower         = "Maximum Power"
	KeyMoreDiscrete         = "More Discrete Graphics"
	KeyMediaCodec           = "Media Codec"
	KeyGigabitEthernet      = "Gigabit Ethernet"
	KeyDiskNumber           = "Disk Number"
	KeyCPUCores             = "CPU Cores"
	KeyCPUClock             = "CPU Clock"
	KeyMemorySize           = "Memory Size"
	KeyWakeOnLAN            = "Wake-on-LAN"
	KeyPowerSupply          = "Power Supply"
	KeyBIOSVersion          = "BIOS version"
	KeyProductName          = "Product name"
)

// Reference keys written by older questionnaires. They are loaded into the
// profile for display but no allowance depends on them.
const (
	KeyScreenArea       = "Screen Area"
	KeyMemoryTotalSlots = "Memory Total Slots"
	KeyMemoryUsedSlots  = "Memory Used Slots"
	KeyOffModeWOL       = "Off Mode with WOL"
	KeySleepModeWOL     = "Sleep Mode with WOL"
)

// Answers is the flat record of collected attributes keyed by prompt name.
// Values are JSON scalars: numbers, booleans or strings.
type Answers map[string]any

// LoadAnswers decodes a cached profile. Comments and trailing commas are
// accepted.
func LoadAnswers(r io.Reader) (Answers, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	answers := Answers{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &answers); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return answers, nil
}

// Save writes the answers as indented JSON with sorted keys.
func (a Answers) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[string]any(a)); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return nil
}

// Has reports whether key has been answered.
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Float returns the numeric answer for key.
func (a Answers) Float(key string) (float64, bool, error) {
	v, ok := a[key]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case json.Number:
		f, err := n.Float64()
		return f, true, err
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, true, fmt.Errorf("%s: %q is not a number", key, n)
		}
		return f, true, nil
	}
	return 0, true, fmt.Errorf("%s: %v is not a number", key, v)
}

// Int returns the integer answer for key. Fractional numbers are rejected.
func (a Answers) Int(key string) (int, bool, error) {
	f, ok, err := a.Float(key)
	if !ok || err != nil {
		return 0, ok, err
	}
	if f != float64(int(f)) {
		return 0, true, fmt.Errorf("%s: %g is not an integer", key, f)
	}
	return int(f), true, nil
}

// Bool returns the boolean answer for key. The questionnaire's y/n/1/0
// spellings are accepted as strings.
func (a Answers) Bool(key string) (bool, bool, error) {
	v, ok := a[key]
	if !ok {
		return false, false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, true, nil
	case float64:
		return b != 0, true, nil
	case int:
		return b != 0, true, nil
	case json.Number:
		f, err := b.Float64()
		if err == nil {
			return f != 0, true, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "y", "yes", "1", "true":
			return true, true, nil
		case "n", "no", "0", "false":
			return false, true, nil
		}
	}
	return false, true, fmt.Errorf("%s: %v is not a yes/no answer", key, v)
}

// Text returns the string answer for key.
func (a Answers) Text(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", ok
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}
