package estar

// GPUCategory is the 6.0 discrete graphics class, bucketed by frame buffer
// bandwidth in GB/s.
type GPUCategory int

const (
	G1 GPUCategory = iota + 1
	G2
	G3
	G4
	G5
	G6
	G7
)

// GPUCategories lists every class in report order.
var GPUCategories = []GPUCategory{G1, G2, G3, G4, G5, G6, G7}

var gpuLabels = map[GPUCategory]string{
	G1: "G1 (FB_BW <= 16)",
	G2: "G2 (16 < FB_BW <= 32)",
	G3: "G3 (32 < FB_BW <= 64)",
	G4: "G4 (64 < FB_BW <= 96)",
	G5: "G5 (96 < FB_BW <= 128)",
	G6: "G6 (FB_BW > 128; Frame Buffer Data Width < 192 bits)",
	G7: "G7 (FB_BW > 128; Frame Buffer Data Width >= 192 bits)",
}

// Label returns the class name with its bandwidth range.
func (g GPUCategory) Label() string {
	if l, ok := gpuLabels[g]; ok {
		return l
	}
	return "unknown graphics category"
}

func (g GPUCategory) String() string {
	if g < G1 || g > G7 {
		return "G?"
	}
	return "G" + string(rune('0'+int(g)))
}

// Graphics surcharges in kWh, indexed by GPUCategory-1.
var (
	desktopGraphics  = [7]float64{36, 51, 64, 83, 105, 115, 130}
	notebookGraphics = [7]float64{14, 20, 26, 32, 42, 48, 60}
)

func graphicsAllowance(g GPUCategory, notebook bool) float64 {
	if g < G1 || g > G7 {
		return 0
	}
	if notebook {
		return notebookGraphics[g-1]
	}
	return desktopGraphics[g-1]
}

// ClassifyGPU buckets a declared frame buffer bandwidth. widthBits only
// matters above 128 GB/s.
func ClassifyGPU(bandwidth float64, widthBits int) GPUCategory {
	switch {
	case bandwidth <= 16:
		return G1
	case bandwidth <= 32:
		return G2
	case bandwidth <= 64:
		return G3
	case bandwidth <= 96:
		return G4
	case bandwidth <= 128:
		return G5
	case widthBits < 192:
		return G6
	}
	return G7
}
