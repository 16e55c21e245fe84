package collector

// Firmware holds the SMBIOS facts the collector uses.
type Firmware struct {
	BIOSVersion string
	ProductName string

	// ProcessorManufacturer and ProcessorMHz come from the first
	// populated processor structure.
	ProcessorManufacturer string
	ProcessorMHz          int

	// MemoryMB lists the size of each populated memory device.
	MemoryMB []float64
}

// TotalMemoryGB sums the populated memory devices.
func (f *Firmware) TotalMemoryGB() float64 {
	var mb float64
	for _, m := range f.MemoryMB {
		mb += m
	}
	return mb / 1024
}
