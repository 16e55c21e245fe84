package collector

// MemoryGB returns the installed memory. SMBIOS memory devices are summed
// when available; otherwise the kernel's view of total RAM is used.
func (c *Linux) MemoryGB() (float64, error) {
	if fw, err := c.firmware(); err == nil {
		if gb := fw.TotalMemoryGB(); gb > 0 {
			return gb, nil
		}
	}
	return c.systemMemory()
}
