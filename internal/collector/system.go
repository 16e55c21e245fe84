package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskCount counts SATA/SCSI and NVMe block devices.
func (c *Linux) DiskCount() (int, error) {
	entries, err := os.ReadDir(filepath.Join(c.sysRoot, "block"))
	if err != nil {
		return 0, fmt.Errorf("list block devices: %w", err)
	}
	n := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "sd") || strings.HasPrefix(name, "nvme") {
			n++
		}
	}
	return n, nil
}

// BIOSVersion returns the firmware version from SMBIOS, falling back to DMI.
func (c *Linux) BIOSVersion() (string, error) {
	if fw, err := c.firmware(); err == nil && fw.BIOSVersion != "" {
		return fw.BIOSVersion, nil
	}
	return c.readDMI("bios_version")
}

// ProductName returns the system product name from SMBIOS, falling back to
// DMI.
func (c *Linux) ProductName() (string, error) {
	if fw, err := c.firmware(); err == nil && fw.ProductName != "" {
		return fw.ProductName, nil
	}
	return c.readDMI("product_name")
}

// readDMI reads an identity attribute exported by the kernel. Spaces are
// replaced so the value stays a single token in reports.
func (c *Linux) readDMI(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.sysRoot, "devices/virtual/dmi/id", name))
	if err != nil {
		return "", fmt.Errorf("read dmi %s: %w", name, err)
	}
	return strings.ReplaceAll(strings.TrimSpace(string(data)), " ", "_"), nil
}
