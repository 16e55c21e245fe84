package collector

import (
	"fmt"
	"strings"

	"github.com/siderolabs/go-smbios/smbios"
)

// readSMBIOS decodes the live SMBIOS tables. Reading them usually needs
// root.
func readSMBIOS() (*Firmware, error) {
	s, err := smbios.New()
	if err != nil {
		return nil, fmt.Errorf("read smbios: %w", err)
	}

	fw := &Firmware{
		BIOSVersion: strings.TrimSpace(s.BIOSInformation.Version),
		ProductName: strings.TrimSpace(s.SystemInformation.ProductName),
	}

	for _, p := range s.ProcessorInformation {
		if p.CurrentSpeed == 0 {
			continue
		}
		fw.ProcessorManufacturer = strings.TrimSpace(p.ProcessorManufacturer)
		fw.ProcessorMHz = int(p.CurrentSpeed)
		break
	}

	for _, m := range s.MemoryDevices {
		if mb := float64(m.Size.Megabytes()); mb > 0 {
			fw.MemoryMB = append(fw.MemoryMB, mb)
		}
	}
	return fw, nil
}
