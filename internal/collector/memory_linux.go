//go:build linux

package collector

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func systemMemoryGB() (float64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return float64(uint64(info.Totalram)*unit) / (1 << 30), nil
}
