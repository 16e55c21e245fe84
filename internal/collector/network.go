package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EEEPorts counts wired interfaces negotiating at gigabit or faster.
// Interfaces whose link is down report no speed and are skipped.
func (c *Linux) EEEPorts() (int, error) {
	base := filepath.Join(c.sysRoot, "class/net")
	entries, err := os.ReadDir(base)
	if err != nil {
		return 0, fmt.Errorf("list network interfaces: %w", err)
	}
	n := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "eth") && !strings.HasPrefix(name, "enp") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(base, name, "speed"))
		if err != nil {
			continue
		}
		speed, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			c.log.Debugf("interface %s: unreadable speed %q", name, data)
			continue
		}
		if speed >= 1000 {
			n++
		}
	}
	return n, nil
}

// WakeOnLAN reports whether the wired LAN device is armed as an ACPI wake
// source. Hosts without ACPI wakeup information report false.
func (c *Linux) WakeOnLAN() (bool, error) {
	f, err := os.Open(filepath.Join(c.procRoot, "acpi/wakeup"))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open acpi wakeup: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "GLAN") {
			continue
		}
		switch {
		case strings.Contains(line, "enabled"):
			return true, nil
		case strings.Contains(line, "disabled"):
			return false, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("read acpi wakeup: %w", err)
	}
	return false, nil
}
