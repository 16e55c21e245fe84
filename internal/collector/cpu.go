package collector

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

type cpuInfo struct {
	vendor    string
	modelName string
	cores     int
}

var modelClock = regexp.MustCompile(`@\s*([0-9]+(?:\.[0-9]+)?)\s*GHz`)

// readCPUInfo extracts the vendor, first model name and the largest
// "cpu cores" value from cpuinfo.
func readCPUInfo(path string) (cpuInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return cpuInfo{}, fmt.Errorf("open cpuinfo: %w", err)
	}
	defer f.Close()

	var info cpuInfo
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "vendor_id":
			if info.vendor == "" {
				info.vendor = value
			}
		case "model name":
			if info.modelName == "" {
				info.modelName = value
			}
		case "cpu cores":
			if n, err := strconv.Atoi(value); err == nil && n > info.cores {
				info.cores = n
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return cpuInfo{}, fmt.Errorf("read cpuinfo: %w", err)
	}
	return info, nil
}

func vendorOf(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "intel"):
		return "intel"
	case strings.Contains(s, "amd"):
		return "amd"
	}
	return ""
}

// CPUCores returns the physical core count. Kernels that do not report
// "cpu cores" count as one core.
func (c *Linux) CPUCores() (int, error) {
	info, err := readCPUInfo(filepath.Join(c.procRoot, "cpuinfo"))
	if err != nil {
		return 0, err
	}
	if info.cores == 0 {
		return 1, nil
	}
	return info.cores, nil
}

// CPUClockGHz returns the nominal clock. Intel parts carry it in the model
// name; AMD parts report it through SMBIOS.
func (c *Linux) CPUClockGHz() (float64, error) {
	info, err := readCPUInfo(filepath.Join(c.procRoot, "cpuinfo"))
	if err != nil {
		return 0, err
	}

	switch vendorOf(info.vendor) {
	case "intel":
		if m := modelClock.FindStringSubmatch(info.modelName); m != nil {
			return strconv.ParseFloat(m[1], 64)
		}
		c.log.Debugf("no clock in model name %q, trying smbios", info.modelName)
		return c.firmwareClock()
	case "amd":
		return c.firmwareClock()
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCPUVendor, info.vendor)
}

func (c *Linux) firmwareClock() (float64, error) {
	fw, err := c.firmware()
	if err != nil {
		return 0, fmt.Errorf("processor speed: %w", err)
	}
	if fw.ProcessorMHz <= 0 {
		return 0, errors.New("processor speed: not reported by smbios")
	}
	return float64(fw.ProcessorMHz) / 1000, nil
}
