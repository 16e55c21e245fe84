package collector

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-tangra/go-tangra-energy/internal/profile"
)

// connectedConnector returns the sysfs directory of the first DRM connector
// whose status is "connected".
func (c *Linux) connectedConnector() (string, error) {
	matches, err := filepath.Glob(filepath.Join(c.sysRoot, "class/drm/card*-*"))
	if err != nil {
		return "", fmt.Errorf("list drm connectors: %w", err)
	}
	sort.Strings(matches)
	for _, dir := range matches {
		status, err := os.ReadFile(filepath.Join(dir, "status"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(status)) == "connected" {
			return dir, nil
		}
	}
	return "", ErrNoDisplay
}

// parseMode splits a DRM mode name such as "1920x1080" or "1366x768i".
func parseMode(mode string) (int, int, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(mode), "x")
	if !ok {
		return 0, 0, fmt.Errorf("malformed mode %q", mode)
	}
	h = strings.TrimRight(h, "ip")
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed mode %q: %w", mode, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed mode %q: %w", mode, err)
	}
	return width, height, nil
}

// Resolution returns the preferred mode of the first connected display.
// The kernel lists the preferred mode first.
func (c *Linux) Resolution() (int, int, error) {
	dir, err := c.connectedConnector()
	if err != nil {
		return 0, 0, err
	}
	f, err := os.Open(filepath.Join(dir, "modes"))
	if err != nil {
		return 0, 0, fmt.Errorf("open modes: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return parseMode(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("read modes: %w", err)
	}
	return 0, 0, fmt.Errorf("%s: %w", filepath.Base(dir), ErrNoDisplay)
}

// EDID basic display parameters: maximum image size in centimetres.
const (
	edidWidthCM  = 21
	edidHeightCM = 22
)

// DisplayDiagonal derives the diagonal in inches from the EDID physical
// size of the first connected display.
func (c *Linux) DisplayDiagonal() (float64, error) {
	dir, err := c.connectedConnector()
	if err != nil {
		return 0, err
	}
	edid, err := os.ReadFile(filepath.Join(dir, "edid"))
	if err != nil {
		return 0, fmt.Errorf("read edid: %w", err)
	}
	if len(edid) <= edidHeightCM {
		return 0, fmt.Errorf("edid too short (%d bytes)", len(edid))
	}
	w, h := edid[edidWidthCM], edid[edidHeightCM]
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("edid of %s carries no physical size", filepath.Base(dir))
	}
	return profile.DiagonalFromMillimetres(float64(w)*10, float64(h)*10), nil
}
