//go:build !linux

package collector

import "errors"

func systemMemoryGB() (float64, error) {
	return 0, errors.New("memory size is only probed on linux")
}
