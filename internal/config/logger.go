package config

import (
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

// NewLogger returns a timestamped logger writing to w that drops records
// below level. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) log.Logger {
	logger := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
	)
	return log.NewFilter(logger, log.FilterLevel(log.ParseLevel(level)))
}
