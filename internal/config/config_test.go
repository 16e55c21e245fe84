package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":9650" || cfg.HTTPListen != ":9651" {
		t.Errorf("listen = %q / %q", cfg.Listen, cfg.HTTPListen)
	}
	if cfg.DatabasePath != "energy.db" || cfg.PurgeInterval != 24*time.Hour || !cfg.EnableSwagger {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Format != "text" || cfg.ProfilePath != "energy-tools.json" {
		t.Errorf("cli defaults = %q / %q", cfg.Format, cfg.ProfilePath)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.yaml")
	content := "listen: \":7000\"\nretention_days: 30\npurge_interval: 1h\nremote: collector.local:9650\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":7000" || cfg.RetentionDays != 30 || cfg.PurgeInterval != time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Remote != "collector.local:9650" {
		t.Errorf("remote = %q", cfg.Remote)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENERGY_DATABASE", "/var/lib/energy/history.db")
	t.Setenv("ENERGY_API_SECRET", "s3cret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabasePath != "/var/lib/energy/history.db" || cfg.ApiSecret != "s3cret" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestLoadBadPurgeInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.yaml")
	if err := os.WriteFile(path, []byte("purge_interval: 0s\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a zero purge interval")
	}
}

func TestNewLoggerFilters(t *testing.T) {
	var buf bytes.Buffer
	h := log.NewHelper(NewLogger(&buf, "warn"))
	h.Info("hidden")
	h.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}
