package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"uartecho-go/errcode"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serial.PollTimeout != time.Millisecond {
		t.Errorf("poll_timeout=%v", cfg.Serial.PollTimeout)
	}
	if cfg.Probe.ReplyTimeout != 500*time.Millisecond || !cfg.Probe.FollowBaud {
		t.Errorf("probe defaults: %+v", cfg.Probe)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" || cfg.Logging.Output != "stderr" {
		t.Errorf("logging defaults: %+v", cfg.Logging)
	}
	if err := cfg.Validate(); !errors.Is(err, errcode.InvalidParams) {
		t.Errorf("missing port should be invalid, got %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "echo.yaml")
	body := []byte(`
serial:
  port: /dev/ttyUSB0
  poll_timeout: 5s
probe:
  reply_timeout: 250ms
  follow_baud: false
logging:
  format: json
`)
	if err := os.WriteFile(file, body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("UARTECHO_LOGGING_LEVEL", "debug")

	cfg, err := Load(nil, file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serial.Port != "/dev/ttyUSB0" {
		t.Errorf("port=%q", cfg.Serial.Port)
	}
	if cfg.Serial.PollTimeout != maxPollTimeout {
		t.Errorf("poll_timeout not clamped: %v", cfg.Serial.PollTimeout)
	}
	if cfg.Probe.ReplyTimeout != 250*time.Millisecond || cfg.Probe.FollowBaud {
		t.Errorf("probe: %+v", cfg.Probe)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging: %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("want invalid_params, got %v", err)
	}
}

func TestValidate_Format(t *testing.T) {
	c := &Config{
		Serial:  SerialConfig{Port: "x"},
		Probe:   ProbeConfig{ReplyTimeout: time.Second},
		Logging: LoggingConfig{Format: "xml"},
	}
	if err := c.Validate(); !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("want invalid_params, got %v", err)
	}
}
