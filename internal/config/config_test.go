package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Extract.MinChars != 500 {
		t.Errorf("got min_chars %d, want 500", cfg.Extract.MinChars)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("got addr %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.MaxUploadBytes() != 32<<20 {
		t.Errorf("got %d upload bytes, want %d", cfg.MaxUploadBytes(), 32<<20)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("got format %q, want table", cfg.Output.Format)
	}
	if cfg.Workers != 4 {
		t.Errorf("got workers %d, want 4", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "partial file keeps defaults",
			yaml: "log:\n  level: debug\noutput:\n  format: xlsx\n",
			check: func(t *testing.T, c *Config) {
				if c.Log.Level != "debug" {
					t.Errorf("got level %q, want debug", c.Log.Level)
				}
				if c.Output.Format != "xlsx" {
					t.Errorf("got format %q, want xlsx", c.Output.Format)
				}
				if c.Server.MaxUploadMB != 32 {
					t.Errorf("got max_upload_mb %d, want 32", c.Server.MaxUploadMB)
				}
			},
		},
		{
			name: "server section",
			yaml: "server:\n  addr: 127.0.0.1:9000\n  max_upload_mb: 8\nworkers: 2\n",
			check: func(t *testing.T, c *Config) {
				if c.Server.Addr != "127.0.0.1:9000" {
					t.Errorf("got addr %q", c.Server.Addr)
				}
				if c.MaxUploadBytes() != 8<<20 {
					t.Errorf("got %d upload bytes", c.MaxUploadBytes())
				}
				if c.Workers != 2 {
					t.Errorf("got workers %d, want 2", c.Workers)
				}
			},
		},
		{name: "bad output format", yaml: "output:\n  format: pdf\n", wantErr: "Format"},
		{name: "bad log level", yaml: "log:\n  level: loud\n", wantErr: "Level"},
		{name: "too many workers", yaml: "workers: 500\n", wantErr: "Workers"},
		{name: "malformed yaml", yaml: "log: [\n", wantErr: "decode config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("got error %v, want one containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\nserver:\n  addr: :7000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvAddr, ":9999")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("got level %q, want warn", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("got addr %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoad_NoPath(t *testing.T) {
	t.Setenv(EnvAddr, ":1234")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":1234" {
		t.Errorf("got addr %q, want :1234", cfg.Server.Addr)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: "json"}, &buf)

	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("got level %v, want debug", logger.GetLevel())
	}
	logger.WithField("bureau", "experian").Debug("classified")
	if !strings.Contains(buf.String(), `"bureau":"experian"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	logger = NewLogger(LogConfig{Level: "nonsense"}, &buf)
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("got level %v, want info", logger.GetLevel())
	}
}
