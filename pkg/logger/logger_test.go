package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"verbose", "info"}, // unknown levels fall back to info
		{"", "info"},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServiceName != "housemate" {
		t.Errorf("expected service name housemate, got %q", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("expected info level, got %q", cfg.Level)
	}
	if cfg.OTLPEnabled {
		t.Error("OTLP export should be off by default")
	}
}

func TestNewWritesStructuredOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	cfg := DefaultConfig()
	cfg.OutputPath = path
	cfg.Development = false

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("bill paid", zap.String("bill_id", "b-1"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)

	for _, want := range []string{`"message":"bill paid"`, `"bill_id":"b-1"`, `"service":"housemate"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestGetInitializesLazily(t *testing.T) {
	globalLogger = nil

	log := Get()
	if log == nil {
		t.Fatal("expected a logger from uninitialized Get")
	}
	// Context helpers must be safe on a bare context
	log.InfoContext(context.Background(), "lazy init works")
	InfoCtx(context.Background(), "package-level helper works")
}

func TestWithFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	cfg := DefaultConfig()
	cfg.OutputPath = path

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.WithFields(zap.String("flat_id", "f-1")).Info("tenant assigned")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"flat_id":"f-1"`) {
		t.Errorf("expected flat_id field in output:\n%s", data)
	}
}
