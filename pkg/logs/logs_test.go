package logs

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFanoutRespectsLevels(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := fanout{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	logger := slog.New(h).With(slog.String("service", "test"))

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("fanout should be enabled when any handler is")
	}

	logger.Info("hello")
	if debugBuf.Len() == 0 {
		t.Error("debug handler did not receive info record")
	}
	if errorBuf.Len() != 0 {
		t.Errorf("error handler received info record: %q", errorBuf.String())
	}
	if !bytes.Contains(debugBuf.Bytes(), []byte("service=test")) {
		t.Errorf("attrs not propagated: %q", debugBuf.String())
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{}
	cfg.Server.Environment = "production"
	cfg.Logging.Level = "debug"
	cfg.Logging.Output.File = config.FileLogConfig{Enabled: true, Path: path, MaxSizeMB: 1}

	logger, closer := New(cfg)
	logger.Debug("tenant registry reloaded", slog.Int("tenants", 2))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{`"msg":"tenant registry reloaded"`, `"service":"medibridge"`, `"tenants":2`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("log file missing %s: %s", want, data)
		}
	}
}

func TestCLILogsWarningsOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := CLI(&buf)
	logger.Info("tenant registry reloaded")
	logger.Warn("skipping tenant registry entry")

	got := buf.String()
	if strings.Contains(got, "reloaded") {
		t.Errorf("info record written: %q", got)
	}
	if !strings.Contains(got, "skipping tenant registry entry") || !strings.Contains(got, "service=medibridge") {
		t.Errorf("warn record missing or unlabelled: %q", got)
	}
}
