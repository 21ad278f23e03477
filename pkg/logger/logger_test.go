package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	originalLogger := Logger
	t.Cleanup(func() {
		Logger = originalLogger
		SetLogLevel(INFO)
	})
}

func TestLogLevelFiltering(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	SetLogLevel(WARN)
	Info("info message should be filtered")
	Warn("warn message should appear")
	Error("error message should appear")

	output := buf.String()
	if strings.Contains(output, "info message should be filtered") {
		t.Fatalf("info message was logged at WARN level:\n%s", output)
	}
	if !strings.Contains(output, "warn message should appear") {
		t.Fatalf("warn message was not logged:\n%s", output)
	}
	if !strings.Contains(output, "error message should appear") {
		t.Fatalf("error message was not logged:\n%s", output)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{" INFO ", INFO, false},
		{"warning", WARN, false},
		{"error", ERROR, false},
		{"loud", INFO, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfigureWritesJSONToFile(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := Configure(Options{Level: "debug", File: path, Format: "json"}); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	Debug("seeded reference table", "table", "genders")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"seeded reference table"`) {
		t.Fatalf("expected JSON record in log file, got %q", string(data))
	}
}

func TestConfigureInvalidOptionsStillReplacesLogger(t *testing.T) {
	restoreLogger(t)

	before := Logger
	err := Configure(Options{Level: "nope", Format: "xml"})
	if err == nil {
		t.Fatal("expected an error for invalid level and format")
	}
	if Logger == before {
		t.Fatal("expected logger to be rebuilt with defaults")
	}
	if !Enabled(INFO) || Enabled(DEBUG) {
		t.Fatal("expected invalid level to fall back to INFO")
	}
}
