package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/signaldeck/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLevel zerolog.Level
	}{
		{
			name: "debug level",
			cfg: &config.Config{
				Env:       "development",
				LogLevel:  "debug",
				LogFormat: "json",
			},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name: "info level",
			cfg: &config.Config{
				Env:       "production",
				LogLevel:  "info",
				LogFormat: "json",
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name: "error level",
			cfg: &config.Config{
				Env:       "production",
				LogLevel:  "error",
				LogFormat: "console",
			},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.cfg)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			// Verify global level is set
			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer

	// Set global level to debug to capture all logs
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{
			name:      "debug",
			logFunc:   func() { logger.Debug("debug message") },
			wantMsg:   "debug message",
			wantLevel: "debug",
		},
		{
			name:      "info",
			logFunc:   func() { logger.Info("info message") },
			wantMsg:   "info message",
			wantLevel: "info",
		},
		{
			name:      "warn",
			logFunc:   func() { logger.Warn("warn message") },
			wantMsg:   "warn message",
			wantLevel: "warn",
		},
		{
			name:      "error",
			logFunc:   func() { logger.Error("error message") },
			wantMsg:   "error message",
			wantLevel: "error",
		},
		{
			name:      "infof",
			logFunc:   func() { logger.Infof("count: %d", 42) },
			wantMsg:   "count: 42",
			wantLevel: "info",
		},
		{
			name:      "warnf",
			logFunc:   func() { logger.Warnf("retry attempt: %d", 3) },
			wantMsg:   "retry attempt: 3",
			wantLevel: "warn",
		},
		{
			name:      "errorf",
			logFunc:   func() { logger.Errorf("failed to connect: %s", "timeout") },
			wantMsg:   "failed to connect: timeout",
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			var logEntry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("Failed to parse log output: %v", err)
			}

			if logEntry["level"] != tt.wantLevel {
				t.Errorf("Expected level %q, got %q", tt.wantLevel, logEntry["level"])
			}

			if logEntry["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, logEntry["message"])
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	fields := map[string]interface{}{
		"ticker": "005930",
		"score":  9.5,
	}

	enrichedLogger := logger.WithFields(fields)
	enrichedLogger.Info("signal committed")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["ticker"] != "005930" {
		t.Errorf("Expected ticker to be 005930, got %v", logEntry["ticker"])
	}

	if logEntry["score"] != 9.5 {
		t.Errorf("Expected score to be 9.5, got %v", logEntry["score"])
	}

	if logEntry["message"] != "signal committed" {
		t.Errorf("Expected message 'signal committed', got %v", logEntry["message"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	testErr := errors.New("backend unreachable")
	enrichedLogger := logger.WithError(testErr)
	enrichedLogger.Error("refresh failed")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if logEntry["error"] != "backend unreachable" {
		t.Errorf("Expected error to be 'backend unreachable', got %v", logEntry["error"])
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	// Must not panic, must not write anywhere
	logger.WithField("k", "v").Info("discarded")
	logger.WithError(errors.New("x")).Error("discarded")
}
