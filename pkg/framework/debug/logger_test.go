package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagLevel|FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if !strings.Contains(output, "[INFO]") {
			t.Error("Missing log level")
		}
		if !strings.Contains(output, "[TEST]") {
			t.Error("Missing prefix")
		}
		if !strings.HasSuffix(output, "Hello World\n") {
			t.Errorf("Missing message: %q", output)
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
			t.Error("Messages below the level should not be logged")
		}
		if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
			t.Error("Messages at or above the level should be logged")
		}
		if logger.Level() != LogLevelWarn {
			t.Errorf("Level() = %v", logger.Level())
		}
	})

	t.Run("Off", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelOff)
		logger.Error("nothing")
		if buf.Len() > 0 {
			t.Error("LogLevelOff should silence everything")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetEnabled(false)

		logger.Info("should not appear")

		if buf.Len() > 0 || logger.IsEnabled() {
			t.Error("Disabled logger should not write")
		}
		if NewNop().IsEnabled() {
			t.Error("Nop logger must be disabled")
		}
	})

	t.Run("FileInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile|FlagLevel)

		logger.Info("test")

		if !strings.Contains(buf.String(), "logger_test.go:") {
			t.Errorf("Missing file info in output: %s", buf.String())
		}
	})

	t.Run("DefaultLogger", func(t *testing.T) {
		var buf bytes.Buffer
		SetOutput(&buf)
		SetLevel(LogLevelDebug)
		defer func() {
			SetOutput(os.Stderr)
			SetLevel(LogLevelInfo)
		}()

		Debug("from default %d", 1)
		Warn("warned")

		output := buf.String()
		if !strings.Contains(output, "from default 1") || !strings.Contains(output, "[onecomp]") {
			t.Errorf("Default logger output missing: %s", output)
		}
		if Default() == nil {
			t.Error("Default() returned nil")
		}
	})
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "render.log")
	logger, closer, err := NewFileLogger(path, "FILE", FlagLevel)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Info("written")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] written") {
		t.Errorf("Unexpected file contents: %q", data)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
		}
		if tt.expected == "UNKNOWN" {
			continue
		}
		parsed, err := ParseLevel(strings.ToLower(tt.expected))
		if err != nil || parsed != tt.level {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.expected, parsed, err)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func BenchmarkLogger(b *testing.B) {
	logger := New(bytes.NewBuffer(nil), "BENCH", DefaultFlags)

	b.Run("Enabled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("BelowLevel", func(b *testing.B) {
		logger.SetLevel(LogLevelError)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})
}
