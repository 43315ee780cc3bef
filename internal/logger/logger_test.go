package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func initTemp(t *testing.T, verbose bool) (*bytes.Buffer, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	consoleBuffer := &bytes.Buffer{}

	if err := Init(consoleBuffer, logPath, verbose); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(Close)
	return consoleBuffer, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLoggerInit(t *testing.T) {
	consoleBuffer, logPath := initTemp(t, false)

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}

	Info("Loaded %d rows", 3)
	if !strings.Contains(consoleBuffer.String(), "Loaded 3 rows") {
		t.Errorf("Console output missing info message: %s", consoleBuffer.String())
	}

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[INFO] Loaded 3 rows") {
		t.Errorf("Log file missing info line: %s", logStr)
	}
}

func TestLoggerLevels(t *testing.T) {
	consoleBuffer, logPath := initTemp(t, false)

	Debug("Debug message")
	Info("Info message")
	Warn("Warn message")
	Error("Error message")

	logStr := readLog(t, logPath)
	for _, level := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(logStr, level) {
			t.Errorf("Log file missing %s level", level)
		}
	}

	consoleStr := consoleBuffer.String()
	if strings.Contains(consoleStr, "Debug message") {
		t.Error("Console should not show DEBUG when verbose=false")
	}
	if !strings.Contains(consoleStr, "⚠️  Warn message") {
		t.Error("Console missing warning prefix")
	}
	if !strings.Contains(consoleStr, "❌ Error message") {
		t.Error("Console missing error prefix")
	}
}

func TestLoggerVerbose(t *testing.T) {
	consoleBuffer, _ := initTemp(t, true)

	Debug("Debug message")

	if !strings.Contains(consoleBuffer.String(), "[DEBUG] Debug message") {
		t.Error("Console should show DEBUG when verbose=true")
	}
	if !IsVerbose() {
		t.Error("IsVerbose() should return true when initialized with verbose=true")
	}
}

func TestLoggerWithoutFile(t *testing.T) {
	consoleBuffer := &bytes.Buffer{}
	if err := Init(consoleBuffer, "", false); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Close()

	Info("console only")
	if !strings.Contains(consoleBuffer.String(), "console only") {
		t.Error("Console missing message")
	}
	if GetLogFilePath() != "" {
		t.Error("Expected no log file path")
	}
}

func TestLogLoadError(t *testing.T) {
	consoleBuffer, logPath := initTemp(t, false)

	LogLoadError("https://example.com/data.xlsx", errors.New("decode failed"))

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[LOAD_ERROR]") {
		t.Error("Log file missing LOAD_ERROR marker")
	}
	if !strings.Contains(logStr, "https://example.com/data.xlsx") {
		t.Error("Log file missing source location")
	}

	if strings.Contains(consoleBuffer.String(), "[LOAD_ERROR]") {
		t.Error("Console should not show detailed load errors")
	}
}

func TestRequest(t *testing.T) {
	consoleBuffer, _ := initTemp(t, false)

	Request("GET", "/export", 200, 1500*time.Microsecond)
	if !strings.Contains(consoleBuffer.String(), "GET /export 200 2ms") {
		t.Errorf("Unexpected request line: %q", consoleBuffer.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level.String() = %s, expected %s", result, tt.expected)
		}
	}
}

func TestGetLogFilePath(t *testing.T) {
	_, logPath := initTemp(t, false)

	if retrievedPath := GetLogFilePath(); retrievedPath != logPath {
		t.Errorf("GetLogFilePath() = %s, expected %s", retrievedPath, logPath)
	}
}
