// Package logger writes leveled messages to the console and a log file.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file)
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var (
	mu           sync.RWMutex
	globalLogger *Logger
)

// Init initializes the global logger
// consoleOutput: where to write INFO logs (typically os.Stdout)
// logFilePath: path to the log file for DEBUG/ERROR logs; empty disables the file
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	var logFile *os.File
	fileOutput := io.Discard

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		fileOutput = f
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	l := &Logger{
		consoleLogger: log.New(consoleOutput, "", 0), // No prefix for clean console output
		fileLogger:    log.New(fileOutput, "", log.LstdFlags),
		logFile:       logFile,
		verbose:       verbose,
		minLevel:      minLevel,
	}

	mu.Lock()
	old := globalLogger
	globalLogger = l
	mu.Unlock()

	if old != nil && old.logFile != nil {
		old.logFile.Close()
	}
	return nil
}

// Close closes the log file and detaches the global logger
func Close() {
	mu.Lock()
	l := globalLogger
	globalLogger = nil
	mu.Unlock()

	if l != nil && l.logFile != nil {
		l.logFile.Close()
	}
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.log(LevelDebug, format, args...)
	}
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	l.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	l := current()
	if l == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	l.log(LevelError, format, args...)
}

// log handles the actual logging logic
func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Always log to file with timestamp and level (regardless of minLevel)
	l.fileLogger.Printf("[%s] %s", level.String(), message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.consoleLogger.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.consoleLogger.Printf("%s", message)
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// LogLoadError records a failed source load in full detail in the file,
// keeping only a short debug line on the console.
func LogLoadError(location string, err error) {
	l := current()
	if l == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.fileLogger.Printf("[%s] [LOAD_ERROR] Source: %s, Error: %v", timestamp, location, err)

	Debug("Load error in %s: %v", location, err)
}

// Request logs one served HTTP request at INFO level
func Request(method, path string, status int, elapsed time.Duration) {
	Info("%s %s %d %s", method, path, status, elapsed.Round(time.Millisecond))
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if l := current(); l != nil && l.logFile != nil {
		return l.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if l := current(); l != nil {
		return l.verbose
	}
	return false
}
