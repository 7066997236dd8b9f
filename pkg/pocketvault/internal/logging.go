package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogMaxSizeMB  = 5
	defaultLogMaxBackups = 3
)

var (
	consoleOut     io.Writer = os.Stderr
	consoleEnabled           = atomic.NewBool(true)

	logPath   string
	logWriter *lumberjack.Logger

	setupOnce   sync.Once
	multiWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   *slog.LevelVar
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. Has no effect once a logger has
// been handed out.
func SetLogPath(path string) {
	logPath = path
}

// consoleWriter copies log output to stderr while console output is on.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	if !consoleEnabled.Load() {
		return len(p), nil
	}
	return consoleOut.Write(p)
}

// SetConsoleOutput turns the stderr copy of both loggers on or off. The log
// file, when one is set, keeps receiving everything. Takes effect
// immediately.
func SetConsoleOutput(enabled bool) {
	consoleEnabled.Store(enabled)
}

// ConsoleOutput reports whether logs are copied to stderr.
func ConsoleOutput() bool {
	return consoleEnabled.Load()
}

func setup() {
	setupOnce.Do(func() {
		if logPath == "" {
			multiWriter = consoleWriter{}
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			multiWriter = consoleWriter{}
			return
		}

		logWriter = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			Compress:   true,
		}
		multiWriter = io.MultiWriter(consoleWriter{}, logWriter)
	})
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

// GetInternalLogger returns the logger used by pocketvault's own packages.
// It defaults to LevelError so library chatter stays out of application logs.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLevelVar = &slog.LevelVar{}
		internalLevelVar.Set(slog.LevelError)

		setup()

		handler := slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{
			Level:     internalLevelVar,
			AddSource: false,
		})
		internalLogger = slog.New(handler)
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// ParseLevel maps a level name to a slog.Level. ok is false for unknown
// names, which map to LevelInfo.
func ParseLevel(rawLevel string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func SetRawLogLevel(rawLevel string) {
	level, _ := ParseLevel(rawLevel)
	SetLogLevel(level)
}

func CloseLogger() error {
	if logWriter != nil {
		return logWriter.Close()
	}
	return nil
}
