// Package logging builds the process-wide slog logger on top of zap, with
// an optional rotating log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// File, when set, adds a JSON log file rotated by size.
	File       string
	MaxSizeMB  int // default 50
	MaxBackups int // default 5
	MaxAgeDays int // default 28

	// Console receives human-readable output. Default is os.Stderr.
	Console io.Writer
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// New builds a logger from opts. The returned close function flushes and
// releases the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	enabler := zap.NewAtomicLevelAt(zapLevel(level))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), zapcore.AddSync(console), enabler),
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
		}
		cores = append(cores,
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(file), enabler))
	}

	core := zapcore.NewTee(cores...)
	closeFn := func() error {
		// Syncing a terminal returns EINVAL on some platforms.
		_ = core.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return slog.New(zapslog.NewHandler(core)), closeFn, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

var dsnPassword = regexp.MustCompile(`(?i)(password=)('[^']*'|\S+)`)

// SanitizeDSN hides the password in URL and key=value DSNs.
func SanitizeDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil {
			return u.Redacted()
		}
	}
	return dsnPassword.ReplaceAllString(dsn, "${1}xxxxx")
}
