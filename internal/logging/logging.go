// Package logging writes the per-run log file.
//
// Init is called once by main; the returned logr.Logger is handed to every
// component that logs. Lines look like:
//
//	2024-05-01 10:00:00,123 - INFO - 10.0.0.5 - systemctl restart corosync - (true, "") - {"target": "node-a"}
//
// The file logger is zap's console encoder behind zapr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	timestampFormat = "2006-01-02 15:04:05,000"
	fileNameFormat  = "2006-01-02-15-04-05"
)

// Options configures a logger.
type Options struct {
	// Verbosity enables V(n) lines up to n. V(0) is always on.
	Verbosity int
	// Now is replaced in tests.
	Now func() time.Time
}

// Init creates <dir>/<start time>.log in append mode and returns a logger
// writing to it. The caller closes the returned io.Closer on exit.
func Init(dir string, start time.Time, opts Options) (logr.Logger, io.Closer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(start))
	// #nosec G304
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, opts), f, nil
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return t.Format(fileNameFormat) + ".log"
}

// New returns a logger writing lines to w.
func New(w io.Writer, opts Options) logr.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timestampFormat),
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " - ",
	})
	// logr V(n) maps to zap level -n.
	level := zap.NewAtomicLevelAt(zapcore.Level(-opts.Verbosity))
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	var zapOpts []zap.Option
	if opts.Now != nil {
		zapOpts = append(zapOpts, zap.WithClock(clock(opts.Now)))
	}
	return zapr.NewLogger(zap.New(core, zapOpts...))
}

// encodeLevel writes every V-level above 0 as DEBUG.
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l < zapcore.DebugLevel {
		l = zapcore.DebugLevel
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

type clock func() time.Time

func (c clock) Now() time.Time { return c() }

func (c clock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }
