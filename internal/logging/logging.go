// Package logging builds the logger the bootstrap passes to every step.
// Lines use the pingcap/log text layout: timestamp, level, caller, message
// and fields, each in brackets, and always carry the process id under a
// fixed logger name.
package logging

import (
	"io"
	"os"

	"github.com/minhhai2209/broker-gpt-2/internal/branding"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "text" or "json". Empty means text.
	Format string
	// Output receives log lines; defaults to os.Stdout.
	Output io.Writer
	// ErrOutput receives the logger's own internal errors; defaults to os.Stderr.
	ErrOutput io.Writer
}

// New constructs the logger. It is never installed as the global logger.
func New(opts Options) (*zap.Logger, error) {
	cfg := &log.Config{
		Level:  opts.Level,
		Format: opts.Format,
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.ErrOutput
	if errOut == nil {
		errOut = os.Stderr
	}

	lg, _, err := log.InitLoggerWithWriteSyncer(cfg, zapcore.AddSync(out), zapcore.AddSync(errOut))
	if err != nil {
		return nil, errors.Annotate(err, "initializing logger")
	}
	return lg.Named(branding.LogPrefix()).With(zap.Int("pid", os.Getpid())), nil
}
