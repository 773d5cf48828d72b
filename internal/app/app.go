package app

import (
	"io"
	"log/slog"

	"github.com/vk/packlane/internal/cli"
	"github.com/vk/packlane/internal/config"
)

// App encapsulates the build driver's dependencies and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	logFormat string
	workDir   string
	overrides config.Overrides
}

// NewApp is the constructor for the build driver. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, workDir string, opts *cli.Options) *App {
	logger := newLogger(opts.LogLevel, opts.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:      outW,
		logger:    logger,
		logFormat: opts.LogFormat,
		workDir:   workDir,
		overrides: opts.Overrides,
	}
}
