package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/vk/packlane/internal/config"
	"github.com/vk/packlane/internal/ctxlog"
	"github.com/vk/packlane/internal/engine"
	"github.com/vk/packlane/internal/pipeline"
)

// Run executes one invocation of the build driver: resolve configuration,
// assemble the pipeline, then run it once or watch forever.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cfg, paths, err := config.Resolve(ctx, a.workDir, a.overrides)
	if err != nil {
		return err
	}

	if cfg.Debug && !a.logger.Enabled(ctx, slog.LevelDebug) {
		// The debug field lives in the settings file, so it can only be
		// honored after resolution.
		a.logger = newLogger("debug", a.logFormat, a.outW)
		ctx = ctxlog.WithLogger(ctx, a.logger)
	}

	desc := pipeline.Assemble(cfg, paths, os.Environ())
	a.logger.Debug("Pipeline assembled.", "stages", len(desc.Stages), "output", desc.Output.Path)

	if cfg.Watch {
		return a.runWatch(ctx, desc)
	}
	return a.runBatch(ctx, cfg, desc)
}

// runBatch clears the output folder, runs the pipeline once, and reports the
// result.
func (a *App) runBatch(ctx context.Context, cfg *config.ResolvedConfig, desc pipeline.Description) error {
	if err := engine.PrepareOutput(ctx, cfg.Output.Folder, a.workDir); err != nil {
		return err
	}

	a.logger.Info("🚀 Building...", "entry", desc.Entry)
	if err := engine.Build(ctx, desc); err != nil {
		return err
	}
	a.logger.Info("🏁 Build finished.", "output", desc.Output.Path)
	return nil
}

// runWatch starts a persistent watch session and consumes its event stream
// until the session ends or fails fatally. A single failed rebuild is
// reported and the loop keeps going; only a fatal event terminates the
// process.
func (a *App) runWatch(ctx context.Context, desc pipeline.Description) error {
	session, err := engine.Watch(ctx, desc)
	if err != nil {
		return err
	}
	defer session.Close()

	for ev := range session.Events() {
		switch ev.Kind {
		case engine.EventStart:
			a.logger.Info("Watching for changes. Press Ctrl+C to stop.")
		case engine.EventStageStart:
			a.logger.Info("🔨 Rebuilding...")
		case engine.EventStageEnd:
			a.logger.Info("✅ Bundle rebuilt.", "duration", ev.Duration)
		case engine.EventComplete:
			a.logger.Info("Build complete.")
		case engine.EventError:
			cycleErr := &engine.CycleError{Detail: ev.Detail}
			a.logger.Error("Still watching.", "error", cycleErr.Error())
		case engine.EventFatal:
			return &engine.FatalError{Detail: ev.Detail}
		case engine.EventEnd:
			a.logger.Info("Watch session ended.")
		}
	}
	return nil
}
