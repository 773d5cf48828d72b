package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/packlane/internal/ctxlog"
)

// Overrides carries the CLI flag values the user explicitly set, keyed by
// flag name. Flags that were left at their flag-package default must not
// appear here, so that they do not shadow settings-file values.
type Overrides map[string]string

// Resolve builds the immutable configuration snapshot from all layered
// sources and derives the absolute artifact paths. Precedence, lowest first:
// built-in defaults, settings file, environment variables, CLI flags. The
// optional .env override file is loaded into the process environment first
// and never overwrites variables that are already set.
func Resolve(ctx context.Context, workDir string, overrides Overrides) (*ResolvedConfig, ComputedPaths, error) {
	logger := ctxlog.FromContext(ctx)

	if err := loadEnvOverride(logger, filepath.Join(workDir, EnvOverrideFile)); err != nil {
		return nil, ComputedPaths{}, err
	}

	settings, err := loadSettings(filepath.Join(workDir, SettingsFile))
	if err != nil {
		return nil, ComputedPaths{}, err
	}
	logger.Debug("Settings file parsed.", "keys", len(settings))

	cfg := &ResolvedConfig{}
	for _, f := range Fields() {
		val, err := resolveField(settings, f, overrides)
		if err != nil {
			return nil, ComputedPaths{}, err
		}
		f.assign(cfg, val)
	}

	paths := ComputePaths(cfg, workDir)
	logger.Debug("Configuration resolved.",
		"watch", cfg.Watch,
		"webapp", cfg.Output.IsWebapp,
		"minify", cfg.Output.Minify,
		"bundle", paths.Bundle,
	)
	return cfg, paths, nil
}

// resolveField applies the layered sources for a single field, coercing each
// layer's raw value to the field's declared type.
func resolveField(settings settingsValues, f Field, overrides Overrides) (cty.Value, error) {
	val := f.Default

	if raw, ok, err := settings.lookup(f); err != nil {
		return cty.NilVal, err
	} else if ok {
		conv, err := coerce(raw, f)
		if err != nil {
			return cty.NilVal, err
		}
		val = conv
	}

	if raw, ok := os.LookupEnv(f.EnvVar); ok {
		conv, err := coerce(cty.StringVal(raw), f)
		if err != nil {
			return cty.NilVal, err
		}
		val = conv
	}

	if raw, ok := overrides[f.Flag]; ok {
		conv, err := coerce(cty.StringVal(raw), f)
		if err != nil {
			return cty.NilVal, err
		}
		val = conv
	}

	return val, nil
}

// coerce converts a raw value to the field's type. String-to-bool conversion
// accepts "true" and "false"; anything else fails validation.
func coerce(raw cty.Value, f Field) (cty.Value, error) {
	conv, err := convert.Convert(raw, f.Type)
	if err != nil {
		return cty.NilVal, &ValidationError{Field: f.Name(), Err: err}
	}
	if conv.IsNull() {
		return cty.NilVal, &ValidationError{Field: f.Name(), Err: fmt.Errorf("value must not be null")}
	}
	return conv, nil
}

// loadEnvOverride loads KEY=VALUE pairs from the local override file into the
// process environment. An absent file is fine; a present but unreadable or
// malformed one is fatal.
func loadEnvOverride(logger *slog.Logger, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No environment override file, skipping.", "path", path)
			return nil
		}
		return &LoadError{Path: path, Err: err}
	}
	if err := godotenv.Load(path); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	logger.Debug("Environment override file loaded.", "path", path)
	return nil
}
