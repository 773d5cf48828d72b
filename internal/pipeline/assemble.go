package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/vk/packlane/internal/config"
)

// Entry module file name, looked up inside the input folder.
const entryFile = "index.js"

// Language target for the transpilation stage.
const transpileTarget = "es2017"

// DefaultReloadAddr is the listen address of the live-reload server.
const DefaultReloadAddr = ":35729"

// ModeDevelopment and ModeProduction are the runtime-mode marker values
// substituted into webapp bundles.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Assemble builds the pipeline description for one run. It is pure: the same
// configuration, paths and environment always yield a structurally identical
// description. environ is the process environment in os.Environ form,
// captured by the caller.
//
// The decision table, in precedence order:
//  1. Watch mode always targets the unminified bundle with an inline source
//     map and never minifies, regardless of output.minify. Batch mode
//     minifies iff output.minify, and then targets the minified path.
//  2. The base stages resolve → shim → transpile are always present, in that
//     order.
//  3. minify, when included, comes right after the base stages.
//  4. Webapp targets append env_subst then html.
//  5. Webapp targets in watch mode additionally append live_reload.
func Assemble(cfg *config.ResolvedConfig, paths config.ComputedPaths, environ []string) Description {
	desc := Description{
		Entry: filepath.Join(paths.InputDir, entryFile),
		Stages: []Stage{
			ResolveStage{
				MainFields: []string{"browser", "module", "main"},
				Extensions: []string{".js", ".mjs", ".json"},
			},
			ShimStage{
				Globals: map[string]string{"global": "window"},
			},
			TranspileStage{Target: transpileTarget},
		},
	}

	minify := cfg.Output.Minify && !cfg.Watch
	if minify {
		desc.Stages = append(desc.Stages, MinifyStage{
			Whitespace:  true,
			Identifiers: true,
			Syntax:      true,
		})
	}

	outPath := paths.Bundle
	if minify {
		outPath = paths.MinBundle
	}
	desc.Output = OutputSpec{
		Path:            outPath,
		GlobalName:      cfg.Output.UMDName,
		Format:          FormatUMD,
		InlineSourceMap: cfg.Watch,
		Banner:          cfg.Output.Banner,
	}

	if cfg.Output.IsWebapp {
		mode := ModeProduction
		if cfg.Watch {
			mode = ModeDevelopment
		}
		desc.Stages = append(desc.Stages,
			EnvSubstStage{
				Values: captureEnv(environ, cfg.Input.EnvPrefix),
				Mode:   mode,
			},
			HTMLStage{
				TemplatePath: paths.HTMLTemplate,
				OutputPath:   filepath.Join(paths.OutputDir, "index.html"),
			},
		)

		if cfg.Watch {
			desc.Stages = append(desc.Stages, LiveReloadStage{
				Root:      paths.OutputDir,
				StaticDir: filepath.Join(paths.OutputDir, "static"),
				Addr:      DefaultReloadAddr,
			})
		}
	}

	return desc
}

// captureEnv collects every environment variable whose name starts with
// prefix. Values are frozen here; later changes to the process environment do
// not affect an already-assembled pipeline.
func captureEnv(environ []string, prefix string) map[string]string {
	values := make(map[string]string)
	if prefix == "" {
		return values
	}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		values[name] = value
	}
	return values
}
