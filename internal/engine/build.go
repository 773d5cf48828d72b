package engine

import (
	"context"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vk/packlane/internal/ctxlog"
	"github.com/vk/packlane/internal/pipeline"
	"github.com/vk/packlane/internal/render"
)

// Build runs the pipeline to completion once. On success all declared
// outputs, bundle and webapp artifacts alike, are on disk; on failure the run
// aborts with a StageError and promises nothing about partial output.
func Build(ctx context.Context, desc pipeline.Description) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Batch build starting.", "entry", desc.Entry, "output", desc.Output.Path)

	result := api.Build(buildOptions(desc))
	if len(result.Errors) > 0 {
		return &StageError{Detail: formatMessages(result.Errors)}
	}
	logger.Debug("Bundle written.", "path", desc.Output.Path)

	if err := runPostStages(ctx, desc); err != nil {
		return &StageError{Detail: err.Error()}
	}
	return nil
}

// runPostStages executes the stages that operate on already-bundled code: at
// the moment only HTML generation. Live reload is watch-only and handled by
// the session.
func runPostStages(ctx context.Context, desc pipeline.Description) error {
	st, ok := desc.Find(pipeline.StageHTML).(pipeline.HTMLStage)
	if !ok {
		return nil
	}
	return render.ToFile(ctx, st.TemplatePath, st.OutputPath, htmlContext(desc))
}

// htmlContext builds the flat template context for the HTML stage.
func htmlContext(desc pipeline.Description) map[string]string {
	data := map[string]string{
		"Bundle":     filepath.Base(desc.Output.Path),
		"GlobalName": desc.Output.GlobalName,
	}
	if st, ok := desc.Find(pipeline.StageEnvSubst).(pipeline.EnvSubstStage); ok {
		data["Mode"] = st.Mode
		for name, value := range st.Values {
			data[name] = value
		}
	}
	return data
}
