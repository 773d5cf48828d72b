package engine

import (
	"strconv"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vk/packlane/internal/pipeline"
)

// buildOptions translates a pipeline description into esbuild build options.
// The html and live_reload stages have no bundler equivalent; they are driven
// by the executor around the bundle step.
func buildOptions(desc pipeline.Description) api.BuildOptions {
	opts := api.BuildOptions{
		EntryPoints: []string{desc.Entry},
		Outfile:     desc.Output.Path,
		Bundle:      true,
		Write:       true,
		Platform:    api.PlatformBrowser,
		Format:      api.FormatIIFE,
		GlobalName:  desc.Output.GlobalName,
		LogLevel:    api.LogLevelSilent,
		Define:      map[string]string{},
	}

	for _, stage := range desc.Stages {
		switch st := stage.(type) {
		case pipeline.ResolveStage:
			opts.MainFields = st.MainFields
			opts.ResolveExtensions = st.Extensions
		case pipeline.ShimStage:
			for from, to := range st.Globals {
				opts.Define[from] = to
			}
		case pipeline.TranspileStage:
			opts.Target = targetFor(st.Target)
		case pipeline.MinifyStage:
			opts.MinifyWhitespace = st.Whitespace
			opts.MinifyIdentifiers = st.Identifiers
			opts.MinifySyntax = st.Syntax
		case pipeline.EnvSubstStage:
			for name, value := range st.Values {
				opts.Define["process.env."+name] = strconv.Quote(value)
			}
			opts.Define["process.env.NODE_ENV"] = strconv.Quote(st.Mode)
		case pipeline.HTMLStage, pipeline.LiveReloadStage:
			// post-bundle stages, handled by the executor
		}
	}

	if desc.Output.InlineSourceMap {
		opts.Sourcemap = api.SourceMapInline
	}
	if desc.Output.Banner != "" {
		opts.Banner = map[string]string{"js": desc.Output.Banner}
	}
	return opts
}

// targetFor maps a transpilation target name to the esbuild constant.
// Unknown names fall back to es2017.
func targetFor(name string) api.Target {
	switch name {
	case "es2015":
		return api.ES2015
	case "es2016":
		return api.ES2016
	case "es2017":
		return api.ES2017
	case "es2018":
		return api.ES2018
	case "es2019":
		return api.ES2019
	case "es2020":
		return api.ES2020
	case "esnext":
		return api.ESNext
	}
	return api.ES2017
}

// formatMessages renders esbuild diagnostics into one printable block.
func formatMessages(msgs []api.Message) string {
	lines := api.FormatMessages(msgs, api.FormatMessagesOptions{
		Kind:  api.ErrorMessage,
		Color: false,
	})
	return strings.TrimSpace(strings.Join(lines, ""))
}
