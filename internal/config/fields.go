package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Field declares one configuration field: where it lives in the settings
// file, its semantic type, and the flag and environment variable that may
// override it. The whole schema is this static table; the resolver walks it
// generically instead of reflecting over structs.
type Field struct {
	// Path is the field's location in the settings file, e.g. {"output", "minify"}.
	Path []string
	// Type is the field's semantic type: cty.Bool or cty.String.
	Type cty.Type
	// Flag is the CLI flag name overriding this field.
	Flag string
	// EnvVar is the environment variable name overriding this field.
	EnvVar string
	// Usage is the flag help text.
	Usage string
	// Default is the built-in default value.
	Default cty.Value

	assign func(c *ResolvedConfig, v cty.Value)
}

// Name returns the dotted settings-file name of the field, used in
// diagnostics.
func (f Field) Name() string {
	name := f.Path[0]
	for _, p := range f.Path[1:] {
		name += "." + p
	}
	return name
}

// fields is the declarative schema of the entire configuration surface.
var fields = []Field{
	{
		Path:    []string{"watch"},
		Type:    cty.Bool,
		Flag:    "watch",
		Usage:   "Rebuild continuously on file changes.",
		EnvVar:  "PACKLANE_WATCH",
		Default: cty.False,
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Watch = v.True() },
	},
	{
		Path:    []string{"debug"},
		Type:    cty.Bool,
		Flag:    "debug",
		Usage:   "Enable debug diagnostics.",
		EnvVar:  "PACKLANE_DEBUG",
		Default: cty.False,
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Debug = v.True() },
	},
	{
		Path:    []string{"input", "folder"},
		Type:    cty.String,
		Flag:    "input-folder",
		Usage:   "Source directory containing the entry module.",
		EnvVar:  "PACKLANE_INPUT_FOLDER",
		Default: cty.StringVal("src"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Input.Folder = v.AsString() },
	},
	{
		Path:    []string{"input", "envPrefix"},
		Type:    cty.String,
		Flag:    "env-prefix",
		Usage:   "Prefix selecting environment variables substituted into webapp bundles.",
		EnvVar:  "PACKLANE_ENV_PREFIX",
		Default: cty.StringVal("APP_"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Input.EnvPrefix = v.AsString() },
	},
	{
		Path:    []string{"input", "htmlTemplate"},
		Type:    cty.String,
		Flag:    "html-template",
		Usage:   "HTML template path, relative to the input folder.",
		EnvVar:  "PACKLANE_HTML_TEMPLATE",
		Default: cty.StringVal("index.html"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Input.HTMLTemplate = v.AsString() },
	},
	{
		Path:    []string{"output", "bundle"},
		Type:    cty.String,
		Flag:    "bundle",
		Usage:   "Bundle base name, without the .js suffix.",
		EnvVar:  "PACKLANE_BUNDLE",
		Default: cty.StringVal("bundle"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.Bundle = v.AsString() },
	},
	{
		Path:    []string{"output", "folder"},
		Type:    cty.String,
		Flag:    "output-folder",
		Usage:   "Output directory for built artifacts.",
		EnvVar:  "PACKLANE_OUTPUT_FOLDER",
		Default: cty.StringVal("dist"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.Folder = v.AsString() },
	},
	{
		Path:    []string{"output", "umdName"},
		Type:    cty.String,
		Flag:    "umd-name",
		Usage:   "Global name the bundle is exposed under.",
		EnvVar:  "PACKLANE_UMD_NAME",
		Default: cty.StringVal("app"),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.UMDName = v.AsString() },
	},
	{
		Path:    []string{"output", "minify"},
		Type:    cty.Bool,
		Flag:    "minify",
		Usage:   "Minify the batch-mode bundle.",
		EnvVar:  "PACKLANE_MINIFY",
		Default: cty.False,
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.Minify = v.True() },
	},
	{
		Path:    []string{"output", "banner"},
		Type:    cty.String,
		Flag:    "banner",
		Usage:   "Text prepended verbatim to the bundle.",
		EnvVar:  "PACKLANE_BANNER",
		Default: cty.StringVal(""),
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.Banner = v.AsString() },
	},
	{
		Path:    []string{"output", "isWebapp"},
		Type:    cty.Bool,
		Flag:    "webapp",
		Usage:   "Treat the project as a webapp (HTML generation, env substitution, live reload).",
		EnvVar:  "PACKLANE_WEBAPP",
		Default: cty.False,
		assign:  func(c *ResolvedConfig, v cty.Value) { c.Output.IsWebapp = v.True() },
	},
}

// Fields returns the configuration schema. The slice is shared; callers must
// not modify it.
func Fields() []Field {
	return fields
}
