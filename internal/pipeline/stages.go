package pipeline

// StageName is a strongly-typed identifier for a pipeline stage. All
// canonical stages are declared as constants here.
type StageName string

// Canonical stage names, in the only relative order they may appear.
const (
	StageResolve    StageName = "resolve"
	StageShim       StageName = "shim"
	StageTranspile  StageName = "transpile"
	StageMinify     StageName = "minify"
	StageEnvSubst   StageName = "env_subst"
	StageHTML       StageName = "html"
	StageLiveReload StageName = "live_reload"
)

// Stage is one pipeline stage descriptor. The set of implementations is
// closed: every stage kind is one of the structs below.
type Stage interface {
	Name() StageName
}

// ResolveStage configures module resolution. It always runs first so that
// every later stage sees a fully resolved module graph.
type ResolveStage struct {
	// MainFields is the package manifest field priority for resolution.
	MainFields []string
	// Extensions lists the implicit file extensions tried during resolution.
	Extensions []string
}

func (ResolveStage) Name() StageName { return StageResolve }

// ShimStage configures interop shims applied before transpilation, so that
// already-transpiled output is never re-shimmed.
type ShimStage struct {
	// Globals maps bare global identifiers to their browser equivalents.
	Globals map[string]string
}

func (ShimStage) Name() StageName { return StageShim }

// TranspileStage configures the language-lowering target.
type TranspileStage struct {
	Target string
}

func (TranspileStage) Name() StageName { return StageTranspile }

// MinifyStage enables minification of the final transpiled code. Never
// present in watch mode.
type MinifyStage struct {
	Whitespace  bool
	Identifiers bool
	Syntax      bool
}

func (MinifyStage) Name() StageName { return StageMinify }

// EnvSubstStage replaces references to prefixed environment variables with
// their literal values, captured once at assembly time.
type EnvSubstStage struct {
	// Values maps variable names to the literal strings substituted for them.
	Values map[string]string
	// Mode is the runtime mode marker: "development" in watch mode,
	// "production" otherwise.
	Mode string
}

func (EnvSubstStage) Name() StageName { return StageEnvSubst }

// HTMLStage renders the webapp HTML template next to the bundle.
type HTMLStage struct {
	TemplatePath string
	OutputPath   string
}

func (HTMLStage) Name() StageName { return StageHTML }

// LiveReloadStage serves the output folder and pushes reload notifications to
// connected browsers. Only meaningful in watch mode.
type LiveReloadStage struct {
	// Root is the served output folder.
	Root string
	// StaticDir is the conventional static asset folder, mounted at /static.
	StaticDir string
	// Addr is the listen address of the reload server.
	Addr string
}

func (LiveReloadStage) Name() StageName { return StageLiveReload }

// Format identifies the module format of the produced bundle.
type Format string

// FormatUMD exposes the bundle as a browser global under OutputSpec.GlobalName.
const FormatUMD Format = "umd"

// OutputSpec is the single output descriptor of a pipeline.
type OutputSpec struct {
	// Path is the absolute destination of the bundle.
	Path string
	// GlobalName is the name the module is exposed under.
	GlobalName string
	// Format is the module format.
	Format Format
	// InlineSourceMap embeds the source map into the bundle. Watch mode only.
	InlineSourceMap bool
	// Banner is prepended verbatim to the bundle, if non-empty.
	Banner string
}

// Description is the complete declarative pipeline: an entry point, the
// ordered stages, and the output descriptor. It is built once per run and
// never mutated afterwards.
type Description struct {
	// Entry is the absolute path of the entry module.
	Entry string
	// Stages is the ordered stage list.
	Stages []Stage
	// Output is the single output descriptor.
	Output OutputSpec
}

// Has reports whether the description contains a stage with the given name.
func (d Description) Has(name StageName) bool {
	for _, s := range d.Stages {
		if s.Name() == name {
			return true
		}
	}
	return false
}

// Find returns the first stage with the given name, or nil.
func (d Description) Find(name StageName) Stage {
	for _, s := range d.Stages {
		if s.Name() == name {
			return s
		}
	}
	return nil
}
