package config

import (
	"path/filepath"
	"strings"
)

// Well-known file names, looked up in the working directory.
const (
	// SettingsFile is the required project settings file.
	SettingsFile = "packlane.json"
	// EnvOverrideFile is the optional local environment override file.
	EnvOverrideFile = ".env"
)

// Input groups the settings that describe the project sources.
type Input struct {
	// Folder is the source directory containing the entry module.
	Folder string
	// EnvPrefix selects which environment variables are substituted into
	// webapp bundles.
	EnvPrefix string
	// HTMLTemplate is the HTML template path, relative to Folder.
	HTMLTemplate string
}

// Output groups the settings that describe the produced artifacts.
type Output struct {
	// Bundle is the bundle base name, without the .js suffix.
	Bundle string
	// Folder is the output directory.
	Folder string
	// UMDName is the global name the bundle is exposed under.
	UMDName string
	// Minify enables the minification stage for batch builds.
	Minify bool
	// Banner is prepended verbatim to the bundle.
	Banner string
	// IsWebapp enables HTML generation, environment substitution and, in
	// watch mode, the live-reload server.
	IsWebapp bool
}

// ResolvedConfig is the immutable configuration snapshot produced by Resolve.
// It is created once at startup and never mutated afterwards; everything
// downstream (assembler, executor) receives it read-only.
type ResolvedConfig struct {
	Watch  bool
	Debug  bool
	Input  Input
	Output Output
}

// ComputedPaths holds the absolute paths derived from a ResolvedConfig. They
// are computed exactly once, right after resolution.
type ComputedPaths struct {
	// InputDir is the absolute source directory.
	InputDir string
	// OutputDir is the absolute output directory.
	OutputDir string
	// Bundle is the absolute path of the unminified bundle.
	Bundle string
	// MinBundle is the absolute path of the minified bundle.
	MinBundle string
	// HTMLTemplate is the absolute path of the HTML template source.
	HTMLTemplate string
}

// ComputePaths derives the absolute artifact paths from cfg, resolving
// relative settings against workDir.
func ComputePaths(cfg *ResolvedConfig, workDir string) ComputedPaths {
	outDir := cfg.Output.Folder
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	inDir := cfg.Input.Folder
	if !filepath.IsAbs(inDir) {
		inDir = filepath.Join(workDir, inDir)
	}

	base := strings.TrimSuffix(cfg.Output.Bundle, ".js")
	return ComputedPaths{
		InputDir:     inDir,
		OutputDir:    outDir,
		Bundle:       filepath.Join(outDir, base+".js"),
		MinBundle:    filepath.Join(outDir, base+".min.js"),
		HTMLTemplate: filepath.Join(inDir, cfg.Input.HTMLTemplate),
	}
}
