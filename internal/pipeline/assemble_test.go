package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/packlane/internal/config"
)

func testConfig() *config.ResolvedConfig {
	return &config.ResolvedConfig{
		Input: config.Input{
			Folder:       "src",
			EnvPrefix:    "APP_",
			HTMLTemplate: "index.html",
		},
		Output: config.Output{
			Bundle:  "bundle",
			Folder:  "dist",
			UMDName: "app",
		},
	}
}

func testPaths(cfg *config.ResolvedConfig) config.ComputedPaths {
	return config.ComputePaths(cfg, "/work")
}

func stageNames(desc Description) []StageName {
	names := make([]StageName, 0, len(desc.Stages))
	for _, s := range desc.Stages {
		names = append(names, s.Name())
	}
	return names
}

func TestAssemble_BaseStagesAlwaysPresentInOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	desc := Assemble(cfg, testPaths(cfg), nil)

	require.GreaterOrEqual(t, len(desc.Stages), 3)
	assert.Equal(t, []StageName{StageResolve, StageShim, StageTranspile}, stageNames(desc)[:3])
	assert.Equal(t, filepath.Join("/work", "src", "index.js"), desc.Entry)
}

func TestAssemble_WatchNeverMinifies(t *testing.T) {
	t.Parallel()

	// The minify flag must be ignored entirely in watch mode.
	for _, minify := range []bool{true, false} {
		cfg := testConfig()
		cfg.Watch = true
		cfg.Output.Minify = minify
		paths := testPaths(cfg)

		desc := Assemble(cfg, paths, nil)

		assert.False(t, desc.Has(StageMinify), "minify=%v", minify)
		assert.Equal(t, paths.Bundle, desc.Output.Path, "minify=%v", minify)
		assert.True(t, desc.Output.InlineSourceMap, "minify=%v", minify)
	}
}

func TestAssemble_BatchMinify(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Output.Minify = true
	paths := testPaths(cfg)

	desc := Assemble(cfg, paths, nil)

	names := stageNames(desc)
	require.Equal(t, []StageName{StageResolve, StageShim, StageTranspile, StageMinify}, names)
	assert.Equal(t, paths.MinBundle, desc.Output.Path)
	assert.False(t, desc.Output.InlineSourceMap)
}

func TestAssemble_BatchWithoutMinify(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	paths := testPaths(cfg)

	desc := Assemble(cfg, paths, nil)

	assert.False(t, desc.Has(StageMinify))
	assert.Equal(t, paths.Bundle, desc.Output.Path)
}

func TestAssemble_LibraryTargetHasNoWebappStages(t *testing.T) {
	t.Parallel()

	for _, watch := range []bool{true, false} {
		cfg := testConfig()
		cfg.Watch = watch

		desc := Assemble(cfg, testPaths(cfg), []string{"APP_URL=x"})

		assert.False(t, desc.Has(StageEnvSubst), "watch=%v", watch)
		assert.False(t, desc.Has(StageHTML), "watch=%v", watch)
		assert.False(t, desc.Has(StageLiveReload), "watch=%v", watch)
	}
}

func TestAssemble_WebappBatch(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Output.IsWebapp = true
	paths := testPaths(cfg)

	desc := Assemble(cfg, paths, nil)

	names := stageNames(desc)
	assert.Equal(t, []StageName{StageResolve, StageShim, StageTranspile, StageEnvSubst, StageHTML}, names)
	assert.False(t, desc.Has(StageLiveReload))

	st, ok := desc.Find(StageEnvSubst).(EnvSubstStage)
	require.True(t, ok)
	assert.Equal(t, ModeProduction, st.Mode)

	html, ok := desc.Find(StageHTML).(HTMLStage)
	require.True(t, ok)
	assert.Equal(t, paths.HTMLTemplate, html.TemplatePath)
	assert.Equal(t, filepath.Join(paths.OutputDir, "index.html"), html.OutputPath)
}

func TestAssemble_WebappWatchIncludesLiveReloadLast(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Watch = true
	cfg.Output.IsWebapp = true
	paths := testPaths(cfg)

	desc := Assemble(cfg, paths, nil)

	names := stageNames(desc)
	require.Equal(t, []StageName{
		StageResolve, StageShim, StageTranspile,
		StageEnvSubst, StageHTML, StageLiveReload,
	}, names)

	st, ok := desc.Find(StageEnvSubst).(EnvSubstStage)
	require.True(t, ok)
	assert.Equal(t, ModeDevelopment, st.Mode)

	reload, ok := desc.Find(StageLiveReload).(LiveReloadStage)
	require.True(t, ok)
	assert.Equal(t, paths.OutputDir, reload.Root)
	assert.Equal(t, filepath.Join(paths.OutputDir, "static"), reload.StaticDir)
	assert.Equal(t, DefaultReloadAddr, reload.Addr)
}

func TestAssemble_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Watch = true
	cfg.Output.IsWebapp = true
	environ := []string{"APP_URL=https://example.com", "HOME=/home/u"}

	first := Assemble(cfg, testPaths(cfg), environ)
	second := Assemble(cfg, testPaths(cfg), environ)

	assert.Equal(t, first, second)
}

func TestAssemble_EnvCaptureFiltersByPrefix(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Output.IsWebapp = true
	environ := []string{
		"APP_URL=https://example.com",
		"APP_TOKEN=secret",
		"APPENDIX=not-this-one=really",
		"HOME=/home/u",
		"MALFORMED",
	}
	cfg.Input.EnvPrefix = "APP_"

	desc := Assemble(cfg, testPaths(cfg), environ)

	st, ok := desc.Find(StageEnvSubst).(EnvSubstStage)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"APP_URL":   "https://example.com",
		"APP_TOKEN": "secret",
	}, st.Values)
}

func TestAssemble_EmptyPrefixCapturesNothing(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Output.IsWebapp = true
	cfg.Input.EnvPrefix = ""

	desc := Assemble(cfg, testPaths(cfg), []string{"APP_URL=x"})

	st, ok := desc.Find(StageEnvSubst).(EnvSubstStage)
	require.True(t, ok)
	assert.Empty(t, st.Values)
}

func TestAssemble_BannerAndGlobalName(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Output.UMDName = "myLib"
	cfg.Output.Banner = "/* myLib v1 */"

	desc := Assemble(cfg, testPaths(cfg), nil)

	assert.Equal(t, "myLib", desc.Output.GlobalName)
	assert.Equal(t, "/* myLib v1 */", desc.Output.Banner)
	assert.Equal(t, FormatUMD, desc.Output.Format)
}
