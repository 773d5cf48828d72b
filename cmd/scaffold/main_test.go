package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vk/packlane/internal/cli"
)

func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"name": "{{.Name}}", "version": "0.1.0"}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "index.js"),
		[]byte(`console.log("{{.UMDName}}");`), 0o644))
	return dir
}

func TestRun_ScaffoldsProject(t *testing.T) {
	t.Parallel()

	templateDir := writeTemplate(t)
	targetDir := filepath.Join(t.TempDir(), "myapp")
	out := &bytes.Buffer{}

	err := run(out, []string{
		"-template", templateDir,
		"-author", "dev",
		"-umd-name", "MyApp",
		"-log-level", "error",
		targetDir,
	})
	require.NoError(t, err)

	manifest, err := os.ReadFile(filepath.Join(targetDir, "package.json"))
	require.NoError(t, err)
	// -name was not given: the target directory name becomes the project name.
	assert.Equal(t, "myapp", gjson.GetBytes(manifest, "name").String())
	assert.Equal(t, "dev", gjson.GetBytes(manifest, "author").String())

	entry, err := os.ReadFile(filepath.Join(targetDir, "src", "index.js"))
	require.NoError(t, err)
	assert.Contains(t, string(entry), "MyApp")
}

func TestRun_RequiresTemplateFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{t.TempDir()})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
}

func TestRun_RequiresTargetDir(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-template", t.TempDir()})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(out, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
}
