package scaffold

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vk/packlane/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

// writeTemplateTree creates a template directory with the given files.
func writeTemplateTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestGenerate_RendersWhitelistedAndCopiesRest(t *testing.T) {
	t.Parallel()

	templateDir := writeTemplateTree(t, map[string]string{
		"package.json": `{"name": "{{.Name}}", "version": "0.1.0"}`,
		"README.md":    `# {{.Name}} by {{.Author}}`,
		"src/index.js": `console.log("{{.UMDName}}");`,
		"logo.svg":     `<svg>{{.Name}}</svg>`,
	})
	targetDir := filepath.Join(t.TempDir(), "newproj")

	written, err := Generate(testContext(), Options{
		TemplateDir: templateDir,
		TargetDir:   targetDir,
		Context:     map[string]string{"Name": "widget", "Author": "dev", "UMDName": "widget"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, written)

	manifest, err := os.ReadFile(filepath.Join(targetDir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"name": "widget"`)

	readme, err := os.ReadFile(filepath.Join(targetDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# widget by dev", string(readme))

	entry, err := os.ReadFile(filepath.Join(targetDir, "src", "index.js"))
	require.NoError(t, err)
	assert.Contains(t, string(entry), `console.log("widget");`)

	// .svg is not whitelisted: template markers must survive verbatim.
	logo, err := os.ReadFile(filepath.Join(targetDir, "logo.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg>{{.Name}}</svg>`, string(logo))
}

func TestGenerate_MissingTemplateDir(t *testing.T) {
	t.Parallel()

	_, err := Generate(testContext(), Options{
		TemplateDir: filepath.Join(t.TempDir(), "nope"),
		TargetDir:   t.TempDir(),
	})
	assert.ErrorContains(t, err, "not readable")
}

func TestPatchManifest_SetsFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)
	require.NoError(t, os.WriteFile(path, []byte(`{
		// scaffolded manifest
		"name": "placeholder",
		"version": "0.1.0"
	}`), 0o644))

	err := PatchManifest(testContext(), path, map[string]string{
		"name":   "widget",
		"author": "dev",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", gjson.GetBytes(data, "name").String())
	assert.Equal(t, "dev", gjson.GetBytes(data, "author").String())
	assert.Equal(t, "0.1.0", gjson.GetBytes(data, "version").String())
}

func TestPatchManifest_MissingManifest(t *testing.T) {
	t.Parallel()

	err := PatchManifest(testContext(), filepath.Join(t.TempDir(), ManifestFile), map[string]string{"name": "x"})
	assert.ErrorContains(t, err, "failed to read manifest")
}

func TestPatchManifest_InvalidJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ManifestFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"name": `), 0o644))

	err := PatchManifest(testContext(), path, map[string]string{"name": "x"})
	assert.ErrorContains(t, err, "not valid JSON")
}
