package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/packlane/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestPrepareOutput_CleansRelativeFolder(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	outDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	stale := filepath.Join(outDir, "stale.js")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	err := PrepareOutput(testContext(), "dist", workDir)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
	assert.DirExists(t, outDir)
}

func TestPrepareOutput_NeverTouchesAbsoluteFolder(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	keep := filepath.Join(outDir, "keep.js")
	require.NoError(t, os.WriteFile(keep, []byte("precious"), 0o644))

	err := PrepareOutput(testContext(), outDir, t.TempDir())
	require.NoError(t, err)

	assert.FileExists(t, keep)
}

func TestPrepareOutput_CreatesMissingFolder(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	err := PrepareOutput(testContext(), "dist", workDir)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(workDir, "dist"))
}
