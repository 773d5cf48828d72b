package engine

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/packlane/internal/ctxlog"
)

// PrepareOutput clears and recreates the output folder before a batch build.
// Only a folder configured as a relative path is cleaned; an absolute path
// may point at a location the user does not intend this tool to own, so it is
// left untouched. Deletion failure is a fatal CleanupError.
func PrepareOutput(ctx context.Context, configuredFolder, workDir string) error {
	logger := ctxlog.FromContext(ctx)

	if filepath.IsAbs(configuredFolder) {
		logger.Debug("Output folder is absolute, skipping cleanup.", "folder", configuredFolder)
		return nil
	}

	abs := filepath.Join(workDir, configuredFolder)
	if err := os.RemoveAll(abs); err != nil {
		return &CleanupError{Path: abs, Err: err}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return &CleanupError{Path: abs, Err: err}
	}

	logger.Debug("Output folder cleaned.", "folder", abs)
	return nil
}
