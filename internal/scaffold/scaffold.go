// Package scaffold instantiates a project template directory into a new
// project: template files with whitelisted extensions are rendered through
// the templating engine, everything else is copied verbatim, and the target
// project's manifest is patched afterwards.
package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/packlane/internal/ctxlog"
	"github.com/vk/packlane/internal/fsutil"
	"github.com/vk/packlane/internal/render"
)

// renderedExtensions is the whitelist of extensions that go through the
// template engine. Every other file is copied byte for byte.
var renderedExtensions = map[string]bool{
	".json": true,
	".html": true,
	".md":   true,
	".js":   true,
	".ts":   true,
}

// Options configures one scaffolding run.
type Options struct {
	// TemplateDir is the template tree to instantiate.
	TemplateDir string
	// TargetDir is the directory the new project is written into.
	TargetDir string
	// Context is the flat key/value context for rendered files.
	Context map[string]string
	// MaxDepth bounds the template tree walk; 0 means the fsutil default.
	MaxDepth int
}

// Generate walks the template tree and materializes it under the target
// directory. It returns the number of files written.
func Generate(ctx context.Context, opts Options) (int, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(opts.TemplateDir); err != nil {
		return 0, fmt.Errorf("template directory %s is not readable: %w", opts.TemplateDir, err)
	}
	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create target directory %s: %w", opts.TargetDir, err)
	}

	written, err := fsutil.Crawl(opts.TemplateDir, opts.MaxDepth, func(isDir bool, absPath, relPath string) error {
		dest := filepath.Join(opts.TargetDir, relPath)
		if isDir {
			return os.MkdirAll(dest, 0o755)
		}

		if renderedExtensions[filepath.Ext(relPath)] {
			logger.Debug("Rendering template file.", "file", relPath)
			return render.ToFile(ctx, absPath, dest, opts.Context)
		}

		logger.Debug("Copying file verbatim.", "file", relPath)
		return copyFile(absPath, dest)
	})
	if err != nil {
		return written, err
	}

	logger.Info("Project scaffolded.", "target", opts.TargetDir, "files", written)
	return written, nil
}

// copyFile copies src to dest byte for byte, preserving the source mode.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
