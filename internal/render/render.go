// Package render is the templating engine shared by the webapp HTML stage
// and the project scaffolder: text/template files rendered with a flat
// key/value context. Keys referenced by a template but absent from the
// context render as empty strings.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vk/packlane/internal/ctxlog"
)

// File parses the template at templatePath and executes it with the given
// context, returning the rendered text.
func File(ctx context.Context, templatePath string, data map[string]string) (string, error) {
	tpl, err := template.New(filepath.Base(templatePath)).
		Option("missingkey=zero").
		ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templatePath, err)
	}
	return buf.String(), nil
}

// ToFile renders the template and writes the result to outPath, creating
// parent directories as needed.
func ToFile(ctx context.Context, templatePath, outPath string, data map[string]string) error {
	logger := ctxlog.FromContext(ctx)

	rendered, err := File(ctx, templatePath, data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Debug("Template rendered.", "template", templatePath, "output", outPath)
	return nil
}
