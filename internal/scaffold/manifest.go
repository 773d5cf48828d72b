package scaffold

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"

	"github.com/vk/packlane/internal/ctxlog"
)

// ManifestFile is the project manifest patched after scaffolding.
const ManifestFile = "package.json"

// PatchManifest rewrites fields of the target project's manifest in place.
// fields maps gjson-style paths ("name", "author", "config.umdName") to their
// new string values. The manifest must already exist; scaffolding is expected
// to have copied it from the template.
func PatchManifest(ctx context.Context, path string, fields map[string]string) error {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	patched := jsonc.ToJSON(data)
	if !gjson.ValidBytes(patched) {
		return fmt.Errorf("manifest %s is not valid JSON", path)
	}

	for key, value := range fields {
		patched, err = sjson.SetBytes(patched, key, value)
		if err != nil {
			return fmt.Errorf("failed to set manifest field %q: %w", key, err)
		}
	}

	if err := os.WriteFile(path, patched, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	logger.Debug("Manifest patched.", "path", path, "fields", len(fields))
	return nil
}
