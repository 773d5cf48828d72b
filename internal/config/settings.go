package config

import (
	"fmt"
	"os"

	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/tidwall/jsonc"
	"github.com/zclconf/go-cty/cty"
)

// settingsValues is the parsed settings file: one cty value per top-level
// key. Nested sections (input, output) arrive as object values.
type settingsValues map[string]cty.Value

// loadSettings reads and parses the settings file. The file may carry // and
// /* */ comments; they are stripped before parsing. A missing file is a
// MissingError, a malformed one a ParseError.
func loadSettings(path string) (settingsValues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingError{Path: path}
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	file, diags := hcljson.Parse(jsonc.ToJSON(data), path)
	if diags.HasErrors() {
		return nil, &ParseError{Path: path, Err: diags}
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, &ParseError{Path: path, Err: diags}
	}

	values := make(settingsValues, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, &ParseError{Path: path, Err: diags}
		}
		values[name] = val
	}
	return values, nil
}

// lookup finds the settings-file value for a field, navigating one level of
// nesting. The second return is false when the file simply does not mention
// the field.
func (s settingsValues) lookup(f Field) (cty.Value, bool, error) {
	val, ok := s[f.Path[0]]
	if !ok {
		return cty.NilVal, false, nil
	}
	if len(f.Path) == 1 {
		return val, true, nil
	}

	ty := val.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(f.Path[1]) {
			return cty.NilVal, false, nil
		}
		return val.GetAttr(f.Path[1]), true, nil
	case ty.IsMapType():
		key := cty.StringVal(f.Path[1])
		if val.HasIndex(key) != cty.True {
			return cty.NilVal, false, nil
		}
		return val.Index(key), true, nil
	default:
		return cty.NilVal, false, &ValidationError{
			Field: f.Path[0],
			Err:   fmt.Errorf("expected an object, got %s", ty.FriendlyName()),
		}
	}
}
