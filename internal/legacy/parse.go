// Package legacy reads existing lint and format configuration files and
// extracts the customizations worth carrying into generated configs.
package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned when a config file's top-level value is not an object.
var ErrNotObject = errors.New("config is not an object")

// Format is the syntax a config file is written in.
type Format string

// Formats
const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatScript Format = "script"
	// FormatAuto tries JSON first, then YAML.
	FormatAuto Format = "auto"
)

// FormatOf picks the parser for a config path by its file name.
func FormatOf(path string) Format {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	case ".js", ".cjs", ".mjs":
		return FormatScript
	}
	return FormatAuto
}

// ParseFile reads and parses a config file into a JSON-like object.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	obj, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return obj, nil
}

// Parse parses config content in the given format.
func Parse(data []byte, format Format) (map[string]any, error) {
	var (
		v   any
		err error
	)

	switch format {
	case FormatJSON:
		v, err = parseJSON(data)
	case FormatYAML:
		v, err = parseYAML(data)
	case FormatScript:
		v, err = ParseLiteral(string(data))
	case FormatAuto:
		v, err = parseJSON(data)
		if err != nil {
			var yerr error
			v, yerr = parseYAML(data)
			if yerr != nil {
				return nil, fmt.Errorf("neither JSON (%v) nor YAML (%v)", err, yerr)
			}
			err = nil
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

func parseJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalize(v)
}

// normalize converts decoded YAML into the value shapes JSON decoding
// produces: string-keyed maps, []any and float64 numbers.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case float64, string, bool, nil:
		return val, nil
	}
	return nil, fmt.Errorf("unsupported YAML value of type %T", v)
}
