package legacy

import (
	"fmt"
)

// Override is a per-file override block of a legacy RC config.
type Override struct {
	Files         []string
	ExcludedFiles []string
	Rules         map[string]any
}

// Customization is what a legacy RC config contributes to a migrated flat
// config. Fields absent from the source stay nil.
type Customization struct {
	Rules         map[string]any
	Overrides     []Override
	Env           map[string]any
	ParserOptions map[string]any
	Settings      map[string]any
	// Extends is kept for project classification only; it is not rendered.
	Extends any
}

// Empty reports whether the customization carries nothing to render.
func (c Customization) Empty() bool {
	return len(c.Rules) == 0 && len(c.Overrides) == 0 && len(c.Env) == 0 &&
		len(c.ParserOptions) == 0 && len(c.Settings) == 0
}

// ExtractESLint copies the recognized fields of a legacy RC config.
func ExtractESLint(raw map[string]any) Customization {
	var c Customization
	if raw == nil {
		return c
	}

	c.Rules = objectField(raw, "rules")
	c.Env = objectField(raw, "env")
	c.ParserOptions = objectField(raw, "parserOptions")
	c.Settings = objectField(raw, "settings")
	if v, ok := raw["extends"]; ok && v != nil {
		c.Extends = v
	}

	if list, ok := raw["overrides"].([]any); ok {
		c.Overrides = make([]Override, 0, len(list))
		for _, item := range list {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			c.Overrides = append(c.Overrides, Override{
				Files:         stringList(obj["files"]),
				ExcludedFiles: stringList(obj["excludedFiles"]),
				Rules:         objectField(obj, "rules"),
			})
		}
	}
	return c
}

// TSLintCustomization is what a tslint.json contributes to the migrated one.
type TSLintCustomization struct {
	Rules          map[string]any
	Extends        []string
	RulesDirectory []string
	Exclude        []string
}

// ExtractTSLint copies the recognized fields of a tslint.json config.
// linterOptions.exclude is accepted as the exclude list as well.
func ExtractTSLint(raw map[string]any) TSLintCustomization {
	var c TSLintCustomization
	if raw == nil {
		return c
	}

	c.Rules = objectField(raw, "rules")
	c.Extends = stringList(raw["extends"])
	c.RulesDirectory = stringList(raw["rulesDirectory"])
	c.Exclude = stringList(raw["exclude"])
	if c.Exclude == nil {
		if opts, ok := raw["linterOptions"].(map[string]any); ok {
			c.Exclude = stringList(opts["exclude"])
		}
	}
	return c
}

// FormatterSettings are formatter options copied verbatim.
type FormatterSettings map[string]any

// ExtractPrettier copies every setting of a formatter config.
func ExtractPrettier(raw map[string]any) FormatterSettings {
	if raw == nil {
		return nil
	}
	out := make(FormatterSettings, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

func objectField(obj map[string]any, key string) map[string]any {
	v, ok := obj[key].(map[string]any)
	if !ok {
		return nil
	}
	return v
}

// stringList accepts a single string or a list of scalars.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if item == nil {
				continue
			}
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
