package render

import (
	"fmt"
	"slices"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/kitium-ai/lint/internal/legacy"
)

const tslintBaseExtends = "tslint:recommended"

var tslintDefaultExclude = []string{"node_modules", "dist", "build", ".next"}

// tslintBaseRules are the rules every generated tslint.json starts from.
func tslintBaseRules() map[string]any {
	return map[string]any{
		"no-console":              map[string]any{"severity": "warning"},
		"object-literal-sort-keys": false,
		"ordered-imports": []any{true, map[string]any{
			"import-sources-order": "lowercase-last",
			"named-imports-order":  "lowercase-last",
		}},
	}
}

// MigratedTSLint renders a tslint.json carrying the given customization on
// top of the base rules. Custom rules win over base rules of the same name.
func MigratedTSLint(custom legacy.TSLintCustomization) (string, error) {
	extends := []string{tslintBaseExtends}
	for _, e := range custom.Extends {
		if !slices.Contains(extends, e) {
			extends = append(extends, e)
		}
	}

	rules := tslintBaseRules()
	for k, v := range custom.Rules {
		rules[k] = v
	}

	exclude := custom.Exclude
	if len(exclude) == 0 {
		exclude = tslintDefaultExclude
	}

	doc := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("extends", extends)
	set("rules", rules)
	set("linterOptions.exclude", exclude)
	if len(custom.RulesDirectory) > 0 {
		set("rulesDirectory", custom.RulesDirectory)
	}
	if err != nil {
		return "", fmt.Errorf("failed to build tslint.json: %w", err)
	}

	return string(pretty.PrettyOptions(doc, &pretty.Options{Width: 80, Indent: "  "})), nil
}

// FreshTSLint renders the default tslint.json.
func FreshTSLint() (string, error) {
	return MigratedTSLint(legacy.TSLintCustomization{})
}
