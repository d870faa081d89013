package legacy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteral_Values(t *testing.T) {
	src := `// legacy config
'use strict';

/* shared across packages */
module.exports = {
  root: true,
  env: { browser: true, node: true, },
  parserOptions: { ecmaVersion: 2022, sourceType: "module" },
  extends: ['eslint:recommended', "plugin:react/recommended"],
  rules: {
    'no-console': 'off',
    quotes: ['error', 'single', { avoidEscape: true }],
    'max-len': [1, { code: 120, ignoreUrls: true }],
    indent: ["error", 2],
    "no-magic-numbers": ['warn', { ignore: [-1, 0, 1, 0x10, 1.5e2] }],
    unused: undefined,
  },
  template: ` + "`plain text`" + `,
  nothing: null,
};
`

	v, err := ParseLiteral(src)
	require.NoError(t, err)
	obj := v.(map[string]any)

	assert.Equal(t, true, obj["root"])
	assert.Equal(t, map[string]any{"browser": true, "node": true}, obj["env"])
	assert.Equal(t, map[string]any{"ecmaVersion": float64(2022), "sourceType": "module"}, obj["parserOptions"])
	assert.Equal(t, []any{"eslint:recommended", "plugin:react/recommended"}, obj["extends"])
	assert.Equal(t, "plain text", obj["template"])
	assert.Contains(t, obj, "nothing")
	assert.Nil(t, obj["nothing"])

	rules := obj["rules"].(map[string]any)
	assert.Equal(t, "off", rules["no-console"])
	assert.Equal(t, []any{"error", "single", map[string]any{"avoidEscape": true}}, rules["quotes"])
	assert.Equal(t, []any{float64(1), map[string]any{"code": float64(120), "ignoreUrls": true}}, rules["max-len"])
	assert.Equal(t, []any{"warn", map[string]any{"ignore": []any{float64(-1), float64(0), float64(1), float64(16), float64(150)}}}, rules["no-magic-numbers"])
	assert.NotContains(t, rules, "unused")
}

func TestParseLiteral_ExportDefault(t *testing.T) {
	v, err := ParseLiteral("export default { semi: false, singleQuote: true }\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"semi": false, "singleQuote": true}, v)
}

func TestParseLiteral_Spreads(t *testing.T) {
	v, err := ParseLiteral(`module.exports = {
  ...{ a: 1, b: 2 },
  b: 3,
  list: [...['x', 'y'], 'z'],
}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a":    float64(1),
		"b":    float64(3),
		"list": []any{"x", "y", "z"},
	}, v)
}

func TestParseLiteral_Escapes(t *testing.T) {
	v, err := ParseLiteral(`{ a: 'it\'s', b: "tab\there", c: 'é\x41', d: '\u{1F600}' }`)
	require.NoError(t, err)
	obj := v.(map[string]any)
	assert.Equal(t, "it's", obj["a"])
	assert.Equal(t, "tab\there", obj["b"])
	assert.Equal(t, "éA", obj["c"])
	assert.Equal(t, "😀", obj["d"])
}

func TestParseLiteral_RejectsCode(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"require", `module.exports = require('./base')`},
		{"call", `module.exports = { rules: getRules() }`},
		{"identifier", `const base = {}; module.exports = base;`},
		{"identifier value", `module.exports = { rules: base }`},
		{"template substitution", "module.exports = { name: `${process.env.NAME}` }"},
		{"spread identifier", `module.exports = { ...base }`},
		{"computed key", `module.exports = { [key]: 1 }`},
		{"function", `module.exports = { fix: function () {} }`},
		{"trailing statement", `module.exports = {}; process.exit(1)`},
		{"unterminated", `module.exports = { a: 'b`},
		{"missing comma", `module.exports = { a: 1 b: 2 }`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLiteral(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedSyntax), "got %v", err)

			var se *SyntaxError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestParseLiteral_ErrorPosition(t *testing.T) {
	_, err := ParseLiteral("module.exports = {\n  a: foo,\n}")
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Line)
}

func TestParse_Formats(t *testing.T) {
	obj, err := Parse([]byte(`{"rules": {"semi": ["error", "always"]}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"semi": []any{"error", "always"}}, obj["rules"])

	obj, err = Parse([]byte("rules:\n  semi: [error, always]\n  max-len: [warn, 100]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []any{"warn", float64(100)}, obj["rules"].(map[string]any)["max-len"])

	obj, err = Parse([]byte("semi: false\nprintWidth: 100\n"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"semi": false, "printWidth": float64(100)}, obj)

	obj, err = Parse([]byte(`{"semi": false}`), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"semi": false}, obj)

	_, err = Parse([]byte(`["not", "an", "object"]`), FormatJSON)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Parse([]byte(`{"rules": `), FormatJSON)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("/p/.eslintrc.json"))
	assert.Equal(t, FormatYAML, FormatOf("/p/.eslintrc.yml"))
	assert.Equal(t, FormatYAML, FormatOf("/p/.prettierrc.yaml"))
	assert.Equal(t, FormatScript, FormatOf("/p/.eslintrc.cjs"))
	assert.Equal(t, FormatScript, FormatOf("/p/.prettierrc.js"))
	assert.Equal(t, FormatAuto, FormatOf("/p/.eslintrc"))
	assert.Equal(t, FormatAuto, FormatOf("/p/.prettierrc"))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".eslintrc.js")
	require.NoError(t, os.WriteFile(path, []byte(`module.exports = { rules: { eqeqeq: 'error' } };`), 0644))

	obj, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"eqeqeq": "error"}, obj["rules"])

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractESLint_Scenario(t *testing.T) {
	raw, err := Parse([]byte(`{"rules":{"eqeqeq":"error"},"overrides":[{"files":["*.ts"],"rules":{"semi":"error"}}]}`), FormatJSON)
	require.NoError(t, err)

	c := ExtractESLint(raw)
	assert.Equal(t, map[string]any{"eqeqeq": "error"}, c.Rules)
	require.Len(t, c.Overrides, 1)
	assert.Equal(t, []string{"*.ts"}, c.Overrides[0].Files)
	assert.Equal(t, map[string]any{"semi": "error"}, c.Overrides[0].Rules)
	assert.Nil(t, c.Env)
	assert.Nil(t, c.ParserOptions)
	assert.Nil(t, c.Settings)
	assert.Nil(t, c.Extends)
}

func TestExtractESLint_OnlyPresentFields(t *testing.T) {
	c := ExtractESLint(map[string]any{
		"env":      map[string]any{"browser": true},
		"settings": map[string]any{"react": map[string]any{"version": "detect"}},
		"extends":  "plugin:react/recommended",
		"overrides": []any{
			map[string]any{"files": "*.test.js", "excludedFiles": []any{"*.e2e.js"}},
			"garbage",
		},
	})

	assert.Nil(t, c.Rules)
	assert.Equal(t, map[string]any{"browser": true}, c.Env)
	assert.NotNil(t, c.Settings)
	assert.Equal(t, "plugin:react/recommended", c.Extends)
	require.Len(t, c.Overrides, 1)
	assert.Equal(t, []string{"*.test.js"}, c.Overrides[0].Files)
	assert.Equal(t, []string{"*.e2e.js"}, c.Overrides[0].ExcludedFiles)
	assert.Nil(t, c.Overrides[0].Rules)
	assert.False(t, c.Empty())

	assert.True(t, ExtractESLint(nil).Empty())
	assert.True(t, ExtractESLint(map[string]any{}).Empty())
}

func TestExtractTSLint(t *testing.T) {
	c := ExtractTSLint(map[string]any{
		"extends":        "tslint:latest",
		"rulesDirectory": []any{"./rules"},
		"rules":          map[string]any{"no-any": true},
		"linterOptions":  map[string]any{"exclude": []any{"generated/**"}},
	})

	assert.Equal(t, []string{"tslint:latest"}, c.Extends)
	assert.Equal(t, []string{"./rules"}, c.RulesDirectory)
	assert.Equal(t, map[string]any{"no-any": true}, c.Rules)
	assert.Equal(t, []string{"generated/**"}, c.Exclude)
}

func TestExtractPrettier(t *testing.T) {
	raw := map[string]any{"semi": false, "printWidth": float64(100)}
	got := ExtractPrettier(raw)
	assert.Equal(t, FormatterSettings(raw), got)

	got["semi"] = true
	assert.Equal(t, false, raw["semi"])
	assert.Nil(t, ExtractPrettier(nil))
}
