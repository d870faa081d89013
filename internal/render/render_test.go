package render

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/preset"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"string", "error", "'error'"},
		{"quote", "it's", `'it\'s'`},
		{"newline", "a\nb", `'a\nb'`},
		{"integral float", float64(2), "2"},
		{"fraction", 1.5, "1.5"},
		{"negative", float64(-1), "-1"},
		{"nan", math.NaN(), "null"},
		{"int", 120, "120"},
		{"json number", json.Number("42"), "42"},
		{"list", []any{"error", "single"}, "['error', 'single']"},
		{"string list", []string{"*.ts"}, "['*.ts']"},
		{"empty list", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"sorted keys", map[string]any{"b": 1, "a": true}, "{ a: true, b: 1 }"},
		{"quoted key", map[string]any{"no-console": "off"}, "{ 'no-console': 'off' }"},
		{"nested", []any{"warn", map[string]any{"code": float64(120)}}, "['warn', { code: 120 }]"},
		{"struct", struct {
			Semi bool `json:"semi"`
		}{true}, "{ semi: true }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

func TestValue_RoundTrip(t *testing.T) {
	values := []any{
		map[string]any{
			"no-console": "off",
			"quotes":     []any{"error", "single", map[string]any{"avoidEscape": true}},
			"max-len":    []any{float64(1), map[string]any{"code": float64(120), "ignoreUrls": true}},
			"weird":      "tab\tquote' back\\slash   nbsp ",
			"emoji":      "😀",
			"small":      1.5e-7,
			"big":        float64(1e22),
			"nothing":    nil,
		},
		[]any{},
		"plain",
	}

	for _, v := range values {
		got, err := legacy.ParseLiteral("module.exports = " + Value(v) + ";")
		require.NoError(t, err, Value(v))
		assert.Equal(t, v, got)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "eqeqeq", Key("eqeqeq"))
	assert.Equal(t, "$scope", Key("$scope"))
	assert.Equal(t, "'no-console'", Key("no-console"))
	assert.Equal(t, "'react/jsx-key'", Key("react/jsx-key"))
	assert.Equal(t, "'1abc'", Key("1abc"))
}

func TestMigratedESLint_Scenario(t *testing.T) {
	raw, err := legacy.Parse([]byte(`{"rules":{"eqeqeq":"error"},"overrides":[{"files":["*.ts"],"rules":{"semi":"error"}}]}`), legacy.FormatJSON)
	require.NoError(t, err)

	out := MigratedESLint(legacy.ExtractESLint(raw), preset.Build("node", preset.Options{}))

	assert.Contains(t, out, "import { baseConfig, nodeConfig, typeScriptConfig } from '@kitiumai/lint/eslint';")
	assert.Contains(t, out, "import eslintConfigPrettier from 'eslint-config-prettier';")
	assert.Contains(t, out, "name: 'migrated-custom-rules'")
	assert.Contains(t, out, "eqeqeq: 'error',")
	assert.Contains(t, out, "name: 'migrated-override-0'")
	assert.Contains(t, out, "files: ['*.ts'],")
	assert.Contains(t, out, "semi: 'error',")
	assert.NotContains(t, out, "languageOptions")
	assert.NotContains(t, out, "settings:")

	// Layer order follows the preset, custom rules come after it.
	order := []string{"...baseConfig,", "...nodeConfig,", "...typeScriptConfig,", "eslintConfigPrettier,", "name: 'migrated-custom-rules'", "migrated-override-0"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		require.Greater(t, i, last, s)
		last = i
	}
}

func TestMigratedESLint_KeepsDisabledRules(t *testing.T) {
	out := MigratedESLint(legacy.Customization{
		Rules:         map[string]any{"no-console": "off"},
		Env:           map[string]any{"browser": true, "jquery": false, "node": true},
		ParserOptions: map[string]any{"ecmaVersion": float64(2022)},
		Settings:      map[string]any{"react": map[string]any{"version": "detect"}},
	}, preset.Build("react", preset.Options{IncludeSecurity: true}))

	assert.Contains(t, out, "'no-console': 'off',")
	assert.Contains(t, out, "languageOptions.globals: browser, node")
	assert.Contains(t, out, "parserOptions: { ecmaVersion: 2022 },")
	assert.Contains(t, out, "settings: { react: { version: 'detect' } },")
	assert.Contains(t, out, "securityConfig,")
	assert.Less(t, strings.Index(out, "securityConfig,"), strings.Index(out, "  eslintConfigPrettier,"))
}

func TestFreshESLint(t *testing.T) {
	out := FreshESLint(preset.Build("nextjs", preset.Options{}))

	assert.True(t, strings.HasPrefix(out, "/**\n * ESLint Configuration\n"))
	assert.Contains(t, out, "the @kitiumai/lint Next.js preset")
	assert.Contains(t, out, "name: 'project-overrides'")
	assert.Contains(t, out, "// Add your project-specific rule overrides here")
	assert.Contains(t, out, "ignores: ['**/node_modules/**'")
	assert.Contains(t, out, "  {\n    files: ['**/*.{test,spec}.{js,ts,jsx,tsx}'],\n    ...jestConfig,\n  },")
	assert.True(t, strings.HasSuffix(out, "];\n"))
}

func TestESLint_Deterministic(t *testing.T) {
	custom := legacy.Customization{
		Rules: map[string]any{"a": "error", "b": "warn", "c": "off", "d": []any{"error", float64(2)}},
	}
	p := preset.Build("vue", preset.Options{})
	first := MigratedESLint(custom, p)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MigratedESLint(custom, p))
	}
	assert.Less(t, strings.Index(first, "a: 'error'"), strings.Index(first, "d: ['error', 2]"))
}

func TestPrettier(t *testing.T) {
	fresh := FreshPrettier()
	assert.Contains(t, fresh, "import { prettierConfig } from '@kitiumai/lint/prettier';")
	assert.Contains(t, fresh, "  ...prettierConfig,\n")
	assert.Contains(t, fresh, "// Add project-specific overrides here")

	migrated := MigratedPrettier(legacy.FormatterSettings{"semi": false, "printWidth": float64(100)})
	assert.Contains(t, migrated, "Migrated to @kitiumai/lint")
	assert.Contains(t, migrated, "  printWidth: 100,\n  semi: false,\n")
	assert.Less(t, strings.Index(migrated, "...prettierConfig"), strings.Index(migrated, "printWidth"))
}

func TestIgnoreFile(t *testing.T) {
	out := IgnoreFile()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Contains(t, lines, "node_modules")
	assert.NotContains(t, lines, "coverage")
	assert.Contains(t, lines, ".env.*.local")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestMigratedTSLint(t *testing.T) {
	out, err := MigratedTSLint(legacy.TSLintCustomization{
		Extends:        []string{"tslint:recommended", "tslint-react"},
		Rules:          map[string]any{"no-console": false, "no-any": true},
		RulesDirectory: []string{"./rules"},
	})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{"tslint:recommended", "tslint-react"}, doc["extends"])

	rules := doc["rules"].(map[string]any)
	assert.Equal(t, false, rules["no-console"])
	assert.Equal(t, true, rules["no-any"])
	assert.Equal(t, false, rules["object-literal-sort-keys"])
	assert.Contains(t, rules, "ordered-imports")

	assert.Equal(t, map[string]any{"exclude": []any{"node_modules", "dist", "build", ".next"}}, doc["linterOptions"])
	assert.Equal(t, []any{"./rules"}, doc["rulesDirectory"])
	assert.Less(t, strings.Index(out, `"extends"`), strings.Index(out, `"rules"`))
}

func TestFreshTSLint(t *testing.T) {
	out, err := FreshTSLint()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{"tslint:recommended"}, doc["extends"])
	assert.NotContains(t, doc, "rulesDirectory")
	assert.Equal(t, map[string]any{"severity": "warning"}, doc["rules"].(map[string]any)["no-console"])
}
