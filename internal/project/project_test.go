package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kitium-ai/lint/internal/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindRoot_NearestManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "consumer-app"}`)
	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindRoot([]string{nested}, SelfPackageName)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_SkipsSelf(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "consumer-app"}`)
	self := filepath.Join(root, "node_modules", "@kitiumai", "lint")
	writeFile(t, filepath.Join(self, "package.json"), `{"name": "@kitiumai/lint"}`)

	got, err := FindRoot([]string{self}, SelfPackageName)
	require.NoError(t, err)
	assert.Equal(t, root, got)
	assert.NotEqual(t, self, got)
}

func TestFindRoot_SelfOnlyIsNotARoot(t *testing.T) {
	self := t.TempDir()
	writeFile(t, filepath.Join(self, "package.json"), `{"name": "@kitiumai/lint"}`)

	got, err := FindRoot([]string{self}, SelfPackageName)
	if err == nil {
		// An unrelated manifest above the temp dir is acceptable, the
		// self-identified directory is not.
		assert.NotEqual(t, self, got)
		return
	}
	assert.True(t, errors.Is(err, ErrNoProjectRoot))
}

func TestFindRoot_SkipsInvalidJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "consumer-app"}`)
	broken := filepath.Join(root, "packages", "broken")
	writeFile(t, filepath.Join(broken, "package.json"), `{"name": `)

	got, err := FindRoot([]string{broken}, SelfPackageName)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_FallsBackToNextStart(t *testing.T) {
	empty := t.TempDir()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "consumer-app"}`)

	got, err := FindRoot([]string{"", empty, root}, SelfPackageName)
	require.NoError(t, err)
	// The first start may resolve to an ancestor manifest on the host; when
	// it does not, the second start must win.
	if got != root {
		assert.NotEqual(t, empty, got)
	}
}

func TestDetectExistingConfigs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".eslintrc.json"), `{}`)
	writeFile(t, filepath.Join(root, ".eslintrc"), `{}`)
	writeFile(t, filepath.Join(root, "tslint.json"), `{}`)
	writeFile(t, filepath.Join(root, ".prettierrc"), `{}`)
	writeFile(t, filepath.Join(root, ".prettierrc.cjs"), `module.exports = {}`)

	got := DetectExistingConfigs(root)
	assert.Empty(t, got.ModernFlat)
	assert.Equal(t, filepath.Join(root, ".eslintrc.json"), got.LegacyRC)
	assert.Equal(t, filepath.Join(root, "tslint.json"), got.StyleDialect)
	assert.Equal(t, filepath.Join(root, ".prettierrc.cjs"), got.Formatter)
	assert.True(t, got.Any())
	assert.Equal(t, got.LegacyRC, got.Path(types.DialectLegacyRC))
}

func TestDetectExistingConfigs_Empty(t *testing.T) {
	got := DetectExistingConfigs(t.TempDir())
	assert.False(t, got.Any())
	assert.Equal(t, DetectedConfigs{}, got)
}

func TestDetectExistingConfigs_IgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "eslint.config.js"), 0755))

	assert.Empty(t, DetectExistingConfigs(root).ModernFlat)
}

func TestReadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "web",
  "scripts": {"build": "next build"},
  "dependencies": {"react": "18.2.0", "next": "14.0.0"},
  "devDependencies": {"eslint": "^9.1.0"}
}`)

	m, err := ReadManifest(root)
	require.NoError(t, err)
	assert.Equal(t, "web", m.Name)
	assert.Equal(t, "next build", m.Scripts["build"])
	assert.True(t, m.Deps.Has("react"))
	assert.True(t, m.Deps.Has("eslint"))
	assert.False(t, m.Deps.Has("vue"))

	v, ok := m.Deps.Version("eslint")
	assert.True(t, ok)
	assert.Equal(t, "^9.1.0", v)
}

func TestParseManifest_Rejects(t *testing.T) {
	_, err := ParseManifest([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseManifest([]byte(`["array"]`))
	assert.Error(t, err)
}

func TestApplyScripts(t *testing.T) {
	m, err := ParseManifest([]byte(`{
  "name": "web",
  "version": "1.0.0",
  "scripts": {
    "build": "tsc",
    "lint": "eslint src",
    "format": "prettier --write ."
  },
  "private": true
}`))
	require.NoError(t, err)

	conflicts := m.ScriptConflicts(DefaultScripts())
	require.Len(t, conflicts, 1)
	assert.Equal(t, "lint", conflicts[0].Name)
	assert.Equal(t, "eslint src", conflicts[0].Current)

	changes, out, err := m.ApplyScripts(DefaultScripts(), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"lint:fix", "format:check"}, changes.Added)
	assert.Empty(t, changes.Updated)
	require.Len(t, changes.Kept, 1)

	doc := gjson.ParseBytes(out)
	assert.Equal(t, "eslint src", doc.Get("scripts.lint").String())
	assert.Equal(t, "eslint . --fix", doc.Get(`scripts.lint:fix`).String())
	assert.Equal(t, "prettier --check .", doc.Get(`scripts.format:check`).String())
	assert.Equal(t, "tsc", doc.Get("scripts.build").String())
	assert.True(t, doc.Get("private").Bool())

	var keys []string
	doc.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"name", "version", "scripts", "private"}, keys)
}

func TestApplyScripts_Replace(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "web", "scripts": {"lint": "eslint src"}}`))
	require.NoError(t, err)

	changes, out, err := m.ApplyScripts(DefaultScripts(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"lint"}, changes.Updated)
	assert.Equal(t, "eslint .", gjson.GetBytes(out, "scripts.lint").String())
}

func TestApplyScripts_CreatesScriptsObject(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "web"}`))
	require.NoError(t, err)

	changes, out, err := m.ApplyScripts(DefaultScripts(), false)
	require.NoError(t, err)
	assert.Len(t, changes.Added, 4)
	assert.Equal(t, "prettier --write .", gjson.GetBytes(out, "scripts.format").String())
	assert.Equal(t, "web", gjson.GetBytes(out, "name").String())
}

func TestApplyScripts_NoChange(t *testing.T) {
	raw := `{"name":"web","scripts":{"lint":"eslint .","lint:fix":"eslint . --fix","format":"prettier --write .","format:check":"prettier --check ."}}`
	m, err := ParseManifest([]byte(raw))
	require.NoError(t, err)

	changes, out, err := m.ApplyScripts(DefaultScripts(), true)
	require.NoError(t, err)
	assert.False(t, changes.Changed())
	assert.Equal(t, raw, string(out))
}

func TestESLintVersion(t *testing.T) {
	tests := []struct {
		declared string
		version  string
		flat     bool
		ok       bool
	}{
		{"^9.1.0", "v9.1.0", true, true},
		{"~8.57.0", "v8.57.0", false, true},
		{">=8 <10", "v8.0.0", false, true},
		{"9.x", "v9.0.0", true, true},
		{"^8.0.0 || ^9.0.0", "v8.0.0", false, true},
		{"latest", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			info, ok := ESLintVersion(Dependencies{DevDependencies: map[string]string{"eslint": tt.declared}})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, info.Version)
			assert.Equal(t, tt.flat, info.FlatConfig)
			assert.Equal(t, tt.declared, info.Declared)
		})
	}

	_, ok := ESLintVersion(Dependencies{})
	assert.False(t, ok)
}
