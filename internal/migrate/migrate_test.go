package migrate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/scaffold"
	"github.com/kitium-ai/lint/internal/types"
)

func init() {
	color.NoColor = true
}

type fixedAsker struct {
	answer bool
	asked  []string
}

func (a *fixedAsker) YesNo(question string, def bool) (bool, error) {
	a.asked = append(a.asked, question)
	return a.answer, nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_LegacyESLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app","dependencies":{"react":"18.2.0"}}`)
	writeFile(t, root, ".eslintrc.json", `{
  "extends": ["eslint:recommended"],
  "env": {"browser": true},
  "rules": {"eqeqeq": "error", "security/detect-object-injection": "off"},
  "overrides": [{"files": ["*.test.js"], "rules": {"no-unused-expressions": "off"}}]
}`)

	asker := &fixedAsker{answer: true}
	var out bytes.Buffer
	report, err := Run(context.Background(), Options{Starts: []string{root}, Asker: asker, Out: &out})
	require.NoError(t, err)

	assert.Equal(t, []string{QuestionESLint}, asker.asked)
	assert.Equal(t, []types.Tool{types.ToolESLint}, report.Migrated)
	assert.Equal(t, types.ProjectReact, report.ProjectType)

	target := filepath.Join(root, project.FlatConfigFile)
	assert.Equal(t, []string{target}, report.Written)
	require.Len(t, report.Backups, 1)
	assert.True(t, strings.HasPrefix(filepath.Base(report.Backups[0]), ".eslintrc.json.backup."))
	assert.NoFileExists(t, filepath.Join(root, ".eslintrc.json"))

	config := readFile(t, target)
	assert.Contains(t, config, "...reactConfig,")
	assert.Contains(t, config, "eqeqeq: 'error',")
	assert.Contains(t, config, "name: 'migrated-override-0'")
	assert.NotContains(t, config, "securityConfig")

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "security/detect-object-injection", report.Warnings[0].Rule)
	assert.Contains(t, out.String(), `critical rule "security/detect-object-injection" is disabled in .eslintrc.json`)
	assert.Contains(t, out.String(), "Migration complete!")
}

func TestRun_NothingToMigrate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)

	asker := &fixedAsker{answer: true}
	var out bytes.Buffer
	report, err := Run(context.Background(), Options{Starts: []string{root}, Asker: asker, Out: &out})
	require.NoError(t, err)

	assert.True(t, report.Skipped())
	assert.Empty(t, asker.asked)
	assert.Contains(t, out.String(), "No existing ESLint, TSLint, or Prettier configurations found.")
}

func TestRun_Declined(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, ".eslintrc.json", `{"rules":{}}`)
	writeFile(t, root, "tslint.json", `{"rules":{}}`)
	writeFile(t, root, ".prettierrc", `{"semi":false}`)

	asker := &fixedAsker{answer: false}
	var out bytes.Buffer
	report, err := Run(context.Background(), Options{Starts: []string{root}, Asker: asker, Out: &out})
	require.NoError(t, err)

	assert.Equal(t, []string{QuestionESLint, QuestionTSLint, QuestionPrettier}, asker.asked)
	assert.True(t, report.Skipped())
	assert.Empty(t, report.Written)
	assert.Contains(t, out.String(), "Migration skipped.")
	assert.FileExists(t, filepath.Join(root, ".eslintrc.json"))
	assert.NoFileExists(t, filepath.Join(root, project.FlatConfigFile))
}

func TestRun_FlatConfigNeedsManualReview(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, "eslint.config.js", "export default [];\n")

	var out bytes.Buffer
	report, err := Run(context.Background(), Options{
		Starts:      []string{root},
		Asker:       &fixedAsker{answer: true},
		Out:         &out,
		ProjectType: "vanilla-ts",
		Security:    true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Please manually review and merge your flat config rules.")
	assert.Equal(t, types.ProjectVanillaTS, report.ProjectType)
	require.Len(t, report.Backups, 1)
	assert.Equal(t, "export default [];\n", readFile(t, report.Backups[0]))

	config := readFile(t, filepath.Join(root, project.FlatConfigFile))
	assert.Contains(t, config, "securityConfig,")
	assert.Contains(t, config, "name: 'migrated-custom-rules'")
}

func TestRun_TSLintAndPrettier(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, "tslint.json", `{"rules":{"max-line-length":[true,120]},"rulesDirectory":["rules"]}`)
	writeFile(t, root, ".prettierrc.json", `{"semi":false,"printWidth":100}`)

	report, err := Run(context.Background(), Options{Starts: []string{root}, Asker: &fixedAsker{answer: true}})
	require.NoError(t, err)

	assert.Equal(t, []types.Tool{types.ToolTSLint, types.ToolPrettier}, report.Migrated)
	assert.Len(t, report.Written, 2)
	assert.Len(t, report.Backups, 2)

	tslint := readFile(t, filepath.Join(root, "tslint.json"))
	assert.Contains(t, tslint, `"tslint:recommended"`)
	assert.Contains(t, tslint, `"max-line-length"`)
	assert.Contains(t, tslint, `"rulesDirectory"`)

	assert.NoFileExists(t, filepath.Join(root, ".prettierrc.json"))
	prettier := readFile(t, filepath.Join(root, project.FormatterConfigFile))
	assert.Contains(t, prettier, "  printWidth: 100,\n  semi: false,\n")
}

func TestRun_DryRunLeavesTreeUntouched(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, ".eslintrc.json", `{"rules":{"semi":"error"}}`)

	var out bytes.Buffer
	w := scaffold.NewWriter(&out, true, nil)
	report, err := Run(context.Background(), Options{
		Starts: []string{root},
		Asker:  &fixedAsker{answer: true},
		Out:    &out,
		Writer: w,
	})
	require.NoError(t, err)

	assert.Len(t, report.Written, 1)
	assert.FileExists(t, filepath.Join(root, ".eslintrc.json"))
	assert.NoFileExists(t, filepath.Join(root, project.FlatConfigFile))
	assert.Contains(t, out.String(), "+++ b/eslint.config.js")
	assert.Contains(t, out.String(), "Would back up .eslintrc.json")
	assert.Contains(t, out.String(), "Dry run complete")
}

func TestRun_UnparseableConfigContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, ".eslintrc.js", "module.exports = require('./shared');\n")

	var out bytes.Buffer
	report, err := Run(context.Background(), Options{Starts: []string{root}, Asker: &fixedAsker{answer: true}, Out: &out})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Could not parse .eslintrc.js")
	assert.Equal(t, types.ProjectNode, report.ProjectType)
	assert.FileExists(t, filepath.Join(root, project.FlatConfigFile))
}

func TestRun_NoProjectRoot(t *testing.T) {
	_, err := Run(context.Background(), Options{Starts: []string{t.TempDir()}, Asker: &fixedAsker{}})
	assert.ErrorIs(t, err, project.ErrNoProjectRoot)
}

func TestRun_UnknownProjectType(t *testing.T) {
	_, err := Run(context.Background(), Options{Starts: []string{t.TempDir()}, Asker: &fixedAsker{}, ProjectType: "cobol"})
	assert.ErrorIs(t, err, ErrUnknownProjectType)
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"app"}`)
	writeFile(t, root, "tslint.json", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Starts: []string{root}, Asker: &fixedAsker{answer: true}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "{}", readFile(t, filepath.Join(root, "tslint.json")))
}
