package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/preset"
)

// Module specifiers generated configs import from.
const (
	FragmentModule  = "@kitiumai/lint/eslint"
	FormatterModule = "eslint-config-prettier"
	PrettierModule  = "@kitiumai/lint/prettier"
)

// scriptFiles is the files glob of the custom rules layer.
var scriptFiles = []string{"**/*.{js,jsx,ts,tsx}"}

// ignorePatterns are the entries of the formatter ignore file.
var ignorePatterns = []string{
	"node_modules",
	"dist",
	"build",
	".next",
	"out",
	".venv",
	"venv",
	".env",
	".env.local",
	".env.*.local",
	"*.log",
	".DS_Store",
	".cache",
	".turbo",
}

// flatIgnores are the globs the flat config ignores globally.
var flatIgnores = []string{
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/out/**",
	"**/coverage/**",
	"**/.venv/**",
	"**/venv/**",
	"**/.cache/**",
	"**/.turbo/**",
	"**/*.log",
}

var funcs = template.FuncMap{
	"value":  Value,
	"key":    Key,
	"layer":  layerSource,
	"join":   strings.Join,
	"keys":   SortedKeys[any],
	"envs":   enabledEnvs,
}

const eslintTemplate = `/**
{{- if .Migrated}}
 * ESLint Configuration - Migrated to @kitiumai/lint
 *
 * This configuration has been migrated from your existing ESLint setup.
 * Your custom rules are layered on top of the @kitiumai/lint {{.ProjectName}} preset.
 *
 * To further customize, modify the 'migrated-custom-rules' config object below.
{{- else}}
 * ESLint Configuration
 * Uses the @kitiumai/lint {{.ProjectName}} preset as the base configuration.
 * Extend this file to customize lint rules for your project.
{{- end}}
 */

import { {{join .FragmentImports ", "}} } from '{{.FragmentModule}}';
{{- if .FormatterImport}}
import {{.FormatterImport}} from '{{.FormatterModule}}';
{{- end}}

export default [
  {
    ignores: {{value .Ignores}},
  },
{{- range .Layers}}
  {{layer .}},
{{- end}}
  {
    name: '{{.CustomName}}',
    files: {{value .CustomFiles}},
{{- with .Env}}
    // env has no flat config equivalent; convert to languageOptions.globals: {{join (envs .) ", "}}
{{- end}}
{{- with .ParserOptions}}
    languageOptions: {
      parserOptions: {{value .}},
    },
{{- end}}
{{- with .Settings}}
    settings: {{value .}},
{{- end}}
    rules: {
{{- if .Rules}}
{{- $rules := .Rules}}
{{- range keys .Rules}}
      {{key .}}: {{value (index $rules .)}},
{{- end}}
{{- else}}
      // Add your project-specific rule overrides here
{{- end}}
    },
  },
{{- range $i, $o := .Overrides}}
  {
    name: 'migrated-override-{{$i}}',
    files: {{value $o.Files}},
{{- if $o.ExcludedFiles}}
    ignores: {{value $o.ExcludedFiles}},
{{- end}}
    rules: {
{{- $orules := $o.Rules}}
{{- range keys $o.Rules}}
      {{key .}}: {{value (index $orules .)}},
{{- end}}
    },
  },
{{- end}}
];
`

const prettierTemplate = `/**
{{- if .Migrated}}
 * Prettier Configuration - Migrated to @kitiumai/lint
 *
 * This configuration extends the @kitiumai/lint prettier config.
 * Your custom settings have been preserved below.
{{- else}}
 * Prettier Configuration
 * Uses the @kitiumai/lint prettier configuration as a base.
 * Extend this file to customize formatting for your project.
{{- end}}
 */

import { prettierConfig } from '{{.Module}}';

export default {
  ...prettierConfig,
{{- if .Settings}}
  // Your existing custom Prettier settings
{{- $s := .Settings}}
{{- range keys .Settings}}
  {{key .}}: {{value (index $s .)}},
{{- end}}
{{- else}}
  // Add project-specific overrides here
  // overrides: [
  //   ...prettierConfig.overrides,
  //   { files: '*.md', options: { printWidth: 80, proseWrap: 'always' } },
  // ],
{{- end}}
};
`

var (
	eslintTmpl   = template.Must(template.New("eslint").Funcs(funcs).Parse(eslintTemplate))
	prettierTmpl = template.Must(template.New("prettier").Funcs(funcs).Parse(prettierTemplate))
)

type eslintData struct {
	Migrated        bool
	ProjectName     string
	FragmentImports []string
	FragmentModule  string
	FormatterImport string
	FormatterModule string
	Ignores         []string
	Layers          []preset.Layer
	CustomName      string
	CustomFiles     []string
	Env             map[string]any
	ParserOptions   map[string]any
	Settings        map[string]any
	Rules           map[string]any
	Overrides       []legacy.Override
}

func newESLintData(p preset.Preset) eslintData {
	d := eslintData{
		ProjectName:     p.ProjectType.DisplayName(),
		FragmentImports: p.FragmentIdentifiers(),
		FragmentModule:  FragmentModule,
		FormatterModule: FormatterModule,
		Ignores:         flatIgnores,
		Layers:          p.Layers,
		CustomName:      "project-overrides",
		CustomFiles:     scriptFiles,
	}
	for _, id := range p.Imports {
		if id == preset.FormatterIdentifier {
			d.FormatterImport = id
		}
	}
	return d
}

// MigratedESLint renders a flat config that layers a legacy customization on
// top of the preset.
func MigratedESLint(custom legacy.Customization, p preset.Preset) string {
	d := newESLintData(p)
	d.Migrated = true
	d.CustomName = "migrated-custom-rules"
	d.Env = custom.Env
	d.ParserOptions = custom.ParserOptions
	d.Settings = custom.Settings
	d.Rules = custom.Rules
	d.Overrides = custom.Overrides
	return mustExecute(eslintTmpl, d)
}

// FreshESLint renders a flat config for a project without legacy config.
func FreshESLint(p preset.Preset) string {
	return mustExecute(eslintTmpl, newESLintData(p))
}

type prettierData struct {
	Migrated bool
	Module   string
	Settings map[string]any
}

// MigratedPrettier renders a formatter config carrying the given settings.
func MigratedPrettier(settings legacy.FormatterSettings) string {
	return mustExecute(prettierTmpl, prettierData{
		Migrated: true,
		Module:   PrettierModule,
		Settings: map[string]any(settings),
	})
}

// FreshPrettier renders the default formatter config.
func FreshPrettier() string {
	return mustExecute(prettierTmpl, prettierData{Module: PrettierModule})
}

// IgnoreFile renders the formatter ignore file.
func IgnoreFile() string {
	return strings.Join(ignorePatterns, "\n") + "\n"
}

// mustExecute runs a template over data built in this package. The templates
// are fixed and only call total functions, so a failure is a programming error.
func mustExecute(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("render: %s template: %v", t.Name(), err))
	}
	return buf.String()
}

// layerSource prints one entry of the config array.
func layerSource(l preset.Layer) string {
	ref := l.Identifier
	if l.Spread {
		ref = "..." + ref
	}
	if len(l.Files) == 0 {
		return ref
	}
	return fmt.Sprintf("{\n    files: %s,\n    %s,\n  }", Value(l.Files), ref)
}

// enabledEnvs lists the environments switched on in a legacy env block.
func enabledEnvs(env map[string]any) []string {
	var out []string
	for _, k := range SortedKeys(env) {
		if on, ok := env[k].(bool); ok && !on {
			continue
		}
		out = append(out, k)
	}
	return out
}
