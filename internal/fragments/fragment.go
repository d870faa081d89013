// Package fragments holds the catalog of named rule-configuration fragments
// shipped with kitium-lint and the resolver that decides, per consumer project,
// whether an optional fragment's extensions are installed.
//
// A fragment is plain data: the file globs it applies to, the extension
// packages it needs, and a rule map from rule identifier to a severity or an
// options tuple. Fragments are built once from static tables and never
// mutated; accessors hand out copies.
package fragments

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// RuleFragment is a named, self-contained bundle of rule configuration.
type RuleFragment struct {
	name        string
	description string
	identifier  string
	patterns    []string
	globs       []glob.Glob
	extensions  []string
	rules       map[string]any
	optional    bool
}

// fragmentDef is the static description a RuleFragment is built from.
type fragmentDef struct {
	Name        string
	Description string
	Identifier  string
	Patterns    []string
	Extensions  []string
	Rules       map[string]any
	Optional    bool
}

func newFragment(def fragmentDef) (*RuleFragment, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("fragment name is required")
	}
	if def.Optional && len(def.Extensions) == 0 {
		return nil, fmt.Errorf("optional fragment %q must name at least one extension", def.Name)
	}

	f := &RuleFragment{
		name:        def.Name,
		description: def.Description,
		identifier:  def.Identifier,
		patterns:    append([]string(nil), def.Patterns...),
		extensions:  append([]string(nil), def.Extensions...),
		rules:       copyRules(def.Rules),
		optional:    def.Optional,
	}

	for _, pattern := range def.Patterns {
		globs, err := compilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("fragment %q: invalid file pattern %q: %w", def.Name, pattern, err)
		}
		f.globs = append(f.globs, globs...)
	}

	return f, nil
}

// compilePattern compiles a lint-engine style glob. A leading "**/" also
// matches files at the project root, so the remainder is compiled as well.
func compilePattern(pattern string) ([]glob.Glob, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	globs := []glob.Glob{g}

	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		rg, err := glob.Compile(rest, '/')
		if err != nil {
			return nil, err
		}
		globs = append(globs, rg)
	}
	return globs, nil
}

// Name returns the catalog name, e.g. "react".
func (f *RuleFragment) Name() string { return f.name }

// Description returns a one-line summary of the fragment.
func (f *RuleFragment) Description() string { return f.description }

// Identifier returns the export name a generated config imports the fragment
// under, e.g. "reactConfig".
func (f *RuleFragment) Identifier() string { return f.identifier }

// Optional reports whether the fragment degrades when its extensions are missing.
func (f *RuleFragment) Optional() bool { return f.optional }

// FilePatterns returns a copy of the fragment's file globs.
func (f *RuleFragment) FilePatterns() []string {
	return append([]string(nil), f.patterns...)
}

// RequiredExtensions returns a copy of the extension package names.
func (f *RuleFragment) RequiredExtensions() []string {
	return append([]string(nil), f.extensions...)
}

// Rules returns a deep copy of the rule map.
func (f *RuleFragment) Rules() map[string]any {
	return copyRules(f.rules)
}

// RuleCount returns the number of configured rules.
func (f *RuleFragment) RuleCount() int { return len(f.rules) }

// Matches reports whether path falls under one of the fragment's file patterns.
// A fragment without patterns applies to every file.
func (f *RuleFragment) Matches(path string) bool {
	if len(f.globs) == 0 {
		return true
	}
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, g := range f.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// degraded returns the same fragment with an empty rule map.
func (f *RuleFragment) degraded() *RuleFragment {
	clone := *f
	clone.rules = map[string]any{}
	return &clone
}

func copyRules(rules map[string]any) map[string]any {
	out := make(map[string]any, len(rules))
	for k, v := range rules {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyRules(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
