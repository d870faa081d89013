package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"golang.org/x/mod/semver"
)

// Dependencies holds the declared dependency maps of a manifest.
type Dependencies struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// Has reports whether pkg is declared as a direct or development dependency.
func (d Dependencies) Has(pkg string) bool {
	if _, ok := d.Dependencies[pkg]; ok {
		return true
	}
	_, ok := d.DevDependencies[pkg]
	return ok
}

// Version returns the declared range for pkg, preferring direct dependencies.
func (d Dependencies) Version(pkg string) (string, bool) {
	if v, ok := d.Dependencies[pkg]; ok {
		return v, true
	}
	v, ok := d.DevDependencies[pkg]
	return v, ok
}

// Manifest is a parsed package.json. The raw bytes are kept so edits can
// preserve key order and unrelated content.
type Manifest struct {
	Path    string
	Name    string
	Scripts map[string]string
	Deps    Dependencies

	raw []byte
}

// ReadManifest reads and parses the marker file in dir.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, MarkerFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ParseManifest parses package.json content.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("manifest is not a JSON object")
	}

	return &Manifest{
		Name:    doc.Get("name").String(),
		Scripts: stringMap(doc.Get("scripts")),
		Deps: Dependencies{
			Dependencies:    stringMap(doc.Get("dependencies")),
			DevDependencies: stringMap(doc.Get("devDependencies")),
		},
		raw: append([]byte(nil), data...),
	}, nil
}

func stringMap(r gjson.Result) map[string]string {
	out := make(map[string]string)
	if !r.IsObject() {
		return out
	}
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}

// Raw returns a copy of the manifest bytes.
func (m *Manifest) Raw() []byte {
	return append([]byte(nil), m.raw...)
}

// Script is a package.json script entry.
type Script struct {
	Name    string
	Command string
}

// DefaultScripts returns the lint and format scripts setup installs.
func DefaultScripts() []Script {
	return []Script{
		{Name: "lint", Command: "eslint ."},
		{Name: "lint:fix", Command: "eslint . --fix"},
		{Name: "format", Command: "prettier --write ."},
		{Name: "format:check", Command: "prettier --check ."},
	}
}

// ScriptConflict is an existing script whose command differs from ours.
type ScriptConflict struct {
	Name    string
	Current string
	Want    string
}

// ScriptChanges summarizes what ApplyScripts did.
type ScriptChanges struct {
	Added   []string
	Updated []string
	Kept    []ScriptConflict
}

// Changed reports whether the manifest content changed.
func (c ScriptChanges) Changed() bool {
	return len(c.Added) > 0 || len(c.Updated) > 0
}

// ScriptConflicts returns the scripts that exist with a different command.
func (m *Manifest) ScriptConflicts(scripts []Script) []ScriptConflict {
	var conflicts []ScriptConflict
	for _, s := range scripts {
		current, ok := m.Scripts[s.Name]
		if ok && current != "" && current != s.Command {
			conflicts = append(conflicts, ScriptConflict{Name: s.Name, Current: current, Want: s.Command})
		}
	}
	return conflicts
}

// ApplyScripts adds missing scripts and, when replace is set, overwrites
// conflicting ones. It returns the changes and the new manifest content.
// Key order of the original manifest is preserved.
func (m *Manifest) ApplyScripts(scripts []Script, replace bool) (ScriptChanges, []byte, error) {
	var changes ScriptChanges
	out := m.Raw()

	for _, s := range scripts {
		current, ok := m.Scripts[s.Name]
		switch {
		case !ok || current == "":
			changes.Added = append(changes.Added, s.Name)
		case current == s.Command:
			continue
		case replace:
			changes.Updated = append(changes.Updated, s.Name)
		default:
			changes.Kept = append(changes.Kept, ScriptConflict{Name: s.Name, Current: current, Want: s.Command})
			continue
		}

		var err error
		out, err = sjson.SetBytes(out, "scripts."+escapePath(s.Name), s.Command)
		if err != nil {
			return ScriptChanges{}, nil, fmt.Errorf("failed to set script %q: %w", s.Name, err)
		}
	}

	if !changes.Changed() {
		return changes, m.Raw(), nil
	}

	out = pretty.PrettyOptions(out, &pretty.Options{Width: 80, Indent: "  "})
	return changes, out, nil
}

// escapePath escapes sjson path metacharacters in a single key.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ESLintInfo describes the lint engine version a project declares.
type ESLintInfo struct {
	Declared   string
	Version    string
	FlatConfig bool
}

// ESLintVersion reports the declared eslint range and whether it defaults to
// flat config. ok is false when eslint is not declared or the range has no
// recognizable version.
func ESLintVersion(deps Dependencies) (ESLintInfo, bool) {
	declared, found := deps.Version("eslint")
	if !found {
		return ESLintInfo{}, false
	}
	info := ESLintInfo{Declared: declared}

	v := canonicalVersion(declared)
	if v == "" {
		return info, false
	}
	info.Version = v
	info.FlatConfig = semver.Compare(v, "v9.0.0") >= 0
	return info, true
}

// canonicalVersion turns an npm range such as "^9.1.0" or ">=8 <10" into the
// canonical semver of its first bound.
func canonicalVersion(r string) string {
	r = strings.TrimSpace(r)
	if i := strings.Index(r, "||"); i >= 0 {
		r = strings.TrimSpace(r[:i])
	}
	if fields := strings.Fields(r); len(fields) > 0 {
		r = fields[0]
	}
	r = strings.TrimLeft(r, "^~>=<v ")
	r = strings.NewReplacer(".x", "", ".X", "", ".*", "").Replace(r)
	if r == "" {
		return ""
	}
	return semver.Canonical("v" + r)
}
