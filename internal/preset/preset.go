// Package preset turns a project-type label into the ordered list of fragment
// layers a generated flat config spreads, plus the identifiers it imports.
package preset

import (
	"slices"
	"strings"
	"unicode"

	"github.com/kitium-ai/lint/internal/types"
)

// Identifiers that are not catalog fragments.
const (
	FormatterIdentifier  = "eslintConfigPrettier"
	SecurityIdentifier   = "securityConfig"
	typeScriptIdentifier = "typeScriptConfig"
)

// Layer is one entry of the generated config array.
type Layer struct {
	// Identifier is the imported binding the layer references.
	Identifier string
	// Spread layers expand an exported config array ("...baseConfig").
	Spread bool
	// Files scopes the layer to a set of globs by wrapping it in an object.
	Files []string
}

// Insertion selects where the security layer is spliced in.
type Insertion int

// Insertion kinds
const (
	InsertNone Insertion = iota
	InsertBeforeFormatter
	InsertBeforeTypeScript
	InsertAppend
	InsertAtIndex
)

func (i Insertion) String() string {
	switch i {
	case InsertBeforeFormatter:
		return "before_prettier"
	case InsertBeforeTypeScript:
		return "before_typescript"
	case InsertAppend:
		return "append"
	case InsertAtIndex:
		return "at_index"
	}
	return "none"
}

// SecurityInsertion describes the security splice rule of a definition.
type SecurityInsertion struct {
	Kind  Insertion
	Index int
}

// Definition is the static description of one project type's preset.
type Definition struct {
	ProjectType types.ProjectType
	Imports     []string
	Layers      []Layer
	Security    SecurityInsertion
}

// Options controls preset construction.
type Options struct {
	IncludeSecurity bool
}

// Preset is a built preset ready to render.
type Preset struct {
	ProjectType types.ProjectType
	Imports     []string
	Layers      []Layer
}

func spread(identifier string) Layer {
	return Layer{Identifier: identifier, Spread: true}
}

func plain(identifier string) Layer {
	return Layer{Identifier: identifier}
}

func scoped(identifier string, files ...string) Layer {
	return Layer{Identifier: identifier, Spread: true, Files: files}
}

var definitions = map[types.ProjectType]Definition{
	types.ProjectNode: {
		Imports: []string{"baseConfig", "nodeConfig", "typeScriptConfig", FormatterIdentifier},
		Layers:  []Layer{spread("baseConfig"), spread("nodeConfig"), spread("typeScriptConfig"), plain(FormatterIdentifier)},
	},
	types.ProjectReact: {
		Imports:  []string{"baseConfig", "reactConfig", "typeScriptConfig", FormatterIdentifier},
		Layers:   []Layer{spread("baseConfig"), spread("reactConfig"), spread("typeScriptConfig"), plain(FormatterIdentifier)},
		Security: SecurityInsertion{Kind: InsertBeforeFormatter},
	},
	types.ProjectNextJS: {
		Imports: []string{
			"baseConfig", "reactConfig", "nextjsConfig", "typeScriptConfig",
			"jestConfig", "testingLibraryConfig", FormatterIdentifier,
		},
		Layers: []Layer{
			spread("baseConfig"),
			spread("reactConfig"),
			spread("nextjsConfig"),
			spread("typeScriptConfig"),
			scoped("jestConfig", "**/*.{test,spec}.{js,ts,jsx,tsx}"),
			scoped("testingLibraryConfig", "**/*.test.{jsx,tsx}"),
			plain(FormatterIdentifier),
		},
		Security: SecurityInsertion{Kind: InsertBeforeTypeScript},
	},
	types.ProjectVue: {
		Imports: []string{"baseConfig", "vueConfig", "typeScriptConfig", "jestConfig", FormatterIdentifier},
		Layers: []Layer{
			spread("baseConfig"),
			spread("vueConfig"),
			spread("typeScriptConfig"),
			scoped("jestConfig", "**/*.test.{js,ts,jsx,tsx}"),
			plain(FormatterIdentifier),
		},
	},
	types.ProjectAngular: {
		Imports: []string{"baseConfig", "angularConfig", "typeScriptConfig", FormatterIdentifier},
		Layers:  []Layer{spread("baseConfig"), spread("angularConfig"), spread("typeScriptConfig"), plain(FormatterIdentifier)},
	},
	types.ProjectSvelte: {
		Imports: []string{"baseConfig", "svelteConfig", "typeScriptConfig", FormatterIdentifier},
		Layers:  []Layer{spread("baseConfig"), spread("svelteConfig"), spread("typeScriptConfig"), plain(FormatterIdentifier)},
	},
	types.ProjectVanillaJS: {
		Imports:  []string{"baseConfig", FormatterIdentifier},
		Layers:   []Layer{spread("baseConfig"), plain(FormatterIdentifier)},
		Security: SecurityInsertion{Kind: InsertBeforeFormatter},
	},
	types.ProjectVanillaTS: {
		Imports:  []string{"baseConfig", "typeScriptConfig", FormatterIdentifier},
		Layers:   []Layer{spread("baseConfig"), spread("typeScriptConfig"), plain(FormatterIdentifier)},
		Security: SecurityInsertion{Kind: InsertBeforeFormatter},
	},
}

// aliases maps normalized free-text labels to canonical project types.
var aliases = map[string]types.ProjectType{
	"node.js":            types.ProjectNode,
	"node":               types.ProjectNode,
	"nodejs":             types.ProjectNode,
	"react":              types.ProjectReact,
	"react.js":           types.ProjectReact,
	"next":               types.ProjectNextJS,
	"next.js":            types.ProjectNextJS,
	"nextjs":             types.ProjectNextJS,
	"vue":                types.ProjectVue,
	"vue.js":             types.ProjectVue,
	"angular":            types.ProjectAngular,
	"svelte":             types.ProjectSvelte,
	"vanilla javascript": types.ProjectVanillaJS,
	"vanilla js":         types.ProjectVanillaJS,
	"vanilla-js":         types.ProjectVanillaJS,
	"vanilla typescript": types.ProjectVanillaTS,
	"vanilla ts":         types.ProjectVanillaTS,
	"vanilla-ts":         types.ProjectVanillaTS,
}

// compactAliases is aliases keyed with every non-alphanumeric removed.
var compactAliases = func() map[string]types.ProjectType {
	out := make(map[string]types.ProjectType, len(aliases))
	for label, pt := range aliases {
		out[compact(label)] = pt
	}
	return out
}()

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// NormalizeProjectType maps a free-text label to a canonical project type.
// Matching ignores case, surrounding and repeated whitespace, and
// punctuation. Unknown labels map to types.DefaultProjectType.
func NormalizeProjectType(label string) types.ProjectType {
	if pt, ok := LookupProjectType(label); ok {
		return pt
	}
	return types.DefaultProjectType
}

// LookupProjectType is NormalizeProjectType without the fallback.
func LookupProjectType(label string) (types.ProjectType, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	if pt, ok := aliases[key]; ok {
		return pt, true
	}
	if pt, ok := compactAliases[compact(key)]; ok {
		return pt, true
	}
	return "", false
}

// Definitions returns the preset definitions in canonical label order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, pt := range types.AllProjectTypes() {
		out = append(out, DefinitionFor(pt))
	}
	return out
}

// DefinitionFor returns a copy of the definition for a canonical project type,
// falling back to the default project type.
func DefinitionFor(pt types.ProjectType) Definition {
	def, ok := definitions[pt]
	if !ok {
		pt = types.DefaultProjectType
		def = definitions[pt]
	}
	def.ProjectType = pt
	def.Imports = slices.Clone(def.Imports)
	def.Layers = cloneLayers(def.Layers)
	return def
}

// Build composes the preset for a project-type label.
func Build(label string, opts Options) Preset {
	pt := NormalizeProjectType(label)
	def := DefinitionFor(pt)

	imports := def.Imports
	layers := def.Layers

	if opts.IncludeSecurity && def.Security.Kind != InsertNone {
		layers = insertSecurity(layers, def.Security)
		if !slices.Contains(imports, SecurityIdentifier) {
			imports = append(imports, SecurityIdentifier)
		}
	}
	if !slices.Contains(imports, FormatterIdentifier) {
		imports = append(imports, FormatterIdentifier)
	}

	return Preset{ProjectType: pt, Imports: imports, Layers: layers}
}

func insertSecurity(layers []Layer, rule SecurityInsertion) []Layer {
	at := len(layers)
	switch rule.Kind {
	case InsertBeforeFormatter:
		if i := slices.IndexFunc(layers, func(l Layer) bool { return l.Identifier == FormatterIdentifier }); i >= 0 {
			at = i
		}
	case InsertBeforeTypeScript:
		if i := slices.IndexFunc(layers, func(l Layer) bool { return l.Identifier == typeScriptIdentifier }); i >= 0 {
			at = i
		}
	case InsertAtIndex:
		if rule.Index >= 0 && rule.Index <= len(layers) {
			at = rule.Index
		}
	}
	return slices.Insert(layers, at, plain(SecurityIdentifier))
}

// FragmentIdentifiers returns the imports served by the kitium fragment
// module, in import order.
func (p Preset) FragmentIdentifiers() []string {
	var out []string
	for _, id := range p.Imports {
		if id != FormatterIdentifier {
			out = append(out, id)
		}
	}
	return out
}

// LayerIdentifiers returns the identifier each layer references, in order.
func (p Preset) LayerIdentifiers() []string {
	out := make([]string, len(p.Layers))
	for i, l := range p.Layers {
		out[i] = l.Identifier
	}
	return out
}

func cloneLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		l.Files = slices.Clone(l.Files)
		out[i] = l
	}
	return out
}
