// Package classify guesses a project's type from its declared dependencies
// and, failing that, from a legacy lint config's extends field.
package classify

import (
	"fmt"
	"strings"

	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/types"
)

type marker struct {
	keyword string
	label   types.ProjectType
}

// extendsMarkers are checked in order against the lower-cased extends value.
var extendsMarkers = []marker{
	{"angular", types.ProjectAngular},
	{"svelte", types.ProjectSvelte},
	{"react", types.ProjectReact},
	{"next", types.ProjectNextJS},
	{"vue", types.ProjectVue},
}

// Classify returns the project type for the given dependencies and legacy
// extends value (a string, a list, or nil). It never fails.
func Classify(deps project.Dependencies, legacyExtends any) types.ProjectType {
	if pt, ok := FromDependencies(deps); ok {
		return pt
	}
	if pt, ok := FromExtends(legacyExtends); ok {
		return pt
	}
	return types.DefaultProjectType
}

// FromDependencies matches framework markers in dependency declarations.
// A meta-framework layered on a component framework wins over the bare one.
func FromDependencies(deps project.Dependencies) (types.ProjectType, bool) {
	switch {
	case deps.Has("@angular/core"):
		return types.ProjectAngular, true
	case deps.Has("svelte"):
		return types.ProjectSvelte, true
	case deps.Has("react"):
		if deps.Has("next") {
			return types.ProjectNextJS, true
		}
		return types.ProjectReact, true
	case deps.Has("vue"):
		return types.ProjectVue, true
	}
	return "", false
}

// FromExtends matches marker keywords in a legacy extends value.
func FromExtends(extends any) (types.ProjectType, bool) {
	s := strings.ToLower(stringify(extends))
	if s == "" {
		return "", false
	}
	for _, m := range extendsMarkers {
		if strings.Contains(s, m.keyword) {
			return m.label, true
		}
	}
	return "", false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
