package types

import (
	"fmt"
	"time"
)

// ProjectType is a canonical project-type label. Presets, the classifier and
// the setup wizard all speak in these labels.
type ProjectType string

// Project types
const (
	ProjectNode      ProjectType = "node"
	ProjectReact     ProjectType = "react"
	ProjectNextJS    ProjectType = "nextjs"
	ProjectVue       ProjectType = "vue"
	ProjectAngular   ProjectType = "angular"
	ProjectSvelte    ProjectType = "svelte"
	ProjectVanillaJS ProjectType = "vanilla-js"
	ProjectVanillaTS ProjectType = "vanilla-ts"
)

// DefaultProjectType is used whenever a label cannot be recognized.
const DefaultProjectType = ProjectNode

// AllProjectTypes returns every canonical label in display order.
func AllProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectNode,
		ProjectReact,
		ProjectNextJS,
		ProjectVue,
		ProjectAngular,
		ProjectSvelte,
		ProjectVanillaJS,
		ProjectVanillaTS,
	}
}

// IsValid checks if the project type value is valid
func (p ProjectType) IsValid() bool {
	switch p {
	case ProjectNode, ProjectReact, ProjectNextJS, ProjectVue,
		ProjectAngular, ProjectSvelte, ProjectVanillaJS, ProjectVanillaTS:
		return true
	}
	return false
}

// DisplayName returns the label shown in prompts and reports.
func (p ProjectType) DisplayName() string {
	switch p {
	case ProjectNode:
		return "Node.js"
	case ProjectReact:
		return "React"
	case ProjectNextJS:
		return "Next.js"
	case ProjectVue:
		return "Vue"
	case ProjectAngular:
		return "Angular"
	case ProjectSvelte:
		return "Svelte"
	case ProjectVanillaJS:
		return "Vanilla JavaScript"
	case ProjectVanillaTS:
		return "Vanilla TypeScript"
	}
	return string(p)
}

// Dialect identifies a configuration file format this tool can detect.
type Dialect string

// Dialects
const (
	DialectModernFlat Dialect = "eslint-flat"
	DialectLegacyRC   Dialect = "eslintrc"
	DialectStyle      Dialect = "tslint"
	DialectFormatter  Dialect = "prettier"
)

// Tool is a tool the setup wizard can enable.
type Tool string

// Tools
const (
	ToolESLint   Tool = "eslint"
	ToolTSLint   Tool = "tslint"
	ToolPrettier Tool = "prettier"
)

// AllTools returns the tools in prompt order.
func AllTools() []Tool {
	return []Tool{ToolESLint, ToolTSLint, ToolPrettier}
}

// SetupState records the answers of a completed setup run. It is written once
// to the consumer project root and read back on every later run.
type SetupState struct {
	ID              string        `json:"id" validate:"required,uuid"`
	Tools           map[Tool]bool `json:"tools" validate:"required"`
	ProjectType     ProjectType   `json:"projectType" validate:"required,oneof=node react nextjs vue angular svelte vanilla-js vanilla-ts"`
	IncludeSecurity bool          `json:"includeSecurity"`
	CreatedAt       time.Time     `json:"createdAt" validate:"required"`
}

// Enabled reports whether the given tool was switched on.
func (s *SetupState) Enabled(tool Tool) bool {
	if s == nil || s.Tools == nil {
		return false
	}
	return s.Tools[tool]
}

// String returns a human-readable representation of the state
func (s SetupState) String() string {
	return fmt.Sprintf("SetupState{ProjectType: %s, ESLint: %t, TSLint: %t, Prettier: %t, Security: %t, CreatedAt: %s}",
		s.ProjectType, s.Tools[ToolESLint], s.Tools[ToolTSLint], s.Tools[ToolPrettier],
		s.IncludeSecurity, s.CreatedAt.Format(time.RFC3339))
}
