// Package setup runs the setup wizard: it asks which tools to configure,
// remembers the answers in the project root and scaffolds the config files.
package setup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kitium-ai/lint/internal/classify"
	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/preset"
	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/render"
	"github.com/kitium-ai/lint/internal/scaffold"
	"github.com/kitium-ai/lint/internal/types"
)

// Questions asked by the wizard. Environment overrides match on substrings
// of these, so the tool names must stay in the text.
const (
	QuestionESLint         = "Set up ESLint flat configuration?"
	QuestionTSLint         = "Set up TSLint configuration?"
	QuestionPrettier       = "Set up Prettier configuration?"
	QuestionSecurity       = "Include Security rules in the lint preset?"
	QuestionProjectType    = "What type of project is this?"
	QuestionReplaceScripts = "Replace existing package.json scripts?"
)

// Phase is where a run of the wizard ended up.
type Phase int

// Phases
const (
	NotConfigured Phase = iota
	Prompting
	Configured
	ConfiguredOffline
	ReportOnly
)

func (p Phase) String() string {
	switch p {
	case Prompting:
		return "prompting"
	case Configured:
		return "configured"
	case ConfiguredOffline:
		return "configured (offline)"
	case ReportOnly:
		return "report only"
	}
	return "not configured"
}

// Asker answers wizard questions.
type Asker interface {
	YesNo(question string, def bool) (bool, error)
	Choice(question string, options []string, def int) (int, error)
	Interactive() bool
	HasOverrides() bool
}

// Options configures a wizard run.
type Options struct {
	Root   string
	Asker  Asker
	Writer *scaffold.Writer
	Out    io.Writer
	Logger *slog.Logger
	Now    func() time.Time
}

// Result describes what a run did.
type Result struct {
	Phase   Phase
	State   types.SetupState
	Files   []string
	Backups []string
	Scripts project.ScriptChanges
}

// Run executes the wizard in opts.Root.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Writer == nil {
		opts.Writer = scaffold.NewWriter(opts.Out, false, opts.Logger)
	}

	manifest, err := project.ReadManifest(opts.Root)
	if err != nil {
		opts.Logger.Debug("no readable manifest", "root", opts.Root, "error", err)
	}

	state, err := LoadState(opts.Root)
	if err != nil {
		return nil, err
	}

	result := &Result{Phase: NotConfigured}
	if state != nil {
		result.Phase = ReportOnly
		result.State = *state
		printState(opts.Out, *state)
	} else {
		result.Phase = Prompting
		answers, err := ask(opts, manifest)
		if err != nil {
			return nil, err
		}
		if err := SaveState(opts.Root, answers); err != nil {
			return nil, err
		}
		result.State = answers
		result.Phase = Configured
		if !opts.Asker.Interactive() || opts.Asker.HasOverrides() {
			result.Phase = ConfiguredOffline
		}
		opts.Logger.Info("setup state saved", "path", StatePath(opts.Root), "phase", result.Phase.String())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := generate(opts, manifest, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ask runs the question sequence.
func ask(opts Options, manifest *project.Manifest) (types.SetupState, error) {
	tools := make(map[types.Tool]bool, 3)
	var err error

	if tools[types.ToolESLint], err = opts.Asker.YesNo(QuestionESLint, true); err != nil {
		return types.SetupState{}, err
	}
	if tools[types.ToolTSLint], err = opts.Asker.YesNo(QuestionTSLint, false); err != nil {
		return types.SetupState{}, err
	}
	if tools[types.ToolPrettier], err = opts.Asker.YesNo(QuestionPrettier, true); err != nil {
		return types.SetupState{}, err
	}

	security := false
	if tools[types.ToolESLint] {
		if security, err = opts.Asker.YesNo(QuestionSecurity, true); err != nil {
			return types.SetupState{}, err
		}
	}

	detected := detectProjectType(opts, manifest)
	all := types.AllProjectTypes()
	options := make([]string, len(all))
	def := 0
	for i, pt := range all {
		options[i] = pt.DisplayName()
		if pt == detected {
			def = i
		}
	}
	idx, err := opts.Asker.Choice(QuestionProjectType, options, def)
	if err != nil {
		return types.SetupState{}, err
	}

	return NewState(tools, all[idx], security, opts.Now()), nil
}

// MatchProjectType matches a free-text answer against the project type
// options: first by label, then through the alias table.
func MatchProjectType(value string, options []string) (int, bool) {
	for i, option := range options {
		if strings.EqualFold(option, value) {
			return i, true
		}
	}
	pt, ok := preset.LookupProjectType(value)
	if !ok {
		return 0, false
	}
	for i, option := range options {
		if option == pt.DisplayName() || option == string(pt) {
			return i, true
		}
	}
	return 0, false
}

func detectProjectType(opts Options, manifest *project.Manifest) types.ProjectType {
	var deps project.Dependencies
	if manifest != nil {
		deps = manifest.Deps
	}

	var extends any
	if path := project.DetectExistingConfigs(opts.Root).LegacyRC; path != "" {
		raw, err := legacy.ParseFile(path)
		if err != nil {
			opts.Logger.Debug("legacy config not used for detection", "path", path, "error", err)
		} else {
			extends = legacy.ExtractESLint(raw).Extends
		}
	}
	return classify.Classify(deps, extends)
}

func printState(w io.Writer, state types.SetupState) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s kitium-lint is already configured (%s)\n\n", green("✓"), StateFile)
	for _, tool := range types.AllTools() {
		fmt.Fprintf(w, "  %-10s %s\n", toolName(tool)+":", cyan(enabledText(state.Enabled(tool))))
	}
	fmt.Fprintf(w, "  %-10s %s\n", "Security:", cyan(enabledText(state.IncludeSecurity)))
	fmt.Fprintf(w, "  %-10s %s\n", "Project:", cyan(state.ProjectType.DisplayName()))
	fmt.Fprintf(w, "  %-10s %s\n\n", "Since:", cyan(state.CreatedAt.Format(time.RFC3339)))
	fmt.Fprintf(w, "%s Run %s to answer the questions again\n\n", gray("→"), gray("kitium-lint setup --reset"))
}

func toolName(tool types.Tool) string {
	switch tool {
	case types.ToolESLint:
		return "ESLint"
	case types.ToolTSLint:
		return "TSLint"
	case types.ToolPrettier:
		return "Prettier"
	}
	return string(tool)
}

func enabledText(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// generate writes the config files the state asks for.
func generate(opts Options, manifest *project.Manifest, result *Result) error {
	state := result.State
	root := opts.Root
	w := opts.Writer

	record := func(path string, outcome scaffold.Outcome) {
		if outcome == scaffold.Created || outcome == scaffold.Updated || outcome == scaffold.Planned {
			result.Files = append(result.Files, path)
		}
	}

	if state.Enabled(types.ToolESLint) {
		p := preset.Build(string(state.ProjectType), preset.Options{IncludeSecurity: state.IncludeSecurity})
		path := filepath.Join(root, project.FlatConfigFile)
		outcome, err := w.WriteIfAbsent(path, []byte(render.FreshESLint(p)))
		if err != nil {
			return err
		}
		record(path, outcome)

		// Flat config carries its own ignores.
		ignore := filepath.Join(root, project.DeprecatedIgnoreFile)
		if project.Exists(ignore) {
			if backup, ok := w.Backup(ignore); ok {
				result.Backups = append(result.Backups, backup)
			}
		}
	}

	if state.Enabled(types.ToolPrettier) {
		for _, f := range []struct {
			name    string
			content string
		}{
			{project.FormatterConfigFile, render.FreshPrettier()},
			{project.FormatterIgnoreFile, render.IgnoreFile()},
		} {
			path := filepath.Join(root, f.name)
			outcome, err := w.WriteIfAbsent(path, []byte(f.content))
			if err != nil {
				return err
			}
			record(path, outcome)
		}
	}

	if state.Enabled(types.ToolTSLint) {
		content, err := render.FreshTSLint()
		if err != nil {
			return err
		}
		path := filepath.Join(root, project.StyleConfigFile)
		outcome, err := w.WriteIfAbsent(path, []byte(content))
		if err != nil {
			return err
		}
		record(path, outcome)
	}

	if manifest == nil {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(opts.Out, "%s No readable %s, skipping scripts\n", yellow("⚠"), project.MarkerFile)
		return nil
	}
	return updateScripts(opts, manifest, result)
}

// scriptsFor picks the default scripts of the enabled tools.
func scriptsFor(state types.SetupState) []project.Script {
	var out []project.Script
	for _, s := range project.DefaultScripts() {
		switch {
		case strings.HasPrefix(s.Command, "eslint") && state.Enabled(types.ToolESLint),
			strings.HasPrefix(s.Command, "prettier") && state.Enabled(types.ToolPrettier):
			out = append(out, s)
		}
	}
	return out
}

func updateScripts(opts Options, manifest *project.Manifest, result *Result) error {
	scripts := scriptsFor(result.State)
	if len(scripts) == 0 {
		return nil
	}

	replace := false
	if conflicts := manifest.ScriptConflicts(scripts); len(conflicts) > 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(opts.Out, "\n%s Found existing lint/format scripts in your %s:\n", yellow("⚠"), project.MarkerFile)
		for _, c := range conflicts {
			fmt.Fprintf(opts.Out, "   %q: %q\n", c.Name, c.Current)
		}
		if result.Phase != ReportOnly {
			var err error
			if replace, err = opts.Asker.YesNo(QuestionReplaceScripts, false); err != nil {
				return err
			}
		}
	}

	changes, content, err := manifest.ApplyScripts(scripts, replace)
	if err != nil {
		return err
	}
	result.Scripts = changes
	if !changes.Changed() {
		return nil
	}

	if _, err := opts.Writer.Write(manifest.Path, content); err != nil {
		return err
	}
	green := color.New(color.FgGreen).SprintFunc()
	for _, name := range changes.Added {
		fmt.Fprintf(opts.Out, "%s Added %q script\n", green("✓"), name)
	}
	for _, name := range changes.Updated {
		fmt.Fprintf(opts.Out, "%s Updated %q script\n", green("✓"), name)
	}
	return nil
}
