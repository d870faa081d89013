// Package migrate converts a project's existing ESLint, TSLint and Prettier
// configuration into the shared presets, keeping the project's own rules.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/kitium-ai/lint/internal/classify"
	"github.com/kitium-ai/lint/internal/fragments"
	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/preset"
	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/render"
	"github.com/kitium-ai/lint/internal/scaffold"
	"github.com/kitium-ai/lint/internal/types"
)

// Questions asked before each family is migrated. MIGRATE_AUTO_YES and
// MIGRATE_AUTO_NO answer every question containing "Migrate".
const (
	QuestionESLint   = "Migrate ESLint configuration?"
	QuestionTSLint   = "Migrate TSLint configuration?"
	QuestionPrettier = "Migrate Prettier configuration?"
)

// ErrUnknownProjectType is returned when an explicit project type is not
// one of the supported labels.
var ErrUnknownProjectType = errors.New("unknown project type")

// Asker answers the per-family questions.
type Asker interface {
	YesNo(question string, def bool) (bool, error)
}

// Options configures a migration run.
type Options struct {
	// Starts are the directories the project root search begins from.
	Starts []string
	Asker  Asker
	// ProjectType skips classification when set.
	ProjectType string
	Security    bool
	Writer      *scaffold.Writer
	Out         io.Writer
	Logger      *slog.Logger
}

// Report describes what a migration did.
type Report struct {
	Root        string
	Detected    project.DetectedConfigs
	ProjectType types.ProjectType
	// Migrated lists the families the user agreed to migrate.
	Migrated []types.Tool
	Written  []string
	Backups  []string
	Warnings []fragments.Violation
}

// Skipped reports whether nothing was migrated.
func (r *Report) Skipped() bool {
	return len(r.Migrated) == 0
}

type runner struct {
	opts   Options
	report *Report
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	gray   func(a ...interface{}) string
	cyan   func(a ...interface{}) string
}

// Run migrates the configuration of the project found from opts.Starts.
// A missing project root is fatal; finding nothing to migrate is not.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Writer == nil {
		opts.Writer = scaffold.NewWriter(opts.Out, false, opts.Logger)
	}
	if opts.ProjectType != "" {
		if _, ok := preset.LookupProjectType(opts.ProjectType); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProjectType, opts.ProjectType)
		}
	}

	root, err := project.FindRoot(opts.Starts, project.SelfPackageName)
	if err != nil {
		return nil, fmt.Errorf("could not find project root (%s): %w", project.MarkerFile, err)
	}
	opts.Logger.Debug("project root located", "root", root)

	r := &runner{
		opts:   opts,
		report: &Report{Root: root, Detected: project.DetectExistingConfigs(root)},
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		gray:   color.New(color.FgHiBlack).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
	}
	if err := r.run(ctx); err != nil {
		return nil, err
	}
	return r.report, nil
}

func (r *runner) run(ctx context.Context) error {
	out := r.opts.Out
	detected := r.report.Detected

	fmt.Fprintf(out, "\n%s\n\n", r.cyan("kitium-lint migration"))
	if !detected.Any() {
		fmt.Fprintf(out, "%s No existing ESLint, TSLint, or Prettier configurations found.\n", r.gray("→"))
		fmt.Fprintf(out, "  Run %s to create fresh configurations.\n\n", r.cyan("kitium-lint setup"))
		return nil
	}
	r.printDetected()

	var eslint, tslint, prettier bool
	var err error
	if detected.ModernFlat != "" || detected.LegacyRC != "" {
		if eslint, err = r.opts.Asker.YesNo(QuestionESLint, false); err != nil {
			return err
		}
	}
	if detected.StyleDialect != "" {
		if tslint, err = r.opts.Asker.YesNo(QuestionTSLint, false); err != nil {
			return err
		}
	}
	if detected.Formatter != "" {
		if prettier, err = r.opts.Asker.YesNo(QuestionPrettier, false); err != nil {
			return err
		}
	}

	if !eslint && !tslint && !prettier {
		fmt.Fprintf(out, "\n%s Migration skipped.\n\n", r.gray("→"))
		return nil
	}
	fmt.Fprintf(out, "\nMigrating configurations...\n\n")

	steps := []struct {
		enabled bool
		tool    types.Tool
		fn      func() error
	}{
		{eslint, types.ToolESLint, r.migrateESLint},
		{tslint, types.ToolTSLint, r.migrateTSLint},
		{prettier, types.ToolPrettier, r.migratePrettier},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.fn(); err != nil {
			return err
		}
		r.report.Migrated = append(r.report.Migrated, step.tool)
	}

	r.printNextSteps()
	return nil
}

func (r *runner) printDetected() {
	d := r.report.Detected
	fmt.Fprintln(r.opts.Out, "Found existing configurations:")
	rows := []struct {
		label string
		path  string
	}{
		{"ESLint (flat config)", d.ModernFlat},
		{"ESLint (legacy)", d.LegacyRC},
		{"TSLint", d.StyleDialect},
		{"Prettier", d.Formatter},
	}
	for _, row := range rows {
		if row.path != "" {
			fmt.Fprintf(r.opts.Out, "  %s %s: %s\n", r.green("✓"), row.label, filepath.Base(row.path))
		}
	}
	fmt.Fprintln(r.opts.Out)
}

func (r *runner) migrateESLint() error {
	d := r.report.Detected
	var custom legacy.Customization
	source := d.ModernFlat

	if source != "" {
		fmt.Fprintf(r.opts.Out, "%s Processing ESLint flat config...\n", r.gray("→"))
		fmt.Fprintf(r.opts.Out, "  %s Please manually review and merge your flat config rules.\n", r.yellow("⚠"))
	} else {
		source = d.LegacyRC
		fmt.Fprintf(r.opts.Out, "%s Processing ESLint legacy config...\n", r.gray("→"))
		custom = legacy.ExtractESLint(r.parse(source))
		r.checkCritical(custom, filepath.Base(source))
	}

	pt := r.projectType(custom.Extends)
	p := preset.Build(string(pt), preset.Options{IncludeSecurity: r.opts.Security})
	r.opts.Logger.Debug("preset built", "project_type", pt, "layers", len(p.Layers), "security", r.opts.Security)

	return r.replace(source, project.FlatConfigFile, render.MigratedESLint(custom, p))
}

func (r *runner) migrateTSLint() error {
	source := r.report.Detected.StyleDialect
	fmt.Fprintf(r.opts.Out, "%s Processing TSLint config...\n", r.gray("→"))

	content, err := render.MigratedTSLint(legacy.ExtractTSLint(r.parse(source)))
	if err != nil {
		return err
	}
	return r.replace(source, project.StyleConfigFile, content)
}

func (r *runner) migratePrettier() error {
	source := r.report.Detected.Formatter
	fmt.Fprintf(r.opts.Out, "%s Processing Prettier config...\n", r.gray("→"))

	content := render.MigratedPrettier(legacy.ExtractPrettier(r.parse(source)))
	return r.replace(source, project.FormatterConfigFile, content)
}

// parse reads a legacy config. Failures degrade to an empty config.
func (r *runner) parse(path string) map[string]any {
	raw, err := legacy.ParseFile(path)
	if err != nil {
		r.opts.Logger.Warn("could not parse config, continuing without its settings", "path", path, "error", err)
		fmt.Fprintf(r.opts.Out, "  %s Could not parse %s, its settings are not carried over\n", r.yellow("⚠"), filepath.Base(path))
		return nil
	}
	return raw
}

func (r *runner) checkCritical(custom legacy.Customization, source string) {
	violations := fragments.CheckCriticalRules(custom.Rules, source)
	for i, o := range custom.Overrides {
		violations = append(violations, fragments.CheckCriticalRules(o.Rules, fmt.Sprintf("%s overrides[%d]", source, i))...)
	}
	for _, v := range violations {
		r.opts.Logger.Warn("critical rule disabled", "rule", v.Rule, "source", v.Source)
		fmt.Fprintf(r.opts.Out, "  %s %s\n", r.yellow("⚠"), v)
	}
	r.report.Warnings = append(r.report.Warnings, violations...)
}

func (r *runner) projectType(extends any) types.ProjectType {
	if r.opts.ProjectType != "" {
		pt, _ := preset.LookupProjectType(r.opts.ProjectType)
		r.report.ProjectType = pt
		return pt
	}

	var deps project.Dependencies
	if m, err := project.ReadManifest(r.report.Root); err == nil {
		deps = m.Deps
	} else {
		r.opts.Logger.Debug("no readable manifest for classification", "error", err)
	}
	pt := classify.Classify(deps, extends)
	r.report.ProjectType = pt
	fmt.Fprintf(r.opts.Out, "  %s Detected project type: %s\n", r.gray("→"), pt.DisplayName())
	return pt
}

// replace backs up source, then writes content to name in the root. When
// source is the target itself the backup happens as part of the write.
func (r *runner) replace(source, name, content string) error {
	target := filepath.Join(r.report.Root, name)
	w := r.opts.Writer

	if source != "" && source != target {
		if backup, ok := w.Backup(source); ok {
			r.report.Backups = append(r.report.Backups, backup)
		}
	}

	backup, outcome, err := w.Replace(target, []byte(content))
	if backup != "" {
		r.report.Backups = append(r.report.Backups, backup)
	}
	if err != nil {
		return err
	}
	switch outcome {
	case scaffold.Created, scaffold.Updated, scaffold.Planned:
		r.report.Written = append(r.report.Written, target)
	case scaffold.Unchanged:
		fmt.Fprintf(r.opts.Out, "%s %s is already up to date\n", r.green("✓"), name)
	}
	fmt.Fprintln(r.opts.Out)
	return nil
}

func (r *runner) printNextSteps() {
	out := r.opts.Out
	if r.opts.Writer.DryRun {
		fmt.Fprintf(out, "%s Dry run complete, no files were changed.\n\n", r.green("✓"))
		return
	}
	fmt.Fprintf(out, "%s Migration complete!\n\n", r.green("✓"))
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Review the migrated configs")
	fmt.Fprintln(out, "  2. Test your project: npm run lint")
	fmt.Fprintln(out, "  3. The original configs are backed up with .backup timestamps")
	fmt.Fprintln(out)
}
