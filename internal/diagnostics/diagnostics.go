// Package diagnostics turns a fatal error into a remediation report.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/setup"
)

// Category groups errors that share a remediation.
type Category int

// Categories
const (
	Unknown Category = iota
	Permission
	NotFound
	Parse
	Evaluation
	NoProject
)

func (c Category) String() string {
	switch c {
	case Permission:
		return "permission"
	case NotFound:
		return "not-found"
	case Parse:
		return "parse"
	case Evaluation:
		return "evaluation"
	case NoProject:
		return "no-project"
	}
	return "unknown"
}

// chainDepth is how many levels of the error chain the report shows.
const chainDepth = 3

const ruleWidth = 70

// Context is the environment a failing command ran in.
type Context struct {
	Command        string
	WorkDir        string
	LifecycleEvent string
}

// Classify picks the category of err. Known sentinel errors are matched
// first; otherwise the message is searched for telltale substrings.
func Classify(err error) Category {
	if err == nil {
		return Unknown
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, project.ErrNoProjectRoot):
		return NoProject
	case errors.Is(err, fs.ErrPermission):
		return Permission
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, legacy.ErrUnsupportedSyntax),
		errors.Is(err, legacy.ErrNotObject),
		errors.Is(err, setup.ErrInvalidState),
		errors.As(err, &syntaxErr):
		return Parse
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "eacces", "permission denied"):
		return Permission
	case containsAny(msg, "enoent", "no such file"):
		return NotFound
	case containsAny(msg, "json", "parse", "syntax"):
		return Parse
	case containsAny(msg, "eval", "expression"):
		return Evaluation
	case containsAny(msg, "no project", "not find"):
		return NoProject
	}
	return Unknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Chain returns the messages of err and the errors it wraps, outermost
// first, at most n of them.
func Chain(err error, n int) []string {
	var lines []string
	for err != nil && len(lines) < n {
		lines = append(lines, err.Error())
		err = errors.Unwrap(err)
	}
	return lines
}

// Report writes the diagnostic report for err to w.
func Report(w io.Writer, err error, ctx Context) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	rule := strings.Repeat("━", ruleWidth)
	title := "ERROR"
	if ctx.Command != "" {
		title = strings.ToUpper(ctx.Command) + " ERROR"
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "%s %s\n", red("✗"), red(title))
	fmt.Fprintf(w, "%s\n\n", rule)
	fmt.Fprintf(w, "Error: %v\n\n", err)

	fmt.Fprintln(w, cyan("Diagnostic Information"))
	fmt.Fprintf(w, "  Go runtime:      %s\n", runtime.Version())
	fmt.Fprintf(w, "  Directory:       %s\n", orUnknown(ctx.WorkDir))
	fmt.Fprintf(w, "  Lifecycle event: %s\n\n", orUnknown(ctx.LifecycleEvent))

	if r, ok := remediations[Classify(err)]; ok {
		fmt.Fprintf(w, "%s %s\n\n", yellow("⚠"), yellow(r.title))
		fmt.Fprintf(w, "  %s\n\n", r.summary)
		if len(r.causes) > 0 {
			fmt.Fprintln(w, "  Common causes:")
			for _, c := range r.causes {
				fmt.Fprintf(w, "  • %s\n", c)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "  Try these solutions:")
		for i, s := range r.solutions {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s.text)
			if s.command != "" {
				fmt.Fprintf(w, "     %s\n", gray(s.command))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, cyan("Tips"))
	fmt.Fprintf(w, "  • Run non-interactively:  %s\n", gray("MIGRATE_AUTO_YES=true kitium-lint migrate"))
	fmt.Fprintf(w, "  • Preview changes first:  %s\n", gray("kitium-lint migrate --dry-run"))
	fmt.Fprintf(w, "  • Test after migration:   %s\n\n", gray("npm run lint -- --debug"))

	fmt.Fprintln(w, cyan("Error chain"))
	for _, line := range Chain(err, chainDepth) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "\n  Report an issue: https://github.com/kitium-ai/lint/issues\n")
	fmt.Fprintf(w, "%s\n\n", rule)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

type solution struct {
	text    string
	command string
}

type remediation struct {
	title     string
	summary   string
	causes    []string
	solutions []solution
}

var remediations = map[Category]remediation{
	Permission: {
		title:   "Permission Issue Detected",
		summary: "kitium-lint does not have permission to write to this directory.",
		solutions: []solution{
			{"Check directory permissions:", "ls -la . | head"},
			{"Fix ownership if needed:", "sudo chown -R $USER:$USER ."},
			{"Try from a different directory with write access", ""},
		},
	},
	NotFound: {
		title:   "Configuration File Not Found",
		summary: "A config file could not be found.",
		causes: []string{
			"Config file was deleted or moved",
			"Running from wrong directory",
		},
		solutions: []solution{
			{"List available configs:", "ls -la .eslintrc* .prettierrc* tslint.json"},
			{"Run from the correct directory:", "cd /path/to/your/project && kitium-lint migrate"},
		},
	},
	Parse: {
		title:   "Configuration Parse Error",
		summary: "Invalid syntax or format in your config file.",
		causes: []string{
			"Malformed JSON (missing quotes, commas, etc.)",
			"Script config that computes its value instead of exporting a literal",
		},
		solutions: []solution{
			{"Validate JSON config:", "cat .eslintrc.json | python -m json.tool"},
			{"Check for syntax errors:", "node -c .eslintrc.js"},
			{"Fix the config file manually before migration", ""},
		},
	},
	Evaluation: {
		title:   "Configuration Evaluation Error",
		summary: "Could not evaluate your config file.",
		solutions: []solution{
			{"Ensure your config is valid JavaScript:", "node -c eslint.config.js"},
			{"Check for relative imports that need absolute paths", ""},
			{"Remove any non-JSON properties if using JSON format", ""},
		},
	},
	NoProject: {
		title:   "Project Not Found",
		summary: "Could not locate a project. A package.json file is required in the directory tree.",
		solutions: []solution{
			{"Verify package.json exists:", "ls -la package.json"},
			{"Create one if missing:", "npm init -y"},
		},
	},
}
