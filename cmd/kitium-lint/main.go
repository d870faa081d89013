// Command kitium-lint scaffolds and migrates lint and format configuration
// for JavaScript and TypeScript projects.
package main

import (
	"os"

	"github.com/kitium-ai/lint/internal/diagnostics"
)

func main() {
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	ctx := diagnostics.Context{WorkDir: workDir}
	if cmd != nil && cmd != rootCmd {
		ctx.Command = cmd.Name()
	}
	if settings != nil {
		ctx.LifecycleEvent = settings.LifecycleEvent
	} else {
		ctx.LifecycleEvent = os.Getenv("npm_lifecycle_event")
	}
	if ctx.WorkDir == "" {
		ctx.WorkDir, _ = os.Getwd()
	}

	diagnostics.Report(os.Stderr, err, ctx)
	os.Exit(1)
}
