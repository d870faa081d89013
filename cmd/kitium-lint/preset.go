package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/preset"
	"github.com/kitium-ai/lint/internal/render"
	"github.com/kitium-ai/lint/internal/types"
)

var (
	presetSecurity bool
	presetRender   bool
)

var presetCmd = &cobra.Command{
	Use:   "preset <project-type>",
	Short: "Show the preset built for a project type",
	Long: `Show the imports and layers of the preset for a project type.

Project types: node, react, nextjs, vue, angular, svelte, vanilla-js,
vanilla-ts. Display names and aliases such as "Next.js" or "typescript" are
accepted; anything else falls back to node.

With --render the complete eslint.config.js is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := preset.Build(args[0], preset.Options{IncludeSecurity: presetSecurity})
		if presetRender {
			fmt.Fprint(cmd.OutOrStdout(), render.FreshESLint(p))
			return nil
		}
		printPreset(cmd.OutOrStdout(), p)
		return nil
	},
}

func printPreset(w io.Writer, p preset.Preset) {
	cyan := color.New(color.FgCyan).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s %s\n\n", cyan("Preset:"), p.ProjectType.DisplayName())
	fmt.Fprintf(w, "Imports:\n")
	for _, id := range p.Imports {
		fmt.Fprintf(w, "  %s\n", id)
	}
	fmt.Fprintf(w, "\nLayers:\n")
	for i, l := range p.Layers {
		name := l.Identifier
		if l.Spread {
			name = "..." + name
		}
		fmt.Fprintf(w, "  %d. %s", i+1, name)
		if len(l.Files) > 0 {
			fmt.Fprintf(w, " %s", gray("files: "+strings.Join(l.Files, ", ")))
		}
		fmt.Fprintln(w)
	}
}

func init() {
	presetCmd.Flags().BoolVar(&presetSecurity, "security", false, "Include the security layer")
	presetCmd.Flags().BoolVar(&presetRender, "render", false, "Print the generated eslint.config.js")
	presetCmd.ValidArgs = projectTypeArgs()
	rootCmd.AddCommand(presetCmd)
}

func projectTypeArgs() []string {
	all := types.AllProjectTypes()
	out := make([]string, len(all))
	for i, pt := range all {
		out[i] = string(pt)
	}
	return out
}
