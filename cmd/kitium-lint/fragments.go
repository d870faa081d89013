package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/fragments"
)

var (
	fragmentsFile        string
	fragmentsComposition string
)

var fragmentsCmd = &cobra.Command{
	Use:   "fragments",
	Short: "List rule fragments and whether this project can use them",
	Long: `List the rule fragments shipped with kitium-lint.

Optional fragments need extension packages installed in the project; a
fragment whose extensions are missing is listed as unavailable and contributes
no rules.

With --file only the fragments whose patterns match the path are listed.
With --composition only the fragments of that composition are listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := findRoot(cmd)
		if err != nil {
			return err
		}

		names := fragments.Names()
		if fragmentsComposition != "" {
			if names, err = fragments.CompositionFragments(fragments.Composition(fragmentsComposition)); err != nil {
				return err
			}
		}

		resolver := fragments.NewResolver(fragments.NodeModulesLocator{Root: root}, logger)
		results, err := resolver.ResolveAll(cmd.Context(), names)
		if err != nil {
			return err
		}

		if fragmentsFile != "" {
			path := strings.TrimPrefix(fragmentsFile, "./")
			matched := results[:0]
			for _, res := range results {
				if res.Fragment.Matches(path) {
					matched = append(matched, res)
				}
			}
			results = matched
		}

		printResolutions(cmd.OutOrStdout(), results)
		return nil
	},
}

func printResolutions(w io.Writer, results []fragments.Resolution) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	if len(results) == 0 {
		fmt.Fprintf(w, "%s No fragments apply\n", gray("→"))
		return
	}
	for _, res := range results {
		f := res.Fragment
		if res.Available {
			fmt.Fprintf(w, "%s %-16s %3d rules  %s\n", green("✓"), f.Name(), f.RuleCount(), gray(f.Description()))
			continue
		}
		fmt.Fprintf(w, "%s %-16s unavailable, install %s\n", yellow("⚠"), f.Name(), strings.Join(res.Missing, " "))
	}
}

func init() {
	fragmentsCmd.Flags().StringVar(&fragmentsFile, "file", "", "Only list fragments that apply to this path")
	fragmentsCmd.Flags().StringVar(&fragmentsComposition, "composition", "", "Only list fragments of this composition")
	rootCmd.AddCommand(fragmentsCmd)
}
