package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/config"
	"github.com/kitium-ai/lint/internal/prompt"
	"github.com/kitium-ai/lint/internal/scaffold"
	"github.com/kitium-ai/lint/internal/setup"
)

var setupReset bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure ESLint, TSLint and Prettier for the current project",
	Long: `Ask which tools to configure and scaffold their config files.

Answers are stored in .kitium-lint.json in the project root; later runs print
the stored answers and only fill in missing files. Questions can be answered
ahead of time with SETUP_ESLINT, SETUP_TSLINT, SETUP_PRETTIER, SETUP_SECURITY,
SETUP_REPLACE_SCRIPTS and SETUP_PROJECT_TYPE, or in a .env file.

Existing files are never overwritten.

Example:
  kitium-lint setup
  SETUP_TSLINT=false SETUP_PROJECT_TYPE=react kitium-lint setup
  kitium-lint setup --reset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		root, err := findRoot(cmd)
		if err != nil {
			return err
		}

		if setupReset {
			if err := setup.ResetState(root); err != nil {
				return err
			}
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Fprintf(out, "%s Cleared stored answers\n", gray("→"))
		}

		p, err := prompt.New(setupPrompt(settings.Setup, out))
		if err != nil {
			return err
		}
		defer p.Close()

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(out, "\n%s\n\n", cyan("kitium-lint setup"))

		res, err := setup.Run(cmd.Context(), setup.Options{
			Root:   root,
			Asker:  p,
			Writer: scaffold.NewWriter(out, false, logger),
			Out:    out,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(out, "\n%s Setup %s (%d file(s) written)\n", green("✓"), res.Phase, len(res.Files))
		return nil
	},
}

// setupPrompt maps preset answers onto prompt overrides. Order matters:
// the first set override whose text matches a question wins.
func setupPrompt(answers config.SetupAnswers, out io.Writer) prompt.Config {
	return prompt.Config{
		Out: out,
		Overrides: []prompt.Override{
			{Match: "ESLint", Value: answers.ESLint},
			{Match: "TSLint", Value: answers.TSLint},
			{Match: "Prettier", Value: answers.Prettier},
			{Match: "Security", Value: answers.Security},
			{Match: "scripts", Value: answers.ReplaceScripts},
		},
		Choice:      answers.ProjectType,
		MatchChoice: setup.MatchProjectType,
	}
}

func init() {
	setupCmd.Flags().BoolVar(&setupReset, "reset", false, "Forget stored answers and ask again")
	rootCmd.AddCommand(setupCmd)
}
