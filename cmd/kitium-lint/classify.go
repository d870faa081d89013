package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/classify"
	"github.com/kitium-ai/lint/internal/legacy"
	"github.com/kitium-ai/lint/internal/project"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the detected project type",
	Long: `Detect the project type from package.json dependencies, falling back to
the extends field of a legacy .eslintrc config, then to node.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := findRoot(cmd)
		if err != nil {
			return err
		}

		manifest, err := project.ReadManifest(root)
		if err != nil {
			return err
		}

		var extends any
		if path := project.DetectExistingConfigs(root).LegacyRC; path != "" {
			raw, err := legacy.ParseFile(path)
			if err != nil {
				logger.Warn("legacy config ignored", "path", path, "error", err)
			} else {
				extends = legacy.ExtractESLint(raw).Extends
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), classify.Classify(manifest.Deps, extends))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
