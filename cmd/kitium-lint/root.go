package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/config"
	"github.com/kitium-ai/lint/internal/project"
)

var (
	// Global flags
	workDir string
	verbose bool
	noColor bool

	// Resolved in PersistentPreRunE
	settings *config.Settings
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kitium-lint",
	Short: "Shared ESLint, TSLint and Prettier configuration for kitium projects",
	Long: `kitium-lint distributes the shared lint and format presets.

It scaffolds eslint.config.js, .prettierrc.js and tslint.json in a project,
migrates existing configurations onto the presets, and reports which optional
rule fragments the project can use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workDir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			workDir = cwd
		}

		s, err := config.Load(workDir)
		if err != nil {
			return err
		}
		settings = s

		if noColor || settings.NoColor {
			color.NoColor = true
		}

		level, err := config.ParseLevel(settings.LogLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		logger.Debug("settings loaded", "dir", workDir, "settings", settings.String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", "", "Directory to start the project search from (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// projectStarts lists the directories the project root search starts from.
// An explicit --dir wins over the package manager's invocation directory.
func projectStarts(cmd *cobra.Command) []string {
	if cmd.Flags().Changed("dir") {
		return []string{workDir}
	}
	return []string{settings.InitCwd, workDir}
}

// findRoot locates the consumer project for a command.
func findRoot(cmd *cobra.Command) (string, error) {
	root, err := project.FindRoot(projectStarts(cmd), project.SelfPackageName)
	if err != nil {
		return "", fmt.Errorf("could not find project root (%s): %w", project.MarkerFile, err)
	}
	logger.Debug("project root located", "root", root)
	return root, nil
}
