package main

import (
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/migrate"
	"github.com/kitium-ai/lint/internal/prompt"
	"github.com/kitium-ai/lint/internal/scaffold"
)

var (
	migrateYes         bool
	migrateDryRun      bool
	migrateProjectType string
	migrateSecurity    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate existing ESLint, TSLint and Prettier configs onto the shared presets",
	Long: `Convert a project's existing lint and format configuration.

Legacy .eslintrc files become an eslint.config.js that layers the project's
rules, overrides, parser options and settings on top of the preset for the
detected project type. tslint.json and Prettier configs are rewritten the same
way. Every replaced file is kept next to the original as
<name>.backup.<timestamp>.

Critical rules switched off by the old config are reported as warnings.

Set MIGRATE_AUTO_YES=true or MIGRATE_AUTO_NO=true to answer every question.

Example:
  kitium-lint migrate
  kitium-lint migrate --yes --project-type nextjs --security
  kitium-lint migrate --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		answer := settings.MigrateAnswer()
		if migrateYes {
			yes := true
			answer = &yes
		}
		p, err := prompt.New(prompt.Config{
			Out:       out,
			Overrides: []prompt.Override{{Match: "Migrate", Value: answer}},
		})
		if err != nil {
			return err
		}
		defer p.Close()

		report, err := migrate.Run(cmd.Context(), migrate.Options{
			Starts:      projectStarts(cmd),
			Asker:       p,
			ProjectType: migrateProjectType,
			Security:    migrateSecurity,
			Writer:      scaffold.NewWriter(out, migrateDryRun, logger),
			Out:         out,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		logger.Info("migration finished",
			"root", report.Root,
			"written", len(report.Written),
			"backups", len(report.Backups),
			"warnings", len(report.Warnings))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateYes, "yes", "y", false, "Migrate every detected configuration without asking")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show a diff of the changes without writing anything")
	migrateCmd.Flags().StringVar(&migrateProjectType, "project-type", "", "Project type to build the preset for (default: detected)")
	migrateCmd.Flags().BoolVar(&migrateSecurity, "security", false, "Include the security layer in the migrated preset")
	rootCmd.AddCommand(migrateCmd)
}
