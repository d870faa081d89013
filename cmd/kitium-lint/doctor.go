package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kitium-ai/lint/internal/fragments"
	"github.com/kitium-ai/lint/internal/project"
	"github.com/kitium-ai/lint/internal/setup"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project's lint setup",
	Long: `Run checks to diagnose common lint setup issues.

This command checks for:
- A package.json project root
- An eslint version that supports flat config
- Existing configurations that can be migrated
- Stored setup answers
- Installed extensions for the optional rule fragments

Only a missing project root is an error; everything else is reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Fprintf(out, "Running kitium-lint checks...\n\n")
		var warnings []string

		// Check 1: Project root
		fmt.Fprintf(out, "%s Project root\n", cyan("→"))
		root, err := findRoot(cmd)
		if err != nil {
			fmt.Fprintf(out, "  %s No project root found\n", red("✗"))
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", green("✓"), root)

		// Check 2: ESLint version
		fmt.Fprintf(out, "%s ESLint\n", cyan("→"))
		manifest, err := project.ReadManifest(root)
		if err != nil {
			return err
		}
		info, ok := project.ESLintVersion(manifest.Deps)
		switch {
		case info.Declared == "":
			warnings = append(warnings, "eslint is not a dependency")
			fmt.Fprintf(out, "  %s eslint is not declared in %s\n", yellow("⚠"), project.MarkerFile)
		case !ok:
			fmt.Fprintf(out, "  %s eslint %s (version not recognized)\n", yellow("⚠"), info.Declared)
		case info.FlatConfig:
			fmt.Fprintf(out, "  %s eslint %s supports flat config\n", green("✓"), info.Declared)
		default:
			warnings = append(warnings, "eslint is older than 9")
			fmt.Fprintf(out, "  %s eslint %s predates flat config, upgrade to 9 or later\n", yellow("⚠"), info.Declared)
		}

		// Check 3: Existing configurations
		fmt.Fprintf(out, "%s Existing configurations\n", cyan("→"))
		detected := project.DetectExistingConfigs(root)
		if !detected.Any() {
			fmt.Fprintf(out, "  %s None found\n", green("✓"))
		}
		if detected.ModernFlat != "" {
			fmt.Fprintf(out, "  %s %s\n", green("✓"), filepath.Base(detected.ModernFlat))
		}
		for _, legacyPath := range []string{detected.LegacyRC, detected.StyleDialect} {
			if legacyPath == "" {
				continue
			}
			warnings = append(warnings, filepath.Base(legacyPath)+" can be migrated")
			fmt.Fprintf(out, "  %s %s (run kitium-lint migrate)\n", yellow("⚠"), filepath.Base(legacyPath))
		}
		if detected.Formatter != "" {
			fmt.Fprintf(out, "  %s %s\n", green("✓"), filepath.Base(detected.Formatter))
		}

		// Check 4: Setup state
		fmt.Fprintf(out, "%s Setup answers\n", cyan("→"))
		state, err := setup.LoadState(root)
		switch {
		case err != nil:
			warnings = append(warnings, "setup state is invalid")
			fmt.Fprintf(out, "  %s %v (run kitium-lint setup --reset)\n", yellow("⚠"), err)
		case state == nil:
			fmt.Fprintf(out, "  %s Not configured yet (run kitium-lint setup)\n", yellow("⚠"))
		default:
			fmt.Fprintf(out, "  %s %s\n", green("✓"), state)
		}

		// Check 5: Optional fragments
		fmt.Fprintf(out, "%s Optional fragments\n", cyan("→"))
		resolver := fragments.NewResolver(fragments.NodeModulesLocator{Root: root}, logger)
		results, err := resolver.ResolveAll(cmd.Context(), fragments.Names())
		if err != nil {
			return err
		}
		for _, res := range results {
			if !res.Fragment.Optional() {
				continue
			}
			if res.Available {
				fmt.Fprintf(out, "  %s %s\n", green("✓"), res.Name())
				continue
			}
			fmt.Fprintf(out, "  %s %s needs %v\n", yellow("⚠"), res.Name(), res.Missing)
		}

		fmt.Fprintln(out)
		if len(warnings) > 0 {
			fmt.Fprintf(out, "%s %d warning(s)\n", yellow("⚠"), len(warnings))
			return nil
		}
		fmt.Fprintf(out, "%s All checks passed\n", green("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
