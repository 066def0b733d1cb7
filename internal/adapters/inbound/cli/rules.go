package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/application"
)

func newRulesCmd() *cobra.Command {
	var (
		path       string
		rulesPath  string
		strictKeys bool
		jsonOutput bool
		writePath  string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the effective rule set and where each key came from",
		Long: "Resolve the effective rules for a workspace (built-in defaults, the\n" +
			"repo-local " + application.LocalRulesPath + " overrides, and an explicit\n" +
			"--rules file) and print each key with its provenance. The resolved set\n" +
			"can be written back out with --write; resolving that file again yields\n" +
			"the same effective rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			resolution, err := application.ResolveRules(config.New(), rulesPath, absPath, strictKeys)
			if err != nil {
				return err
			}

			if writePath != "" {
				data, err := yaml.Marshal(resolution.Rules)
				if err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				if err := os.WriteFile(writePath, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", writePath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "effective rules written to %s\n", writePath)
				return nil
			}

			if jsonOutput {
				return renderJSON(cmd, map[string]any{
					"rules":      resolution.Rules,
					"provenance": resolution.Provenance,
					"warnings":   resolution.Warnings,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Effective rule provenance:")
			for _, line := range resolution.ProvenanceLines() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", line)
			}
			for _, w := range resolution.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Workspace whose rules to resolve")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Explicit rule file (overrides repo-local rules)")
	cmd.Flags().BoolVar(&strictKeys, "strict-keys", false, "Fail on unknown rule-file keys")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules and provenance as JSON")
	cmd.Flags().StringVar(&writePath, "write", "", "Write the effective rule set to this file")

	return cmd
}
