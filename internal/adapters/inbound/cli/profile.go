package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/domain"
)

func newProfileCmd() *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the detected capability profile of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			profile := detector.New().Detect(absPath)

			if jsonOutput {
				return renderJSON(cmd, profile)
			}

			flags := []struct {
				name string
				set  bool
			}{
				{domain.CapValidators, profile.HasValidators},
				{domain.CapSchemas, profile.HasSchemas},
				{domain.CapTaxonomies, profile.HasTaxonomies},
				{domain.CapMetaFile, profile.HasMetaFile},
				{domain.CapDerivedSummary, profile.HasDerivedSummary},
				{domain.CapLocalRules, profile.HasLocalRules},
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile for %s:\n", profile.Root)
			for _, f := range flags {
				mark := "absent"
				if f.set {
					mark = "present (" + profile.Evidence[f.name] + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-21s %s\n", f.name, mark)
			}

			if len(profile.Evidence) == 0 {
				// No capability evidence at all usually means the wrong directory.
				fmt.Fprintln(cmd.OutOrStdout(), "no capability markers found; is this a workspace root?")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Workspace to inspect")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output profile as JSON")

	return cmd
}
