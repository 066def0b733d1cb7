package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/adapters/outbound/gitinfo"
	"github.com/driftguard/driftguard/internal/adapters/outbound/report"
	"github.com/driftguard/driftguard/internal/adapters/outbound/scanner"
	"github.com/driftguard/driftguard/internal/adapters/outbound/tui"
	"github.com/driftguard/driftguard/internal/application"
	"github.com/driftguard/driftguard/internal/domain"
)

func newDriftCmd() *cobra.Command {
	var (
		path       string
		rulesPath  string
		level      int
		strict     bool
		strictKeys bool
		verbose    bool
		jsonOutput bool
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Detect drift between recorded and observed workspace state",
		Long: "Compare what the workspace declares (validator manifests, snapshot,\n" +
			"derived summary) against what is actually on disk. Level 1 checks\n" +
			"inventory, level 2 adds cross-document consistency, level 3 adds\n" +
			"placement and orphan analysis. Each level includes the ones below it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewDriftService(
				config.New(),
				detector.New(),
				scanner.New(),
				gitinfo.New(),
			)

			rep, err := svc.Run(absPath, application.DriftOptions{
				Level:      level,
				RulesPath:  rulesPath,
				StrictKeys: strictKeys,
				Verbose:    verbose,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDriftReport(rep))
			}

			writer := report.New()
			dir := outDir
			if dir == "" {
				dir = writer.EvidenceDir(absPath)
			}
			if dir != "" {
				artifact := filepath.Join(dir, fmt.Sprintf("drift_l%d.json", level))
				if err := writer.WriteJSON(artifact, rep); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not write %s: %v\n", artifact, err)
				} else if verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", artifact)
				}
			}

			threshold := domain.SeverityCritical
			if strict {
				threshold = domain.SeverityMajor
			}
			if rep.HasAtLeast(threshold) {
				return &domain.ValidationFailedError{Msg: fmt.Sprintf(
					"drift findings at or above %s severity", threshold)}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Workspace to analyze")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Explicit rule file (overrides repo-local rules)")
	cmd.Flags().IntVar(&level, "level", 1, "Drift level: 1 inventory, 2 consistency, 3 placement")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on major findings, not just critical")
	cmd.Flags().BoolVar(&strictKeys, "strict-keys", false, "Fail on unknown rule-file keys")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output drift report as JSON")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the JSON report artifact (default: evidence dir if present)")

	return cmd
}
