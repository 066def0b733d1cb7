package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/adapters/outbound/gitinfo"
	"github.com/driftguard/driftguard/internal/adapters/outbound/scanner"
	"github.com/driftguard/driftguard/internal/adapters/outbound/tui"
	"github.com/driftguard/driftguard/internal/application"
	"github.com/driftguard/driftguard/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		path       string
		rulesPath  string
		strict     bool
		strictKeys bool
		keepGoing  bool
		verbose    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validate [validator...]",
		Short: "Run registered validators against a workspace",
		Long: "Run one or more registered validators (or all of them) against a\n" +
			"workspace. The run stops at the first failing validator unless\n" +
			"--keep-going is set. Available validators: " +
			strings.Join(application.RegisteredValidators(), ", ") + ".",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewValidateService(
				config.New(),
				detector.New(),
				scanner.New(),
				gitinfo.New(),
			)

			summary, err := svc.Run(absPath, application.RunOptions{
				Names:      args,
				RulesPath:  rulesPath,
				Strict:     strict,
				StrictKeys: strictKeys,
				KeepGoing:  keepGoing,
				Verbose:    verbose,
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRunSummary(summary))
			}

			if !summary.Passed() {
				return &domain.ValidationFailedError{Msg: fmt.Sprintf(
					"validation failed: %s", strings.Join(summary.FailedValidators(), ", "))}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Workspace to validate")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Explicit rule file (overrides repo-local rules)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&strictKeys, "strict-keys", false, "Fail on unknown rule-file keys")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Run all validators instead of stopping at the first failure")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output run summary as JSON")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
