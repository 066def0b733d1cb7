package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driftguard",
		Short: "Workspace compliance and drift detection",
		Long: "Driftguard checks a repository against its declared rules and detects drift\n" +
			"between recorded state (capabilities, snapshot, derived summary) and what is\n" +
			"actually on disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newDriftCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newContextCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		// Errors are silenced on the command tree; the exit code alone
		// is not enough for a user to act on.
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// ExitCode maps an Execute error onto the process exit contract:
// 2 for configuration or parse problems, 1 for validation or drift
// failures and anything else.
func ExitCode(err error) int {
	if err == nil {
		return domain.ExitOK
	}
	var (
		notFound  *domain.NotFoundError
		parseErr  *domain.ParseError
		configErr *domain.ConfigError
	)
	if errors.As(err, &notFound) || errors.As(err, &parseErr) || errors.As(err, &configErr) {
		return domain.ExitConfigOrParse
	}
	return domain.ExitFailure
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show driftguard version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "driftguard %s (%s)\n", version, commit)
			return nil
		},
	}
}
