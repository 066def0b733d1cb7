package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/registry"
	"github.com/driftguard/driftguard/internal/domain"
)

func newContextCmd() *cobra.Command {
	var (
		path         string
		registryPath string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "context [project-id]",
		Short: "Look up a project in the shared registry",
		Long: "Resolve a project from the workspace registry, by id or by the\n" +
			"current path. With no argument, lists every registered project.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			regPath := registryPath
			if regPath == "" {
				regPath = filepath.Join(absPath, filepath.FromSlash(registry.DefaultPath))
			}

			reg, err := registry.Load(config.New(), regPath)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				projects := reg.All()
				if jsonOutput {
					return renderJSON(cmd, projects)
				}
				for _, p := range projects {
					fmt.Fprintln(cmd.OutOrStdout(), formatProject(p))
				}
				return nil
			}

			id := args[0]
			project, ok := reg.LookupID(id)
			if !ok {
				project, ok = reg.LookupPath(id)
			}
			if !ok {
				return &domain.NotFoundError{Path: "registry entry " + id}
			}
			if jsonOutput {
				return renderJSON(cmd, project)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatProject(project))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Workspace containing the registry")
	cmd.Flags().StringVar(&registryPath, "registry", "", "Explicit registry file (default: "+registry.DefaultPath+" under --path)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func formatProject(p domain.Project) string {
	line := fmt.Sprintf("%-20s %-10s %s", p.ID, p.Status, p.Path)
	if len(p.Owners) > 0 {
		line += "  (" + strings.Join(p.Owners, ", ") + ")"
	}
	return line
}
