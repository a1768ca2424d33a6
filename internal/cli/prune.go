package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
)

// NewPruneCmd creates the prune command.
func NewPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Forget installed mods whose files were deleted",
		Long: `Drop manifest entries whose package file no longer exists in the mods
folder, for example after a file was deleted by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrune(cmd)
		},
	}
}

func runPrune(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	root, err := a.store.InstallRoot()
	if err != nil {
		return err
	}

	pruned, err := a.store.Prune(root)
	if err != nil {
		return fmt.Errorf("failed to prune manifest: %w", err)
	}
	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, map[string]any{"pruned": pruned})
	}
	if len(pruned) == 0 {
		_, _ = fmt.Fprintln(out, "Nothing to prune")
		return nil
	}
	for _, filename := range pruned {
		_, _ = fmt.Fprintf(out, "Pruned %s\n", filename)
	}
	logger.Success(fmt.Sprintf("Pruned %d entries", len(pruned)))
	return nil
}
