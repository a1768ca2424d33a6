package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/manifest"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"uninstall", "rm"},
		Short:   "Remove an installed mod",
		Long: `Remove every file recorded for the mod from the mods folder and drop it from
the installed manifest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, id string) error {
	a, err := loadApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	name := id
	if _, entry, ok := manifest.Lookup(a.store.Manifest(), id); ok && entry.DisplayName != "" {
		name = entry.DisplayName
	}
	if err := a.orch.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	logger.Success("Removed "+name, logger.Fields{"id": id})
	return nil
}
