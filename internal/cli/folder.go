package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/settings"
)

// NewFolderCmd creates the folder command with subcommands.
func NewFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage the game folder",
		Long:  "Show or set the game folder mods are installed into",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the game folder and mods folder",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runFolderShow(cmd)
			},
		},
		&cobra.Command{
			Use:   "set PATH",
			Short: "Set the game folder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runFolderSet(cmd, args[0])
			},
		},
	)

	return cmd
}

func runFolderShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	folder := a.store.Snapshot().GameFolder
	root, rootErr := a.store.InstallRoot()

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, map[string]string{
			"game_folder":  folder,
			"install_root": root,
		})
	}
	if rootErr != nil {
		_, _ = fmt.Fprintln(out, "No game folder set. Use 'hymod folder set PATH'.")
		return nil
	}
	tw := newTable(out)
	_, _ = fmt.Fprintf(tw, "Game folder:\t%s\n", folder)
	_, _ = fmt.Fprintf(tw, "Mods folder:\t%s\n", root)
	return tw.Flush()
}

func runFolderSet(cmd *cobra.Command, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", path, err)
	}
	a, err := loadApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := a.store.SetGameFolder(abs); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	root, err := settings.InstallRootFor(abs)
	if err != nil {
		return err
	}
	logger.Success("Game folder set", logger.Fields{"game_folder": abs, "mods_folder": root})
	return nil
}
