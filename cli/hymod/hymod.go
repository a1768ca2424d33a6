package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/cli"
)

var (
	configPath   string
	verbose      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hymod",
		Short: "A mod manager for Hytale",
		Long: `hymod installs, updates and removes Hytale mods from CurseForge or Modtale:
- Catalog: search, info, versions
- Mods folder: install, update, remove, list, prune
- Settings: provider, folder, theme, config, hooks`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json, yaml)")

	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.OutputFormat = &outputFormat

	cmd.AddCommand(
		cli.NewSearchCmd(),
		cli.NewInfoCmd(),
		cli.NewVersionsCmd(),
		cli.NewInstallCmd(),
		cli.NewUpdateCmd(),
		cli.NewRemoveCmd(),
		cli.NewListCmd(),
		cli.NewPruneCmd(),
		cli.NewProviderCmd(),
		cli.NewFolderCmd(),
		cli.NewThemeCmd(),
		cli.NewConfigCmd(),
		cli.NewHooksCmd(),
		cli.NewInspectCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
