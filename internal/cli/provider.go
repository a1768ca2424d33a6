package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/model"
)

// NewProviderCmd creates the provider command with subcommands.
func NewProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Manage the active catalog provider",
		Long:  "Show or switch the catalog provider and its API key",
	}

	cmd.AddCommand(
		newProviderShowCmd(),
		newProviderSetCmd(),
	)

	return cmd
}

func newProviderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProviderShow(cmd)
		},
	}
}

func newProviderSetCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Switch the active provider",
		Long: `Switch the active provider (curseforge or modtale). --key sets the API key
used for it; without --key the current key is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProviderSet(cmd, args[0], key, cmd.Flags().Changed("key"))
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key for the provider")

	return cmd
}

func runProviderShow(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	snap := a.store.Snapshot()

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, map[string]any{
			"provider":       string(snap.ActiveProvider),
			"key_configured": snap.Credential != "",
		})
	}

	key := "not set"
	if snap.Credential != "" {
		key = "set"
	}
	tw := newTable(out)
	_, _ = fmt.Fprintf(tw, "Provider:\t%s\n", snap.ActiveProvider.DisplayName())
	_, _ = fmt.Fprintf(tw, "API key:\t%s\n", key)
	return tw.Flush()
}

func runProviderSet(cmd *cobra.Command, name, key string, keyChanged bool) error {
	provider, err := model.ParseProvider(name)
	if err != nil {
		return err
	}
	a, err := loadApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !keyChanged {
		key = a.store.Snapshot().Credential
	}
	if err := a.store.SetProvider(provider, key); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Success("Active provider is now "+provider.DisplayName(), logger.Fields{"key_configured": key != ""})
	return nil
}
