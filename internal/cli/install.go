package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/catalog"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		versionSpec string
		channel     string
	)

	cmd := &cobra.Command{
		Use:   "install ID",
		Short: "Install a mod",
		Long: `Install a mod from the active provider into the game's mods folder.

By default the newest version is installed. --version accepts a version id, an
exact label or a constraint such as ">= 1.2, < 2". Installing over an existing
version of the same mod replaces its file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args[0], versionSpec, channel)
		},
	}

	cmd.Flags().StringVar(&versionSpec, "version", "", "Version id, label or constraint to install")
	cmd.Flags().StringVar(&channel, "channel", "", "Only consider versions from this channel (release, beta, alpha)")

	return cmd
}

func runInstall(cmd *cobra.Command, id, versionSpec, channel string) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	client, err := a.activeClient()
	if err != nil {
		return err
	}
	if err := client.ValidateID(id); err != nil {
		return err
	}

	ctx := cmd.Context()
	item, err := client.GetItem(ctx, id)
	if err != nil {
		return err
	}

	sel := catalog.Selector{Spec: versionSpec}
	if channel != "" {
		sel.Channel = model.ParseReleaseChannel(channel)
	}
	version, err := pickVersion(ctx, client, item, sel)
	if err != nil {
		return err
	}

	if _, entry, ok := manifest.Lookup(a.store.Manifest(), item.ID); ok && entry.InstalledVersionID == version.ID {
		logger.Info("Version already installed", logger.Fields{"id": item.ID, "version": entry.InstalledVersionLabel})
		return nil
	}

	if err := a.orch.Install(ctx, item, version); err != nil {
		return fmt.Errorf("failed to install %s: %w", item.Name, err)
	}
	logger.Success(fmt.Sprintf("Installed %s %s", item.Name, version.Label), logger.Fields{
		"id":   item.ID,
		"file": version.Filename,
	})
	return nil
}

// pickVersion avoids the version listing when the item's latest version is
// what was asked for.
func pickVersion(ctx context.Context, client catalog.Client, item model.CatalogItem, sel catalog.Selector) (model.CatalogVersion, error) {
	if sel.Spec == "" && sel.Channel == "" && item.Latest.HasDownload() {
		return item.Latest, nil
	}
	versions, err := client.ListVersions(ctx, item.ID)
	if err != nil {
		return model.CatalogVersion{}, err
	}
	return catalog.SelectVersion(versions, sel)
}
