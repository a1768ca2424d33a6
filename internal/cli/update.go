package cli

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/catalog"
	"github.com/glorpus-work/hymod/pkg/errors"
	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var (
		all         bool
		versionSpec string
		channel     string
	)

	cmd := &cobra.Command{
		Use:   "update [ID]",
		Short: "Update installed mods",
		Long: `Update an installed mod to the newest version published by the provider it
was installed from. With --all every installed mod is checked.

--version moves a single mod to a specific version instead, which may also be
an older one.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := catalog.Selector{Spec: versionSpec}
			if channel != "" {
				sel.Channel = model.ParseReleaseChannel(channel)
			}
			if all {
				if versionSpec != "" {
					return fmt.Errorf("--version cannot be combined with --all")
				}
				return runUpdateAll(cmd, sel)
			}
			return runUpdate(cmd, args[0], sel)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Update every installed mod")
	cmd.Flags().StringVar(&versionSpec, "version", "", "Version id, label or constraint to move to")
	cmd.Flags().StringVar(&channel, "channel", "", "Only consider versions from this channel (release, beta, alpha)")

	return cmd
}

func runUpdate(cmd *cobra.Command, id string, sel catalog.Selector) error {
	a, err := loadApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	updated, err := a.updateOne(cmd.Context(), id, sel)
	if err != nil {
		return err
	}
	if !updated {
		logger.Info("Already up to date", logger.Fields{"id": id})
	}
	return nil
}

func runUpdateAll(cmd *cobra.Command, sel catalog.Selector) error {
	a, err := loadApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ids := installedIDs(a.store.Manifest())
	if len(ids) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No mods installed")
		return nil
	}

	var (
		mu      sync.Mutex
		failed  []error
		updated int
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(a.cfg.Settings.MaxConcurrentLookups, 1))
	for _, id := range ids {
		g.Go(func() error {
			ok, err := a.updateOne(ctx, id, sel)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, err)
			} else if ok {
				updated++
			}
			// One failing mod must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("Update finished", logger.Fields{
		"checked": len(ids),
		"updated": updated,
		"failed":  len(failed),
	})
	return errors.Join(failed...)
}

// updateOne moves id to the version sel picks, through the provider recorded
// in its manifest entry, and reports whether a different version was installed.
func (a *app) updateOne(ctx context.Context, id string, sel catalog.Selector) (bool, error) {
	_, entry, ok := manifest.Lookup(a.store.Manifest(), id)
	if !ok {
		return false, errors.Op("update", id, errors.ErrNotLocallyInstalled)
	}
	client, err := a.registry.Client(entry.Provider)
	if err != nil {
		return false, err
	}

	item, err := client.GetItem(ctx, id)
	if err != nil {
		return false, err
	}
	version, err := pickVersion(ctx, client, item, sel)
	if err != nil {
		return false, errors.Op("update", id, err)
	}
	if version.ID == entry.InstalledVersionID {
		return false, nil
	}

	if err := a.orch.Update(ctx, item, version); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", item.Name, err)
	}
	logger.Success(fmt.Sprintf("Updated %s from %s to %s", item.Name, entry.InstalledVersionLabel, version.Label),
		logger.Fields{"id": id})
	return true, nil
}

func installedIDs(m model.Manifest) []string {
	seen := make(map[string]struct{}, len(m))
	ids := make([]string, 0, len(m))
	for _, entry := range m {
		if _, dup := seen[entry.ProviderItemID]; dup {
			continue
		}
		seen[entry.ProviderItemID] = struct{}{}
		ids = append(ids, entry.ProviderItemID)
	}
	sort.Strings(ids)
	return ids
}
