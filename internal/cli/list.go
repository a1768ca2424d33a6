package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/pkg/manifest"
	"github.com/glorpus-work/hymod/pkg/model"
)

// Status shown for package files hymod did not install.
const statusUntracked = "untracked"

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		filter  string
		offline bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List mods in the mods folder",
		Long: `List every mod package in the game's mods folder.

Files installed by hymod are refreshed from their catalog so outdated mods are
shown. Other package files are listed with a name and version guessed from the
filename.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, filter, offline)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Fuzzy filter on mod name or filename")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip catalog lookups")

	return cmd
}

func runList(cmd *cobra.Command, filter string, offline bool) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	root, err := a.store.InstallRoot()
	if err != nil {
		return err
	}
	if offline {
		a.scanner.Lookup = nil
	}

	m := a.store.Manifest()
	mods, err := a.scanner.Scan(cmd.Context(), root, m)
	if err != nil {
		return err
	}

	rows := make([]localRow, 0, len(mods))
	for _, mod := range mods {
		if filter != "" && !fuzzy.MatchFold(filter, mod.Item.Name) && !fuzzy.MatchFold(filter, mod.Filename) {
			continue
		}
		rows = append(rows, newLocalRow(mod, m))
	}

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, rows)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(out, "No mods found in %s\n", root)
		return nil
	}

	tw := newTable(out)
	_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tSIZE\tSTATUS\tFILE")
	var total int64
	for _, r := range rows {
		total += r.Size
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			truncate(r.Name, MaxNameLength),
			truncate(r.Version, MaxNameLength),
			humanize.IBytes(uint64(max(r.Size, 0))),
			r.Status,
			r.Filename,
		)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(out, "\n%d mods, %s in %s\n", len(rows), humanize.IBytes(uint64(max(total, 0))), root)
	return nil
}

func newLocalRow(mod model.LocalMod, m model.Manifest) localRow {
	row := localRow{
		Filename: mod.Filename,
		Name:     mod.Item.Name,
		Version:  mod.Item.Latest.Label,
		Size:     mod.Size,
		Tracked:  mod.Tracked,
		Live:     mod.Live,
		Status:   statusUntracked,
	}
	if !mod.Tracked {
		return row
	}

	row.ItemID = mod.Entry.ProviderItemID
	row.Provider = string(mod.Entry.Provider)
	row.Version = mod.Entry.InstalledVersionLabel
	if mod.Live {
		row.Status = manifest.Resolve(m, mod.Item.ID, mod.Item.Latest.ID).Status.String()
	} else {
		row.Status = model.Installed.String()
	}
	return row
}
