package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/pkg/manifest"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info ID",
		Short: "Show details of a mod",
		Long:  "Show the catalog record of a mod together with its local install status.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
}

func runInfo(cmd *cobra.Command, id string) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	client, err := a.activeClient()
	if err != nil {
		return err
	}

	item, err := client.GetItem(cmd.Context(), id)
	if err != nil {
		return err
	}
	row := newItemRow(item, a.orch.View(item))

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, row)
	}

	tw := newTable(out)
	_, _ = fmt.Fprintf(tw, "Name:\t%s\n", row.Name)
	_, _ = fmt.Fprintf(tw, "ID:\t%s (%s)\n", row.ID, item.Provider.DisplayName())
	_, _ = fmt.Fprintf(tw, "Authors:\t%s\n", item.AuthorList())
	_, _ = fmt.Fprintf(tw, "Downloads:\t%s\n", humanize.Comma(int64(row.Downloads)))
	if len(row.Categories) > 0 {
		_, _ = fmt.Fprintf(tw, "Categories:\t%s\n", strings.Join(row.Categories, ", "))
	}
	if row.WebsiteURL != "" {
		_, _ = fmt.Fprintf(tw, "Website:\t%s\n", row.WebsiteURL)
	}
	if row.Latest != nil {
		_, _ = fmt.Fprintf(tw, "Latest:\t%s (%s, %s)\n", row.Latest.Label, row.Latest.Channel, row.Latest.Filename)
	}
	status := row.Status
	if row.LocalVersion != "" {
		status += " (" + row.LocalVersion + ", " + row.LocalFilename + ")"
	}
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", status)
	_ = tw.Flush()

	if row.Summary != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", row.Summary)
	}
	return nil
}

// NewVersionsCmd creates the versions command.
func NewVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions ID",
		Short: "List the published versions of a mod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(cmd, args[0])
		},
	}
}

func runVersions(cmd *cobra.Command, id string) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	client, err := a.activeClient()
	if err != nil {
		return err
	}

	versions, err := client.ListVersions(cmd.Context(), id)
	if err != nil {
		return err
	}

	rows := make([]*versionRow, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, newVersionRow(v))
	}
	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, rows)
	}
	if len(rows) == 0 {
		_, _ = fmt.Fprintf(out, "No versions published for %s\n", id)
		return nil
	}

	installed, _, _ := manifest.Lookup(a.store.Manifest(), id)
	tw := newTable(out)
	_, _ = fmt.Fprintln(tw, "ID\tVERSION\tCHANNEL\tUPLOADED\tSIZE\tFILE\t")
	for _, r := range rows {
		size := "-"
		if r.Size > 0 {
			size = humanize.IBytes(r.Size)
		}
		marker := ""
		if installed != "" && r.Filename == installed {
			marker = "installed"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, truncate(r.Label, MaxNameLength), r.Channel, r.UploadedAt, size, r.Filename, marker)
	}
	_ = tw.Flush()
	return nil
}
