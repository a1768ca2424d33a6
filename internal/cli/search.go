package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/pkg/catalog"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var (
		sortName string
		page     int
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search the active catalog",
		Long: `Search the active provider's catalog for mods.

Without a query the most popular mods are listed. Each result shows whether it
is installed, outdated or not installed locally.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), sortName, page)
		},
	}

	cmd.Flags().StringVar(&sortName, "sort", string(catalog.SortPopularity), "Sort order (relevance, popularity, updated, name)")
	cmd.Flags().IntVar(&page, "page", 1, "Result page, starting at 1")

	return cmd
}

func runSearch(cmd *cobra.Command, query, sortName string, page int) error {
	sortBy, err := catalog.ParseSort(sortName)
	if err != nil {
		return err
	}
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}

	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}
	client, err := a.activeClient()
	if err != nil {
		return err
	}

	result, err := client.Search(cmd.Context(), catalog.Query{
		Text:   query,
		Sort:   sortBy,
		Offset: (page - 1) * catalog.PageSize,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	a.orch.Observe(result.Items)
	rows := make([]itemRow, 0, len(result.Items))
	for _, item := range result.Items {
		rows = append(rows, newItemRow(item, a.orch.View(item)))
	}

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, map[string]any{
			"provider": string(client.Provider()),
			"page":     page,
			"total":    result.Total,
			"items":    rows,
		})
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintf(out, "No mods found matching '%s'\n", query)
		return nil
	}
	printItemTable(out, rows)

	pages := (result.Total + catalog.PageSize - 1) / catalog.PageSize
	_, _ = fmt.Fprintf(out, "\nPage %d of %d (%s results on %s)\n",
		page, max(pages, 1), humanize.Comma(int64(result.Total)), client.Provider().DisplayName())
	return nil
}

func printItemTable(out io.Writer, rows []itemRow) {
	tw := newTable(out)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tAUTHOR\tDOWNLOADS\tLATEST\tSTATUS\tSUMMARY")
	for _, r := range rows {
		latest := "-"
		if r.Latest != nil {
			latest = r.Latest.Label
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			truncate(r.Name, MaxNameLength),
			truncate(strings.Join(r.Authors, ", "), MaxNameLength),
			humanize.Comma(int64(r.Downloads)),
			truncate(latest, MaxNameLength),
			r.Status,
			truncate(r.Summary, MaxSummaryLength),
		)
	}
	_ = tw.Flush()
}
