package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/archive"
	"github.com/glorpus-work/hymod/pkg/config"
	"github.com/glorpus-work/hymod/pkg/settings"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	var (
		extract string
		dest    string
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the contents of a mod package",
		Long: `Show the manifest and file list of a mod package. FILE is a path or the name
of a file in the mods folder. --extract copies one entry out of the package.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if extract != "" {
				return runExtract(cmd, args[0], extract, dest)
			}
			return runInspect(cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&extract, "extract", "", "Entry to extract from the package")
	cmd.Flags().StringVar(&dest, "to", "", "Destination path for --extract (defaults to the entry's base name)")

	return cmd
}

// resolvePackage looks for a bare filename in the mods folder when it does
// not exist relative to the working directory.
func resolvePackage(cfg *config.Config, file string) string {
	if _, err := os.Stat(file); err == nil || filepath.Base(file) != file {
		return file
	}
	settingsPath, err := cfg.GetSettingsPath()
	if err != nil {
		return file
	}
	root, err := settings.Load(settingsPath, nil).InstallRoot()
	if err != nil {
		return file
	}
	return filepath.Join(root, file)
}

func runInspect(cmd *cobra.Command, file string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	info, err := archive.NewManager().Inspect(cmd.Context(), resolvePackage(cfg, file))
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", file, err)
	}
	if cfg.Settings.OutputFormat != FormatText {
		return printStructured(out, cfg.Settings.OutputFormat, info)
	}

	tw := newTable(out)
	_, _ = fmt.Fprintf(tw, "Package:\t%s\n", info.Path)
	if m := info.Manifest; m != nil {
		_, _ = fmt.Fprintf(tw, "Name:\t%s\n", m.Name)
		_, _ = fmt.Fprintf(tw, "Version:\t%s\n", m.Version)
		if m.Group != "" {
			_, _ = fmt.Fprintf(tw, "Group:\t%s\n", m.Group)
		}
		for _, author := range m.Authors {
			_, _ = fmt.Fprintf(tw, "Author:\t%s\n", author.Name)
		}
		if m.ServerVersion != "" {
			_, _ = fmt.Fprintf(tw, "Server version:\t%s\n", m.ServerVersion)
		}
		if m.Description != "" {
			_, _ = fmt.Fprintf(tw, "Description:\t%s\n", truncate(m.Description, MaxSummaryLength*2))
		}
	} else {
		_, _ = fmt.Fprintf(tw, "Manifest:\tnone\n")
	}
	_, _ = fmt.Fprintf(tw, "Files:\t%d (%s uncompressed)\n", len(info.Entries), humanize.IBytes(info.TotalSize()))
	_ = tw.Flush()

	_, _ = fmt.Fprintln(out)
	tw = newTable(out)
	for _, e := range info.Entries {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", e.Name, humanize.IBytes(uint64(max(e.Size, 0))))
	}
	return tw.Flush()
}

func runExtract(cmd *cobra.Command, file, entry, dest string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dest == "" {
		dest = filepath.Base(entry)
	}
	if err := archive.NewManager().ExtractFile(cmd.Context(), resolvePackage(cfg, file), entry, dest); err != nil {
		return fmt.Errorf("failed to extract %s: %w", entry, err)
	}
	logger.Success("Extracted "+entry, logger.Fields{"to": dest})
	return nil
}
