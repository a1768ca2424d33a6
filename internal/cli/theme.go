package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/pkg/model"
)

// NewThemeCmd creates the theme command.
func NewThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.ThemeDark), string(model.ThemeLight), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runTheme(cmd, arg)
		},
	}
}

func runTheme(cmd *cobra.Command, arg string) error {
	out := cmd.OutOrStdout()
	a, err := loadApp(out)
	if err != nil {
		return err
	}

	theme := a.store.Snapshot().Theme
	switch strings.ToLower(arg) {
	case "":
	case "toggle":
		if theme, err = a.store.ToggleTheme(); err != nil {
			return err
		}
	case string(model.ThemeDark), string(model.ThemeLight):
		theme = model.Theme(strings.ToLower(arg))
		if err := a.store.SetTheme(theme); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown theme %q (valid: dark, light, toggle)", arg)
	}

	if a.structured() {
		return printStructured(out, a.cfg.Settings.OutputFormat, map[string]string{"theme": string(theme)})
	}
	_, _ = fmt.Fprintln(out, theme)
	return nil
}
