package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hymod/internal/logger"
	"github.com/glorpus-work/hymod/pkg/hooks"
)

// NewHooksCmd creates the hooks command with subcommands.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage lifecycle hook scripts",
		Long: `Lifecycle hooks are Tengo scripts run around installs and removals. They live
in the hooks directory as <type>.tengo, for example pre-install.tengo.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List hook types and which have a script",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runHooksList(cmd)
			},
		},
		&cobra.Command{
			Use:   "init TYPE",
			Short: "Write a starter script for a hook type",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runHooksInit(hooks.HookType(args[0]))
			},
		},
	)

	return cmd
}

func runHooksList(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.GetHooksDir()
	executor, err := hooks.LoadDir(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Settings.OutputFormat != FormatText {
		loaded := make(map[string]bool, len(hooks.HookTypes))
		for _, t := range hooks.HookTypes {
			loaded[string(t)] = executor.HasScript(t)
		}
		return printStructured(out, cfg.Settings.OutputFormat, map[string]any{"dir": dir, "hooks": loaded})
	}

	tw := newTable(out)
	_, _ = fmt.Fprintln(tw, "HOOK\tSCRIPT")
	for _, t := range hooks.HookTypes {
		script := "-"
		if executor.HasScript(t) {
			script = hooks.Path(dir, t)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", t, script)
	}
	return tw.Flush()
}

func runHooksInit(hookType hooks.HookType) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := hooks.WriteTemplate(cfg.GetHooksDir(), hookType)
	if err != nil {
		return err
	}
	logger.Success("Hook script created", logger.Fields{"path": path})
	return nil
}
