// Package cli is the tasks command tree.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/tui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Store      string
	LogLevel   string

	now func() time.Time
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{now: time.Now}

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "tasks - projects and todos in the terminal",
		Long: `Organize todos into projects. Run without arguments for the
interactive view, or use the subcommands below for scripting.

Every change is saved immediately.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return tui.Run(a)
		}),
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err, hint: "Hint: run `" + c.CommandPath() + " --help` for usage"}
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasks/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory holding saved state")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "", "storage backend (json|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newUICommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newEditCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newDoneCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newProjectCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newResetCommand(opts))

	return cmd
}

func newUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive view",
		Args:  usageArgs(cobra.NoArgs),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return tui.Run(a)
		}),
	}
}
