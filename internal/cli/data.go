package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/ui"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all projects and todos to stdout",
		Args:  usageArgs(cobra.NoArgs),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return usagef("invalid format %q: must be one of json, yaml", format)
			}
			return a.Export(cmd.OutOrStdout(), format)
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	return cmd
}

func newResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	reset := withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
		if res := a.Reset(); !res.OK() {
			return res.Err
		}
		p, _ := a.CurrentProject()
		ui.OK(cmd.OutOrStdout(), "reset; current project is "+p.Name)
		return nil
	})
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all saved state and start over",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Refuse before loading: Load may seed and write.
			if !yes {
				return &usageError{
					err:  errors.New("reset deletes every project and todo"),
					hint: "Hint: pass --yes to confirm",
				}
			}
			return reset(cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}
