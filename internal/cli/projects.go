package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/ui"
)

func newProjectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects",
		Args:    usageArgs(cobra.NoArgs),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return listProjects(cmd, a)
		}),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List projects",
		Args:  usageArgs(cobra.NoArgs),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return listProjects(cmd, a)
		}),
	})
	cmd.AddCommand(newProjectAddCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a project and all of its todos",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := projectAt(a, args[0])
			if err != nil {
				return err
			}
			if err := a.RemoveProject(p.ID); err != nil {
				return err
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed "+p.Name)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "use <index>",
		Short: "Make a project current",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := projectAt(a, args[0])
			if err != nil {
				return err
			}
			if err := a.SelectProject(p.ID); err != nil {
				return err
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "switched to "+p.Name)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rename <index> <name...>",
		Short: "Rename a project",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := projectAt(a, args[0])
			if err != nil {
				return err
			}
			if err := a.RenameProject(p.ID, strings.Join(args[1:], " ")); err != nil {
				return inputErr(err)
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "renamed to "+p.Name)
			return nil
		}),
	})
	return cmd
}

func newProjectAddCommand(opts *RootOptions) *cobra.Command {
	var use bool
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a project",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			p, err := a.CreateProject(strings.Join(args, " "))
			if err != nil {
				return inputErr(err)
			}
			if use {
				if err := a.SelectProject(p.ID); err != nil {
					return err
				}
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "created "+p.Name)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&use, "use", false, "make the new project current")
	return cmd
}

func listProjects(cmd *cobra.Command, a *app.App) error {
	projects := a.Projects()
	count := fmt.Sprintf("%d projects", len(projects))
	if len(projects) == 1 {
		count = "1 project"
	}
	lines := ui.ProjectLines(projects, a.Registry().CurrentProjectID())
	lines = append(lines, "", ui.Current().Muted.Render(count))
	fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
	return nil
}

func projectAt(a *app.App, arg string) (*model.Project, error) {
	projects := a.Projects()
	i, err := parseIndex(arg, len(projects))
	if err != nil {
		var ue *usageError
		if errors.As(err, &ue) && ue.hint != "" {
			ue.hint = "Hint: run `tasks project ls` to see valid indexes"
		}
		return nil, err
	}
	return projects[i], nil
}
