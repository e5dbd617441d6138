package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/tasks/internal/app"
	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/ui"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	var group, all bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos of the current project",
		Args:    usageArgs(cobra.NoArgs),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			projects := a.Projects()
			if !all {
				p, ok := a.CurrentProject()
				if !ok {
					return app.ErrNoProject
				}
				projects = []*model.Project{p}
			}

			var lines []string
			for i, p := range projects {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, ui.ProjectHeader(p)...)
				lines = append(lines, "")
				if group {
					lines = append(lines, ui.GroupedTodoLines(p.Todos(), opts.now())...)
				} else {
					lines = append(lines, ui.TodoLines(p.Todos(), opts.now())...)
				}
			}
			lines = append(lines, "")
			lines = append(lines, ui.Current().Muted.Render("Tip: add with `tasks add \"Buy milk\"`"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by pending/done")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every project")
	return cmd
}

// todoFlags binds the optional todo fields to fs.
func todoFlags(fs *pflag.FlagSet, in *app.TodoInput) {
	fs.StringVarP(&in.Description, "description", "d", "", "longer description")
	fs.StringVar(&in.DueDate, "due", "", "due date (YYYY-MM-DD)")
	fs.StringVarP(&in.Priority, "priority", "p", "", "priority ("+priorityChoices()+")")
	fs.StringVarP(&in.Notes, "notes", "n", "", "free-form notes")
}

func priorityChoices() string {
	names := make([]string, 0, 3)
	for _, p := range model.Priorities() {
		names = append(names, p.String())
	}
	return strings.Join(names, "|")
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	var in app.TodoInput
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo to the current project",
		Example: `  tasks add "Buy milk"
  tasks add Pay rent --due 2024-02-01 -p high`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			in.Title = strings.Join(args, " ")
			if _, err := a.AddTodo(in); err != nil {
				return inputErr(err)
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		}),
	}
	todoFlags(cmd.Flags(), &in)
	return cmd
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	var patch app.TodoInput
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change fields of a todo",
		Example: `  tasks edit 2 --title "Buy oat milk"
  tasks edit 2 --due ""`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			t, err := currentTodoAt(a, args[0])
			if err != nil {
				return err
			}
			in := app.InputFromTodo(t)
			changed := 0
			for name, dst := range map[string]*string{
				"title":       &in.Title,
				"description": &in.Description,
				"due":         &in.DueDate,
				"priority":    &in.Priority,
				"notes":       &in.Notes,
			} {
				if f := cmd.Flags().Lookup(name); f.Changed {
					*dst = f.Value.String()
					changed++
				}
			}
			if changed == 0 {
				return usagef("nothing to change: pass at least one of --title, --description, --due, --priority, --notes")
			}
			if err := a.UpdateTodo(t.ID, in); err != nil {
				return inputErr(err)
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		}),
	}
	cmd.Flags().StringVarP(&patch.Title, "title", "t", "", "new title")
	todoFlags(cmd.Flags(), &patch)
	return cmd
}

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show every field of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			t, err := currentTodoAt(a, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(ui.TodoDetail(t, opts.now())))
			return nil
		}),
	}
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle completion of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			t, err := currentTodoAt(a, args[0])
			if err != nil {
				return err
			}
			done, err := a.ToggleTodo(t.ID)
			if err != nil {
				return err
			}
			if err := saved(a); err != nil {
				return err
			}
			if done {
				ui.OK(cmd.OutOrStdout(), "completed")
			} else {
				ui.OK(cmd.OutOrStdout(), "reopened")
			}
			return nil
		}),
	}
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: withApp(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			t, err := currentTodoAt(a, args[0])
			if err != nil {
				return err
			}
			if err := a.RemoveTodo(t.ID); err != nil {
				return err
			}
			if err := saved(a); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		}),
	}
}

func currentTodoAt(a *app.App, arg string) (*model.Todo, error) {
	todos := a.CurrentTodos()
	i, err := parseIndex(arg, len(todos))
	if err != nil {
		return nil, err
	}
	return todos[i], nil
}
