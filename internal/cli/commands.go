package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/store/memstore"
	"github.com/idilsaglam/task-cli/internal/tasks"
	"github.com/idilsaglam/task-cli/internal/ui"
)

// -------------- subcommands ----------------

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new task",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return usage("usage: " + appName + ` add "Task description"`)
			}
			task, err := a.svc.Add(args[0])
			if err != nil {
				return err
			}
			a.console.Success(fmt.Sprintf("Task added successfully (ID: %d)", task.ID))
			return nil
		},
	}
}

func (a *app) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <description>",
		Short: "Replace a task's description",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hint := "usage: " + appName + ` update <id> "New description"`
			if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
				return usage(hint)
			}
			id, err := parseID("update", args[0])
			if err != nil {
				return err
			}
			_, err = a.svc.Update(id, args[1])
			switch {
			case errors.Is(err, tasks.ErrNotFound):
				a.console.Notice(fmt.Sprintf("Task %d not found", id))
				return nil
			case err != nil:
				return err
			}
			a.console.Success(fmt.Sprintf("Task %d updated successfully", id))
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove every task with the given id",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage("usage: " + appName + " delete <id>")
			}
			id, err := parseID("delete", args[0])
			if err != nil {
				return err
			}
			if _, err := a.svc.Delete(id); err != nil {
				return err
			}
			a.console.Success(fmt.Sprintf("Task %d deleted successfully", id))
			return nil
		},
	}
}

func (a *app) markCmd(name, short string, status model.Status) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usage("usage: " + appName + " " + name + " <id>")
			}
			id, err := parseID(name, args[0])
			if err != nil {
				return err
			}
			_, err = a.svc.Mark(id, status)
			switch {
			case errors.Is(err, tasks.ErrNotFound):
				a.console.Notice(fmt.Sprintf("Task %d not found", id))
				return nil
			case err != nil:
				return err
			}
			a.console.Success(fmt.Sprintf("Task %d marked as %s", id, status))
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list [status]",
		Short: "List tasks, optionally only those with the given status",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter string
			if len(args) > 0 {
				filter = args[0]
			}
			switch format {
			case "plain", "table", "json":
			default:
				return usage(fmt.Sprintf("list: unknown format %q (want plain, table or json)", format))
			}
			all, err := a.svc.List("")
			if err != nil {
				return err
			}
			shown := tasks.Filter(all, filter)
			switch format {
			case "json":
				enc := json.NewEncoder(a.console.Out())
				enc.SetIndent("", "  ")
				return enc.Encode(shown)
			case "table":
				a.printTable(all, shown)
				return nil
			}
			for _, t := range shown {
				a.console.Println(ui.TaskLine(t))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "plain", "output format: plain|table|json")
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := a.store.Load()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			// Edits go to memory; the file is written once, on quit.
			mem := memstore.New(loaded...)
			changed, err := a.browse(tasks.New(mem, a.serviceOptions()...), a.console)
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			if !changed {
				return nil
			}
			edited, err := mem.Load()
			if err != nil {
				return err
			}
			if err := a.store.Save(edited); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			a.console.OK("saved")
			return nil
		},
	}
}

// -------------- helpers --------------

func parseID(cmd, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, usage(cmd + ": not a number: " + arg)
	}
	return id, nil
}

func (a *app) printTable(all, shown []model.Task) {
	counts := tasks.Counts(all)
	th := a.console.Theme()
	lines := []string{
		a.console.Summary(counts, len(all)),
		a.console.Style(th.Muted).Render(ui.ProgressBar(counts[model.StatusDone], len(all), 28)),
		"",
	}
	if len(shown) == 0 {
		lines = append(lines, a.console.Style(th.Muted).Render("no tasks"))
	} else {
		lines = append(lines, a.console.TaskTable(shown))
	}
	a.console.Panel(lines)
}
