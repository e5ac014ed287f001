package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/task-cli/internal/model"
)

const maxDescription = 60

// TaskLine is the plain one-line rendering of a task.
func TaskLine(t model.Task) string {
	return fmt.Sprintf("ID: %d, Description: %s, Status: %s, Created: %s, Updated: %s",
		t.ID, t.Description, t.Status, model.FormatTime(t.CreatedAt), model.FormatTime(t.UpdatedAt))
}

// Summary is the header line used above task tables and in browse.
func (c *Console) Summary(counts map[model.Status]int, total int) string {
	th := c.theme
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		c.outR.NewStyle().Bold(true).Foreground(th.Title).Render("Tasks"),
		c.Style(th.Muted).Render(th.BoxTodo), counts[model.StatusTodo],
		c.Style(th.Pending).Render(th.BoxInProgress), counts[model.StatusInProgress],
		c.Style(th.Success).Render(th.BoxDone), counts[model.StatusDone],
		c.Style(th.Accent).Render("Total"), total,
	)
}

// TaskTable renders tasks as a bordered table.
func (c *Console) TaskTable(tasks []model.Task) string {
	th := c.theme
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			truncate(t.Description, maxDescription),
			th.Box(t.Status) + " " + string(t.Status),
			model.FormatTime(t.CreatedAt),
			model.FormatTime(t.UpdatedAt),
		})
	}
	header := c.outR.NewStyle().Bold(true).Foreground(th.Accent).Padding(0, 1)
	cell := c.outR.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(th.Border).
		BorderStyle(c.outR.NewStyle().Foreground(th.Muted)).
		Headers("ID", "DESCRIPTION", "STATUS", "CREATED", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 && row >= 0 && row < len(tasks) {
				return cell.Foreground(th.StatusColor(tasks[row].Status))
			}
			return cell
		})
	return tbl.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
