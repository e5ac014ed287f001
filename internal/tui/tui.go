// Package tui is the interactive task browser.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/tasks"
	"github.com/idilsaglam/task-cli/internal/ui"
)

// listItem adapts a task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Description }
func (i listItem) Description() string { return string(i.task.Status) }
func (i listItem) FilterValue() string { return i.task.Description }

// itemDelegate renders one task per line.
type itemDelegate struct {
	console *ui.Console
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := d.console.Theme()
	box := d.console.Style(th.StatusColor(it.task.Status)).Render(th.Box(it.task.Status))
	id := d.console.Renderer().NewStyle().Faint(true).Render(fmt.Sprintf("%3d", it.task.ID))
	text := it.task.Description
	if it.task.Status == model.StatusDone {
		text = d.console.Renderer().NewStyle().Faint(true).Strikethrough(true).Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = d.console.Renderer().NewStyle().Bold(true).Reverse(true).Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, box, text)
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

var (
	addKey      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	progressKey = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "in-progress"))
	doneKey     = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done"))
	deleteKey   = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete"))
	quitKey     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the Bubble Tea model for the browser. Every action goes
// through the service, so ids and timestamps behave as on the CLI.
type Model struct {
	svc     *tasks.Service
	console *ui.Console

	list list.Model
	ti   textinput.Model

	mode     mode
	editID   int
	inputErr string

	changed bool
	err     error
}

// New loads the collection from svc and builds the browser.
func New(svc *tasks.Service, console *ui.Console) (Model, error) {
	all, err := svc.List("")
	if err != nil {
		return Model{}, err
	}

	l := list.New(toItems(all), itemDelegate{console: console}, 0, 0)
	l.SetSize(80, 24)
	l.Title = console.Summary(tasks.Counts(all), len(all))
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = console.Renderer().NewStyle()
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.DisableQuitKeybindings()

	extra := func() []key.Binding {
		return []key.Binding{addKey, editKey, progressKey, doneKey, deleteKey, quitKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{svc: svc, console: console, list: l, ti: ti}, nil
}

// Run shows the browser until the user quits and reports whether any
// task changed.
func Run(svc *tasks.Service, console *ui.Console, opts ...tea.ProgramOption) (bool, error) {
	m, err := New(svc, console)
	if err != nil {
		return false, err
	}
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return fm.changed, fm.err
}

// Changed reports whether any action modified the collection.
func (m Model) Changed() bool { return m.changed }

// Items returns the tasks currently shown, in list order.
func (m Model) Items() []model.Task {
	out := make([]model.Task, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.task)
		}
	}
	return out
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}
	if m.mode != modeList {
		return m.updateInput(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, quitKey):
		return m, tea.Quit
	case km.String() == "esc":
		if m.list.FilterState() == list.FilterApplied {
			m.list.ResetFilter()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(km, addKey):
		m.mode = modeAdd
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New task description..."
		return m, m.ti.Focus()
	case key.Matches(km, editKey):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = sel.ID
		m.inputErr = ""
		m.ti.SetValue(sel.Description)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit description..."
		return m, m.ti.Focus()
	case key.Matches(km, progressKey):
		return m.mark(model.StatusInProgress)
	case key.Matches(km, doneKey):
		return m.mark(model.StatusDone)
	case key.Matches(km, deleteKey):
		sel, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.svc.Delete(sel.ID); err != nil {
			return m.fail(err)
		}
		m.changed = true
		return m.refresh(m.list.Index(), fmt.Sprintf("Task %d deleted", sel.ID))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := m.ti.Value()
			if strings.TrimSpace(text) == "" {
				m.inputErr = "Description cannot be empty"
				return m, nil
			}
			return m.submit(text)
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	adding := m.mode == modeAdd
	m.closeInput()
	if adding {
		task, err := m.svc.Add(text)
		if err != nil {
			return m.fail(err)
		}
		m.changed = true
		return m.refresh(len(m.list.Items()), fmt.Sprintf("Task %d added", task.ID))
	}
	if _, err := m.svc.Update(m.editID, text); err != nil {
		return m.fail(err)
	}
	m.changed = true
	return m.refresh(m.list.Index(), fmt.Sprintf("Task %d updated", m.editID))
}

func (m Model) mark(status model.Status) (tea.Model, tea.Cmd) {
	sel, ok := m.selected()
	if !ok {
		return m, nil
	}
	if _, err := m.svc.Mark(sel.ID, status); err != nil {
		return m.fail(err)
	}
	m.changed = true
	return m.refresh(m.list.Index(), fmt.Sprintf("Task %d marked as %s", sel.ID, status))
}

// refresh reloads the collection and keeps the cursor near index.
func (m Model) refresh(index int, status string) (tea.Model, tea.Cmd) {
	all, err := m.svc.List("")
	if err != nil {
		return m.fail(err)
	}
	setCmd := m.list.SetItems(toItems(all))
	m.list.Title = m.console.Summary(tasks.Counts(all), len(all))
	if index >= len(all) {
		index = len(all) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
	return m, tea.Batch(setCmd, m.list.NewStatusMessage(status))
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	return m, tea.Quit
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) selected() (model.Task, bool) {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return li.task, true
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != modeList {
		th := m.console.Theme()
		bar := m.console.Renderer().NewStyle().
			Border(th.Border).
			BorderForeground(th.Muted).
			Padding(0, 1)
		title := "Add task"
		if m.mode == modeEdit {
			title = fmt.Sprintf("Edit task %d", m.editID)
		}
		if m.inputErr != "" {
			title += ": " + m.console.Style(th.Error).Render(m.inputErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return m.console.PanelString([]string{content})
}

func toItems(all []model.Task) []list.Item {
	items := make([]list.Item, 0, len(all))
	for _, t := range all {
		items = append(items, listItem{task: t})
	}
	return items
}
