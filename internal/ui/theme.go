package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/task-cli/internal/model"
)

// Theme bundles palette + symbols + box borders.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.TerminalColor

	Border lipgloss.Border

	// Box per status; unknown statuses fall back to BoxOther.
	BoxTodo, BoxInProgress, BoxDone, BoxOther string

	SymOK, SymFail string
}

var themes = map[string]Theme{
	"classic": {
		Title: lipgloss.NoColor{}, Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
		Success: lipgloss.Color("42"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
		Border: lipgloss.NormalBorder(),
		BoxTodo: "☐", BoxInProgress: "◐", BoxDone: "☑", BoxOther: "?",
		SymOK: "✔", SymFail: "✖",
	},
	"neon": {
		Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
		Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
		Border: lipgloss.RoundedBorder(),
		BoxTodo: "◻", BoxInProgress: "◧", BoxDone: "◼", BoxOther: "?",
		SymOK: "✔", SymFail: "✖",
	},
	"mono": {
		Title: lipgloss.NoColor{}, Muted: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Pending: lipgloss.NoColor{},
		Border: lipgloss.ASCIIBorder(),
		BoxTodo: "[ ]", BoxInProgress: "[~]", BoxDone: "[x]", BoxOther: "[?]",
		SymOK: "ok", SymFail: "error:",
	},
}

// LookupTheme returns the named theme; unknown names get classic.
func LookupTheme(name string) Theme {
	name = strings.ToLower(name)
	t, ok := themes[name]
	if !ok {
		name = "classic"
		t = themes[name]
	}
	t.Name = name
	return t
}

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	_, ok := themes[strings.ToLower(name)]
	return ok
}

// ThemeNames lists the known themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Box returns the checkbox glyph for a status.
func (t Theme) Box(s model.Status) string {
	switch s {
	case model.StatusTodo:
		return t.BoxTodo
	case model.StatusInProgress:
		return t.BoxInProgress
	case model.StatusDone:
		return t.BoxDone
	}
	return t.BoxOther
}

// StatusColor returns the color used for a status.
func (t Theme) StatusColor(s model.Status) lipgloss.TerminalColor {
	switch s {
	case model.StatusDone:
		return t.Success
	case model.StatusInProgress:
		return t.Pending
	}
	return t.Muted
}
