package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/store/memstore"
	"github.com/idilsaglam/task-cli/internal/tasks"
	"github.com/idilsaglam/task-cli/internal/ui"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func newModel(t *testing.T, seed ...model.Task) (Model, *memstore.Store) {
	t.Helper()
	st := memstore.New(seed...)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	svc := tasks.New(st, tasks.WithClock(func() time.Time { now = now.Add(time.Minute); return now }))
	var out bytes.Buffer
	m, err := New(svc, ui.NewConsole(&out, &out, ui.LookupTheme("mono"), "never"))
	require.NoError(t, err)
	return m, st
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func seed() []model.Task {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: 1, Description: "first", Status: model.StatusTodo, CreatedAt: ts, UpdatedAt: ts},
		{ID: 2, Description: "second", Status: model.StatusTodo, CreatedAt: ts, UpdatedAt: ts},
	}
}

func stored(t *testing.T, st *memstore.Store) []model.Task {
	t.Helper()
	all, err := st.Load()
	require.NoError(t, err)
	return all
}

func TestMarkSelected(t *testing.T) {
	m, st := newModel(t, seed()...)

	m = send(m, runes("d"))
	assert.True(t, m.Changed())
	assert.Equal(t, model.StatusDone, stored(t, st)[0].Status)

	m = send(m, down, runes("p"))
	all := stored(t, st)
	assert.Equal(t, model.StatusInProgress, all[1].Status)
	assert.Equal(t, model.StatusInProgress, m.Items()[1].Status)
	assert.True(t, all[1].UpdatedAt.After(all[1].CreatedAt))
}

func TestAddTask(t *testing.T) {
	m, st := newModel(t, seed()...)

	m = send(m, runes("a"), runes("buy bread"), enter)

	all := stored(t, st)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[2].ID)
	assert.Equal(t, "buy bread", all[2].Description)
	assert.Equal(t, model.StatusTodo, all[2].Status)
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.Items(), 3)
}

func TestAddRejectsEmptyDescription(t *testing.T) {
	m, st := newModel(t, seed()...)

	m = send(m, runes("a"), runes("   "), enter)
	assert.Equal(t, modeAdd, m.mode)
	assert.NotEmpty(t, m.inputErr)
	assert.Contains(t, m.View(), "Description cannot be empty")

	m = send(m, esc)
	assert.Equal(t, modeList, m.mode)
	assert.False(t, m.Changed())
	assert.Zero(t, st.Saves())
}

func TestEditTask(t *testing.T) {
	m, st := newModel(t, seed()...)

	m = send(m, down, runes("e"))
	assert.Equal(t, 2, m.editID)
	assert.Equal(t, "second", m.ti.Value())

	m = send(m, runes(" draft"), enter)

	assert.Equal(t, "second draft", stored(t, st)[1].Description)
	assert.Equal(t, "first", stored(t, st)[0].Description)
	assert.True(t, m.Changed())
}

func TestDeleteSelected(t *testing.T) {
	m, st := newModel(t, seed()...)

	m = send(m, down, runes("x"))

	all := stored(t, st)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel.ID)
}

func TestEmptyCollectionIgnoresActions(t *testing.T) {
	m, st := newModel(t)

	m = send(m, runes("d"), runes("p"), runes("x"), runes("e"))

	assert.False(t, m.Changed())
	assert.Equal(t, modeList, m.mode)
	assert.Zero(t, st.Saves())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, seed()...)

	for _, k := range []tea.KeyMsg{runes("q"), esc} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "key %q should quit", k.String())
	}
}

func TestViewShowsTasks(t *testing.T) {
	m, _ := newModel(t, seed()...)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	v := m.View()

	assert.Contains(t, v, "first")
	assert.Contains(t, v, "second")
	assert.Contains(t, v, "[ ]")
	assert.Contains(t, v, "Total 2")
}
