// Package tasks implements the task commands on top of a store.Store.
// Each operation loads the whole collection, works on it in memory, and
// saves it back when something changed.
package tasks

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/store"
)

// ErrNotFound is returned when no task carries the requested id.
// It is an ordinary outcome, not a failure.
var ErrNotFound = errors.New("task not found")

// IDStrategy selects how Add numbers new tasks.
type IDStrategy string

const (
	// IDByLength assigns len(collection)+1. Ids can repeat after deletes.
	IDByLength IDStrategy = "length"
	// IDByMax assigns max(id)+1.
	IDByMax IDStrategy = "max"
)

// Valid reports whether s is a known strategy.
func (s IDStrategy) Valid() bool {
	return s == IDByLength || s == IDByMax
}

// Service runs task commands against a store.
type Service struct {
	store store.Store
	now   func() time.Time
	ids   IDStrategy
	log   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDStrategy overrides the id assignment scheme.
func WithIDStrategy(ids IDStrategy) Option {
	return func(s *Service) { s.ids = ids }
}

// WithLogger routes debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns a Service over st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{store: st, now: time.Now, ids: IDByLength}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

// Add appends a new todo task and returns it.
func (s *Service) Add(description string) (model.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return model.Task{}, err
	}
	now := model.Timestamp(s.now())
	task := model.Task{
		ID:          s.nextID(tasks),
		Description: description,
		Status:      model.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return model.Task{}, err
	}
	s.log.Debug("added task", "id", task.ID)
	return task, nil
}

// Update replaces the description of the first task with the given id.
func (s *Service) Update(id int, description string) (model.Task, error) {
	return s.modifyFirst(id, func(t *model.Task) { t.Description = description })
}

// Mark sets the status of the first task with the given id.
func (s *Service) Mark(id int, status model.Status) (model.Task, error) {
	return s.modifyFirst(id, func(t *model.Task) { t.Status = status })
}

// Delete removes every task with the given id and returns how many went.
// The collection is saved even when nothing matched.
func (s *Service) Delete(id int) (int, error) {
	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(tasks) - len(kept)
	if err := s.save(kept); err != nil {
		return 0, err
	}
	s.log.Debug("deleted tasks", "id", id, "removed", removed)
	return removed, nil
}

// List returns tasks whose status equals filter, in collection order.
// An empty filter returns everything. The filter is not validated.
func (s *Service) List(filter string) ([]model.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	return Filter(tasks, filter), nil
}

// Filter keeps tasks whose status equals filter; empty keeps all.
func Filter(tasks []model.Task, filter string) []model.Task {
	if filter == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if string(t.Status) == filter {
			out = append(out, t)
		}
	}
	return out
}

// Counts tallies tasks per status.
func Counts(tasks []model.Task) map[model.Status]int {
	out := make(map[model.Status]int, len(model.Statuses))
	for _, t := range tasks {
		out[t.Status]++
	}
	return out
}

func (s *Service) modifyFirst(id int, apply func(*model.Task)) (model.Task, error) {
	tasks, err := s.load()
	if err != nil {
		return model.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		apply(&tasks[i])
		tasks[i].UpdatedAt = model.Timestamp(s.now())
		if err := s.save(tasks); err != nil {
			return model.Task{}, err
		}
		return tasks[i], nil
	}
	return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func (s *Service) nextID(tasks []model.Task) int {
	if s.ids == IDByMax {
		highest := 0
		for _, t := range tasks {
			if t.ID > highest {
				highest = t.ID
			}
		}
		return highest + 1
	}
	return len(tasks) + 1
}

func (s *Service) load() ([]model.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return tasks, nil
}

func (s *Service) save(tasks []model.Task) error {
	if err := s.store.Save(tasks); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
