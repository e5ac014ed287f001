// Package memstore keeps the task collection in memory.
package memstore

import (
	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/store"
)

// Store is an in-memory store.Store. Load and Save copy, so callers
// never alias the stored slice.
type Store struct {
	tasks []model.Task
	saves int
	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error
}

var _ store.Store = (*Store)(nil)

// New returns a store seeded with a copy of tasks.
func New(tasks ...model.Task) *Store {
	return &Store{tasks: clone(tasks)}
}

func (s *Store) Load() ([]model.Task, error) {
	return clone(s.tasks), nil
}

func (s *Store) Save(tasks []model.Task) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.tasks = clone(tasks)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int { return s.saves }

func clone(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
