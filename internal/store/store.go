// Package store defines the persistence boundary for the task collection.
// A Store only ever reads or writes the whole collection.
package store

import (
	"fmt"

	"github.com/idilsaglam/task-cli/internal/model"
)

// Store loads and saves the full ordered task collection.
type Store interface {
	// Load returns the whole collection. A store that has never been
	// written returns an empty collection and no error.
	Load() ([]model.Task, error)
	// Save replaces the whole collection.
	Save(tasks []model.Task) error
}

// ParseError reports stored content that is not a valid task collection.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failure reading or writing the backing medium.
type IOError struct {
	Op   string // "read" | "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
