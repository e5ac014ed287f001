package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/task-cli/internal/model"
	"github.com/idilsaglam/task-cli/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking and no atomic rename: last writer wins.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.json"

const schemaURL = "https://github.com/idilsaglam/task-cli/tasks.schema.json"

//go:embed schema.json
var schemaJSON string

// Store persists the task collection as one JSON array.
type Store struct {
	path     string
	validate bool
	schema   *jsonschema.Schema
	log      *log.Logger
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger routes debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithValidation toggles schema validation on load.
func WithValidation(on bool) Option {
	return func(s *Store) { s.validate = on }
}

// New returns a store backed by the file at path.
func New(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultFileName
	}
	s := &Store{path: path, validate: true}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.validate {
		schema, err := compileSchema()
		if err != nil {
			return nil, fmt.Errorf("compile schema: %w", err)
		}
		s.schema = schema
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

func (s *Store) Load() ([]model.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("store file missing, starting empty", "path", s.path)
			return []model.Task{}, nil
		}
		return nil, &store.IOError{Op: "read", Path: s.path, Err: err}
	}

	if s.schema != nil {
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, &store.ParseError{Path: s.path, Err: err}
		}
		if err := s.schema.Validate(doc); err != nil {
			return nil, &store.ParseError{Path: s.path, Err: err}
		}
	}

	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, &store.ParseError{Path: s.path, Err: err}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	s.log.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return &store.IOError{Op: "write", Path: s.path, Err: err}
	}
	s.log.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}
