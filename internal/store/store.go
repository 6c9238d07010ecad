// Package store provides the in-memory task list and its flat-file persistence.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fentz26/carcare/internal/log"
	"github.com/fentz26/carcare/internal/models"
	"github.com/google/uuid"
)

// Store holds the ordered task list for one session.
//
// Tasks are addressed by 1-based position; indices are always dense.
type Store struct {
	mu    sync.Mutex
	path  string
	tasks []models.Task
	dirty bool
	// modTime of path as of the last load or save.
	modTime time.Time
}

// Notice is a non-fatal condition reported while loading the task file.
type Notice struct {
	Message string
	Err     error
}

func (n *Notice) String() string {
	return n.Message
}

// New creates an empty store bound to path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the task file at path. It never fails: a missing file yields an
// empty store and a notice, and other read errors yield whatever could be
// parsed along with a notice describing the error.
func Load(path string) (*Store, *Notice) {
	s := New(path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", path).Msg("task file missing")
			return s, &Notice{
				Message: fmt.Sprintf("File '%s' not found. Starting with an empty task list.", path),
				Err:     fmt.Errorf("%w: %s", ErrFileNotFound, path),
			}
		}
		return s, readNotice(path, err)
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil {
		s.modTime = fi.ModTime()
	}

	tasks, err := Decode(f)
	for i := range tasks {
		tasks[i].ID = uuid.New().String()
	}
	s.tasks = tasks
	if err != nil {
		return s, readNotice(path, err)
	}

	log.Debug().Str("file", path).Int("tasks", len(tasks)).Msg("loaded tasks")
	return s, nil
}

func readNotice(path string, err error) *Notice {
	log.Warn().Err(err).Str("file", path).Msg("read task file")
	return &Notice{
		Message: fmt.Sprintf("An error occurred while reading the file: %v", err),
		Err:     fmt.Errorf("%w: read %s: %v", ErrFileIO, path, err),
	}
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Dirty reports whether the list changed since it was loaded or last saved.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// List returns a copy of the tasks in their current order.
func (s *Store) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.tasks...)
}

// Append adds task to the end of the list and returns it with its ID set.
func (s *Store) Append(task models.Task) models.Task {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.dirty = true
	return task
}

// Complete marks the task at the 1-based index as completed. Completing a
// completed task is a no-op.
func (s *Store) Complete(index int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return models.Task{}, err
	}
	t := &s.tasks[index-1]
	if !t.Completed {
		t.Completed = true
		s.dirty = true
	}
	return *t, nil
}

// Remove deletes the task at the 1-based index and returns it. Later tasks
// shift down by one position.
func (s *Store) Remove(index int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return models.Task{}, err
	}
	removed := s.tasks[index-1]
	s.tasks = append(s.tasks[:index-1], s.tasks[index:]...)
	s.dirty = true
	return removed, nil
}

// IndexOf returns the 1-based position of the task with id, or 0.
func (s *Store) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			return i + 1
		}
	}
	return 0
}

func (s *Store) checkIndex(index int) error {
	if index < 1 || index > len(s.tasks) {
		return fmt.Errorf("%w: %d (have %d tasks)", ErrIndexOutOfRange, index, len(s.tasks))
	}
	return nil
}

// Save writes the whole list to path, replacing any existing content.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(path, s.tasks); err != nil {
		log.Error().Err(err).Str("file", path).Msg("save tasks")
		return fmt.Errorf("%w: %v", ErrFileIO, err)
	}
	if path == s.path {
		s.dirty = false
		if fi, err := os.Stat(path); err == nil {
			s.modTime = fi.ModTime()
		}
	}
	log.Debug().Str("file", path).Int("tasks", len(s.tasks)).Msg("saved tasks")
	return nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, tasks []models.Task) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tasks-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, tasks); err != nil {
		tmp.Close()
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// ExternallyModified reports whether the task file on disk differs from the
// version this store last loaded or saved.
func (s *Store) ExternallyModified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	fi, err := os.Stat(s.path)
	if err != nil {
		return !s.modTime.IsZero()
	}
	return !fi.ModTime().Equal(s.modTime)
}
