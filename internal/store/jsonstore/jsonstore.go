package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Every operation re-reads the file so edits from another process are seen.

// FileName is the data file created inside the data directory.
const FileName = "todos.json"

// Store keeps items in one JSON array on disk.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// Open returns a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: filepath.Join(dir, FileName), now: time.Now}, nil
}

// Path is the data file location; the TUI watches it for outside edits.
func (s *Store) Path() string { return s.path }

func (s *Store) Create(_ context.Context, title string) (model.Item, error) {
	title = model.NormalizeTitle(title)
	if title == "" {
		return model.Item{}, fmt.Errorf("create: empty title: %w", model.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return model.Item{}, err
	}
	it := model.Item{ID: uuid.NewString(), Title: title, CreatedAt: s.now().UTC()}
	items = append(items, it)
	if err := s.save(items); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (s *Store) Find(_ context.Context, q model.Query) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if q.Match(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, id string, p model.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, model.ErrNotFound)
	}
	p.Apply(&items[idx])
	return s.save(items)
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("remove %s: %w", id, model.ErrNotFound)
	}
	items = append(items[:idx], items[idx+1:]...)
	return s.save(items)
}

func (s *Store) Count(_ context.Context) (model.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return model.Counts{}, err
	}
	return model.Tally(items), nil
}

func (s *Store) Close() error { return nil }

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) load() ([]model.Item, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

// save writes through a temp file so a watcher never sees a half-written array.
func (s *Store) save(items []model.Item) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
