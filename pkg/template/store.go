package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"line-faq-bot/pkg/store"

	"github.com/fsnotify/fsnotify"
)

const (
	baseFileName    = "prompt.txt"
	referenceSuffix = "について.txt"
)

// Store serves the base instruction template and one reference document per
// category from a single directory. File contents are cached in memory; a
// directory watcher drops cache entries whenever a file changes, so edits to
// the template bundle take effect without a restart.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string

	watcher *fsnotify.Watcher
}

func NewStore(dir string) (*Store, error) {
	s := &Store{
		dir:   dir,
		cache: make(map[string]string),
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch template dir %s: %w", dir, err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

func (s *Store) watch() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.Invalidate(filepath.Base(ev.Name))
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the directory watcher.
func (s *Store) Close() error {
	return s.watcher.Close()
}

// Invalidate drops one cached file, or the whole cache when name is empty.
func (s *Store) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.cache = make(map[string]string)
		return
	}
	delete(s.cache, name)
}

// Base returns the invariant instruction template.
func (s *Store) Base() (string, error) {
	return s.read(baseFileName)
}

// Reference returns the reference document for a category. Unknown categories
// resolve to the default category's document, mirroring the classifier
// fallback so the two stay symmetric.
func (s *Store) Reference(category store.Category) (string, error) {
	return s.read(ReferenceFileName(category))
}

// ReferenceFileName maps a category to its document file name.
func ReferenceFileName(category store.Category) string {
	if _, ok := store.ParseCategory(string(category)); !ok {
		category = store.DefaultCategory
	}
	return string(category) + referenceSuffix
}

func (s *Store) read(name string) (string, error) {
	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = string(raw)
	s.mu.Unlock()

	return string(raw), nil
}
