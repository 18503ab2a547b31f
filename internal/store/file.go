package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/i474232898/weather-log/internal/weather"
)

// ErrNotFound is returned when no observation is stored for a date.
var ErrNotFound = weather.ErrNotFound

// FileStore is the observation journal persisted as a single JSON object
// mapping DD-MM-YYYY keys to observations. Every Save rewrites the whole file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]weather.Observation
}

// Open loads the journal at path. A missing file yields an empty store;
// a file that exists but does not parse is reported as weather.ErrCorruptStore.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]weather.Observation),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Len returns the number of journaled dates.
func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Load replaces the in-memory journal with the contents of the backing file.
func (s *FileStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		s.data = make(map[string]weather.Observation)
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	data := make(map[string]weather.Observation)
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %s: %v", weather.ErrCorruptStore, s.path, err)
	}
	if data == nil {
		// literal "null"
		return fmt.Errorf("%w: %s: not a JSON object", weather.ErrCorruptStore, s.path)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Save inserts or overwrites the observation for dateKey and persists the full mapping.
// The in-memory entry is rolled back if the write fails.
func (s *FileStore) Save(dateKey string, obs weather.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data[dateKey]
	s.data[dateKey] = obs

	if err := s.persist(); err != nil {
		if existed {
			s.data[dateKey] = prev
		} else {
			delete(s.data, dateKey)
		}
		return err
	}
	return nil
}

// SaveIfAbsent stores obs for dateKey only when the date has no entry yet.
// It reports whether obs was written.
func (s *FileStore) SaveIfAbsent(dateKey string, obs weather.Observation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[dateKey]; ok {
		return false, nil
	}
	s.data[dateKey] = obs
	if err := s.persist(); err != nil {
		delete(s.data, dateKey)
		return false, err
	}
	return true, nil
}

// Get returns the observation stored for dateKey.
func (s *FileStore) Get(dateKey string) (weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obs, ok := s.data[dateKey]
	if !ok {
		return weather.Observation{}, ErrNotFound
	}
	return obs, nil
}

// Dates returns the stored keys ordered by calendar date.
// Keys that are not valid dates sort last, lexically.
func (s *FileStore) Dates() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.SliceStable(keys, func(i, j int) bool {
		di, ei := weather.ParseDateKey(keys[i])
		dj, ej := weather.ParseDateKey(keys[j])
		switch {
		case ei == nil && ej == nil:
			return di.Before(dj)
		case ei == nil:
			return true
		case ej == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// persist writes the mapping to a temp file in the same directory and renames it
// over the backing file. Caller holds s.mu.
func (s *FileStore) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return fmt.Errorf("encode observations: %w", err)
	}
	raw = append(raw, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
