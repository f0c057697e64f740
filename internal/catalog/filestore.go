package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"

	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	"log/slog"
)

// FileStore keeps the catalog in a single JSON file, rewriting the whole
// file after every mutation so memory and disk never diverge for longer
// than one mutation.
type FileStore struct {
	path string

	mu      sync.RWMutex
	catalog Catalog
}

// NewFileStore opens (or initializes) a JSON-backed store at path.
// A missing or corrupt file starts the store with an empty catalog.
func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path}
	s.catalog = s.readFile()
	logger.Info(logger.Background(), "catalog", "store.open",
		slog.String("backend", "file"),
		slog.String("path", path),
		slog.Int("count", len(s.catalog)),
	)
	return s
}

func (s *FileStore) readFile() Catalog {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn(logger.Background(), "catalog", "store.read_failed",
				slog.String("path", s.path),
				slog.String("err", err.Error()),
			)
		}
		return Catalog{}
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		logger.Warn(logger.Background(), "catalog", "store.corrupt",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return Catalog{}
	}
	if c == nil {
		c = Catalog{}
	}
	return c
}

func (s *FileStore) persistLocked() error {
	raw, err := json.MarshalIndent(s.catalog, "", "    ")
	if err != nil {
		return fmt.Errorf("catalog: encode: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", s.path, err)
	}
	return nil
}

// Reload re-reads the file and replaces the in-memory copy.
func (s *FileStore) Reload() Catalog {
	fresh := s.readFile()
	s.mu.Lock()
	s.catalog = fresh
	s.mu.Unlock()
	return fresh.Clone()
}

// Append adds a title under a district. Duplicates are rejected with false.
func (s *FileStore) Append(district, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.catalog[district], title) {
		return false, nil
	}
	s.catalog[district] = append(s.catalog[district], title)
	if err := s.persistLocked(); err != nil {
		return false, err
	}
	logger.Info(logger.Background(), "catalog", "append",
		slog.String("district", district),
		slog.String("job", title),
		slog.Int("openings", len(s.catalog[district])),
	)
	return true, nil
}

// Clear empties a district's list and reports how many titles were removed.
func (s *FileStore) Clear(district string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.catalog[district])
	if removed == 0 {
		return 0, nil
	}
	s.catalog[district] = []string{}
	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	logger.Info(logger.Background(), "catalog", "clear",
		slog.String("district", district),
		slog.Int("removed", removed),
	)
	return removed, nil
}

// Jobs returns the district's titles in insertion order.
func (s *FileStore) Jobs(district string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.catalog[district])
}

// DistrictsWithOpenings returns districts holding at least one title,
// in canonical order.
func (s *FileStore) DistrictsWithOpenings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.districtsWithOpenings()
}

// ReplaceAll swaps the whole catalog and persists it.
func (s *FileStore) ReplaceAll(c Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c.Clone()
	return s.persistLocked()
}
