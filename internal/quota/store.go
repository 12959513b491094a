package quota

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Entry is one user's keyword usage for a single civil date.
type Entry struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// Store persists the quota map as a single JSON document. User ids are
// decimal strings on disk and int64 in memory.
type Store struct {
	logger *slog.Logger
	path   string

	// Single-slot queue: back-to-back saves coalesce into the latest
	// snapshot, and at most one writer is in flight.
	saveCh chan map[int64]Entry
}

func NewStore(logger *slog.Logger, path string) *Store {
	return &Store{
		logger: logger,
		path:   path,
		saveCh: make(chan map[int64]Entry, 1),
	}
}

// Load reads the document. A missing or malformed file yields an empty
// map; persistence problems never take the bot down.
func (s *Store) Load() map[int64]Entry {
	entries := make(map[int64]Entry)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("Failed to read quota file", "path", s.path, "error", err)
		}
		return entries
	}
	if len(data) == 0 {
		return entries
	}

	var raw map[string]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Error("Quota file is malformed, starting empty", "path", s.path, "error", err)
		return entries
	}

	for key, entry := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			s.logger.Warn("Skipping quota entry with non-numeric user id", "key", key)
			continue
		}
		entries[id] = entry
	}
	return entries
}

// Save writes the document atomically: marshal to a temp file in the same
// directory, then rename over the destination.
func (s *Store) Save(entries map[int64]Entry) error {
	raw := make(map[string]Entry, len(entries))
	for id, entry := range entries {
		raw[strconv.FormatInt(id, 10)] = entry
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal quota map: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".quota-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace quota file: %w", err)
	}
	return nil
}

// Enqueue hands a snapshot to the saver goroutine without blocking; a
// pending older snapshot is replaced by the newer one.
func (s *Store) Enqueue(entries map[int64]Entry) {
	for {
		select {
		case s.saveCh <- entries:
			return
		default:
			select {
			case <-s.saveCh:
			default:
			}
		}
	}
}

// Run drains the save queue until the context ends, then flushes any
// pending snapshot.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case entries := <-s.saveCh:
				if err := s.Save(entries); err != nil {
					s.logger.Error("Failed to flush quota file on shutdown", "error", err)
				}
			default:
			}
			return
		case entries := <-s.saveCh:
			if err := s.Save(entries); err != nil {
				s.logger.Error("Failed to save quota file", "error", err)
			}
		}
	}
}
