// Package filestore keeps instances in one JSON document: an object mapping
// each "<Class>.<id>" key to the instance's fields.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/infra/storage"
)

const backend = "json"

// Store is a domain.Storage persisted to a single JSON file.
type Store struct {
	path    string
	reg     domain.Registry
	objects *domain.Objects
	logger  *slog.Logger
}

// Open prepares a store at path. Nothing is read until Reload.
func Open(path string, reg domain.Registry, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:    path,
		reg:     reg,
		objects: domain.NewObjects(),
		logger:  logger.With("component", "storage", "backend", backend),
	}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Close is a no-op; every flush is complete on return.
func (s *Store) Close() error { return nil }

// All returns the live instance index.
func (s *Store) All() *domain.Objects {
	return s.objects
}

// New indexes inst. Saving an instance rewrites the whole file.
func (s *Store) New(inst *domain.Instance) {
	s.objects.Set(inst.Key(), inst)
	inst.OnSave(func(*domain.Instance) error { return s.flush("instance") })
}

// Save writes every indexed instance.
func (s *Store) Save() error {
	return s.flush("all")
}

// flush writes to a temporary file and renames it over the target.
func (s *Store) flush(scope string) error {
	start := time.Now()
	values := s.objects.Values()

	fields := make([]storage.Field, 0, len(values))
	for _, inst := range values {
		data, err := storage.Encode(inst)
		if err != nil {
			return err
		}
		fields = append(fields, storage.Field{Name: inst.Key(), Raw: data})
	}

	var out bytes.Buffer
	if err := json.Indent(&out, storage.WriteObject(fields), "", "  "); err != nil {
		return fmt.Errorf("format %s: %w", s.path, err)
	}
	out.WriteByte('\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out.Bytes(), 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	storage.RecordFlush(backend, scope, start, len(values))
	s.logger.Debug("flushed", "instances", len(values), "scope", scope, "took", time.Since(start))
	return nil
}

// Reload replaces the index with the file's contents. A missing file is an
// empty store. Entries naming an unregistered class are skipped with a
// warning; a file that is not a JSON object is an error.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.objects.Reset()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	fields, err := storage.ReadObject(json.NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	s.objects.Reset()
	for _, f := range fields {
		inst, err := storage.Decode(f.Raw, s.reg)
		if err != nil {
			s.logger.Warn("skipping stored record", "key", f.Name, "err", err)
			continue
		}
		if inst.Key() != f.Name {
			s.logger.Warn("stored key does not match record", "key", f.Name, "record", inst.Key())
		}
		s.New(inst)
	}
	s.logger.Debug("reloaded", "instances", s.objects.Len())
	return nil
}
