// Package storage holds the JSON-file persistence shared by the file-backed
// repositories: one file per record inside a per-kind directory.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Collection stores records of type T as <dir>/<id>.json.
type Collection[T any] struct {
	dir string
	key func(*T) string
	mu  sync.RWMutex
	// writeMu serializes read-modify-write cycles against plain writes
	writeMu sync.Mutex
}

// NewCollection creates basePath/name and returns a collection keyed by key.
func NewCollection[T any](basePath, name string, key func(*T) string) (*Collection[T], error) {
	dir := filepath.Join(basePath, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "collection", name, "context", "failed to create collection directory").Wrap(err)
	}
	return &Collection[T]{dir: dir, key: key}, nil
}

func (c *Collection[T]) Save(record *T) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.save(record)
}

func (c *Collection[T]) save(record *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.key(record)
	if !validID(id) {
		return oops.With("id", id).Wrapf(errors.ErrInvalidInput, "invalid record id")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return oops.With("id", id, "context", "failed to marshal record").Wrap(err)
	}

	// Write-then-rename so readers never observe a half-written file
	tmp := filepath.Join(c.dir, "."+id+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return oops.With("id", id, "context", "failed to write record").Wrap(err)
	}
	return os.Rename(tmp, c.path(id))
}

func (c *Collection[T]) Get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !validID(id) {
		return nil, oops.With("id", id).Wrap(errors.ErrNotFound)
	}

	data, err := os.ReadFile(c.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.With("id", id).Wrap(errors.ErrNotFound)
		}
		return nil, oops.With("id", id, "context", "failed to read record").Wrap(err)
	}

	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, oops.With("id", id, "context", "failed to unmarshal record").Wrap(err)
	}
	return &record, nil
}

// All returns every readable record ordered by id. Corrupt files are skipped.
func (c *Collection[T]) All() ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, oops.With("directory", c.dir, "context", "failed to read collection directory").Wrap(err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	records := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*T, bool) {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, ".") {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			return nil, false
		}

		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, false
		}
		return &record, true
	})

	return records, nil
}

func (c *Collection[T]) Delete(id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if !validID(id) {
		return oops.With("id", id).Wrap(errors.ErrNotFound)
	}
	if err := os.Remove(c.path(id)); err != nil {
		if os.IsNotExist(err) {
			return oops.With("id", id).Wrap(errors.ErrNotFound)
		}
		return oops.With("id", id, "context", "failed to delete record").Wrap(err)
	}
	return nil
}

// Update loads, mutates and saves a record. Concurrent writers wait.
func (c *Collection[T]) Update(id string, mutate func(*T) error) (*T, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	record, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(record); err != nil {
		return nil, err
	}
	if err := c.save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Collection[T]) path(id string) string {
	return filepath.Join(c.dir, id+".json")
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".." && !strings.HasPrefix(id, ".")
}
