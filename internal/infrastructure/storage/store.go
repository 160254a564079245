// Package storage implements the file-backed document store. Each
// collection is one JSON file of shape {"data": [...records]} under the
// configured data directory. Writes replace the whole file via a temp
// file and rename, so readers never observe a half-written collection.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/storefront/core/internal/domain/entities"
)

// timeLayout matches ISO-8601 with millisecond precision, the format
// records have always carried in the data files.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Store manages the data directory and hands out collection handles.
// Handles are cached so every caller of the same collection shares one
// write lock.
type Store struct {
	dir string

	mu          sync.Mutex
	collections map[string]*Collection
}

// New creates a store rooted at dir. The directory is created lazily on
// first write, matching the read path's "no file yet means empty".
func New(dir string) *Store {
	return &Store{
		dir:         dir,
		collections: make(map[string]*Collection),
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Collection returns the handle for a named collection, creating it on
// first use. prefix seeds generated record ids.
func (s *Store) Collection(name, prefix string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.collections[name]; ok {
		return c
	}

	c := &Collection{
		name:   name,
		prefix: prefix,
		path:   filepath.Join(s.dir, name+".json"),
	}
	s.collections[name] = c
	return c
}

// HealthCheck verifies the data directory exists and is writable.
func (s *Store) HealthCheck() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("data directory %s: %w", s.dir, err)
	}

	probe, err := os.CreateTemp(s.dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("data directory %s not writable: %w", s.dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

// Collection is a named set of records backed by one JSON file. All
// operations take the collection lock, so concurrent read-modify-write
// cycles against the same collection are serialized in-process.
type Collection struct {
	name   string
	prefix string
	path   string
	mu     sync.Mutex
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// envelope is the on-disk document shape.
type envelope struct {
	Data []entities.Record `json:"data"`
}

// List returns every record in the collection. A missing or unparsable
// file reads as an empty collection rather than an error.
func (c *Collection) List() ([]entities.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readAll(), nil
}

// Get returns the record with the given id, or entities.ErrNotFound.
func (c *Collection) Get(id string) (entities.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range c.readAll() {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, entities.ErrNotFound
}

// Create assigns an id and timestamps to payload, appends it to the
// collection and persists. The generated system fields always win over
// caller-supplied values of the same name.
func (c *Collection) Create(payload entities.Record) (entities.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.readAll()

	now := time.Now().UTC().Format(timeLayout)
	rec := payload.Clone()
	rec[entities.FieldID] = NewID(c.prefix)
	rec[entities.FieldCreatedAt] = now
	rec[entities.FieldUpdatedAt] = now

	records = append(records, rec)
	if err := c.writeAll(records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update shallow-merges patch over the stored record and persists.
// _id and createdAt are never overwritten, even if present in patch;
// updatedAt is refreshed. Returns entities.ErrNotFound when no record
// matches.
func (c *Collection) Update(id string, patch entities.Record) (entities.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.readAll()
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, entities.ErrNotFound
	}

	rec := records[idx].Clone()
	for k, v := range patch {
		if k == entities.FieldID || k == entities.FieldCreatedAt {
			continue
		}
		rec[k] = v
	}
	rec[entities.FieldUpdatedAt] = time.Now().UTC().Format(timeLayout)

	records[idx] = rec
	if err := c.writeAll(records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record with the given id and persists. Returns
// entities.ErrNotFound when no record matches.
func (c *Collection) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.readAll()
	idx := indexOf(records, id)
	if idx < 0 {
		return entities.ErrNotFound
	}

	records = append(records[:idx], records[idx+1:]...)
	return c.writeAll(records)
}

func indexOf(records []entities.Record, id string) int {
	for i, rec := range records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

// readAll loads the backing file. Absent files and parse failures both
// degrade to an empty collection; availability wins over strictness on
// the read path. Callers must hold c.mu.
func (c *Collection) readAll() []entities.Record {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return []entities.Record{}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return []entities.Record{}
	}
	if env.Data == nil {
		return []entities.Record{}
	}
	return env.Data
}

// writeAll replaces the collection file. The document is written to a
// temp file in the same directory, fsynced and renamed over the target
// so a crash mid-write cannot leave a truncated collection behind.
// Callers must hold c.mu.
func (c *Collection) writeAll(records []entities.Record) error {
	doc, err := json.MarshalIndent(envelope{Data: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	doc = append(doc, '\n')

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}

	tmp, err := os.CreateTemp(dir, c.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", c.name, err)
	}
	return nil
}
