/*
catalog.go - Work-model catalog

PURPOSE:
  The catalog maps work-model ids to their definitions. The engine
  depends on it as an injected read-only interface so tests can supply
  fixed catalogs without a backend, and the service can load models from
  storage at startup.

CONSISTENCY:
  A catalog must be treated as read-only for the lifetime of a batch of
  computations. MemoryCatalog is safe for concurrent lookups; if models
  are refreshed concurrently, callers should compute against a Snapshot.

SEE ALSO:
  - engine.go: Engine{Catalog} entry points
  - factory/: JSON model definitions parsed into catalog entries
*/
package timeclock

import (
	"sort"
	"sync"
)

// =============================================================================
// CATALOG INTERFACE
// =============================================================================

// Catalog is the read-only work-model lookup the engine depends on.
type Catalog interface {
	// Lookup returns the model for an id, or an error wrapping
	// ErrModelNotFound.
	Lookup(id WorkModelID) (WorkModel, error)
}

// =============================================================================
// MEMORY CATALOG
// =============================================================================

// MemoryCatalog is an in-memory Catalog safe for concurrent use.
type MemoryCatalog struct {
	mu     sync.RWMutex
	models map[WorkModelID]WorkModel
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{models: make(map[WorkModelID]WorkModel)}
}

// DefaultCatalog returns a catalog pre-loaded with the built-in models.
func DefaultCatalog() *MemoryCatalog {
	c := NewMemoryCatalog()
	for _, m := range BuiltinModels() {
		// Built-ins are validated by their own tests.
		c.models[m.ID] = m
	}
	return c
}

// Register validates and adds (or replaces) a model.
func (c *MemoryCatalog) Register(m WorkModel) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models[m.ID] = m
	return nil
}

func (c *MemoryCatalog) Lookup(id WorkModelID) (WorkModel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.models[id]
	if !ok {
		return WorkModel{}, &ModelNotFoundError{ID: id}
	}
	return m, nil
}

// List returns all registered models ordered by id.
func (c *MemoryCatalog) List() []WorkModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]WorkModel, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Snapshot returns an immutable copy for a batch of computations.
func (c *MemoryCatalog) Snapshot() Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	models := make(map[WorkModelID]WorkModel, len(c.models))
	for id, m := range c.models {
		models[id] = m
	}
	return snapshotCatalog(models)
}

type snapshotCatalog map[WorkModelID]WorkModel

func (s snapshotCatalog) Lookup(id WorkModelID) (WorkModel, error) {
	m, ok := s[id]
	if !ok {
		return WorkModel{}, &ModelNotFoundError{ID: id}
	}
	return m, nil
}
