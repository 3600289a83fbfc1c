// Package catalog holds the in-memory product collection, the single source
// of truth the table and dialogs read from.
package catalog

import (
	"errors"
	"slices"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/fekuna/omnipos-catalog-admin/internal/category"
	"github.com/fekuna/omnipos-catalog-admin/internal/model"
)

// TopicChanged is published with a Snapshot after every mutation.
const TopicChanged = "catalog:changed"

var (
	ErrMissingID   = errors.New("product has no server-assigned id")
	ErrDuplicateID = errors.New("product id already present")
	ErrIDMismatch  = errors.New("replacement carries a different id")
)

// Snapshot is an immutable view of the collection and its derived state.
type Snapshot struct {
	Products   []model.Product
	Categories []string
	Version    uint64
	Loaded     bool
}

type Collection struct {
	// pubMu orders publications so subscribers see versions monotonically.
	pubMu sync.Mutex
	mu    sync.RWMutex
	bus   EventBus.Bus

	products   []model.Product
	index      map[string]int
	categories []string
	version    uint64
	loaded     bool
}

func New(bus EventBus.Bus) *Collection {
	return &Collection{
		bus:        bus,
		index:      map[string]int{},
		categories: []string{},
	}
}

// Load replaces the whole collection with the server's list, keeping its order.
// Input with a missing or repeated id is rejected and nothing changes.
func (c *Collection) Load(products []model.Product) error {
	index := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID == "" {
			return ErrMissingID
		}
		if _, ok := index[p.ID]; ok {
			return ErrDuplicateID
		}
		index[p.ID] = i
	}

	c.mutate(func() bool {
		c.products = slices.Clone(products)
		c.index = index
		c.loaded = true
		return true
	})
	return nil
}

// Add appends a product confirmed by the server.
func (c *Collection) Add(p model.Product) error {
	if p.ID == "" {
		return ErrMissingID
	}
	var err error
	c.mutate(func() bool {
		if _, ok := c.index[p.ID]; ok {
			err = ErrDuplicateID
			return false
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p)
		return true
	})
	return err
}

// Replace swaps the product with the given id in place. It reports false,
// changing nothing, when id is unknown.
func (c *Collection) Replace(id string, p model.Product) (bool, error) {
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		return false, ErrIDMismatch
	}
	replaced := false
	c.mutate(func() bool {
		i, ok := c.index[id]
		if !ok {
			return false
		}
		c.products[i] = p
		replaced = true
		return true
	})
	return replaced, nil
}

// Remove deletes the product with the given id. It reports false, changing
// nothing, when id is unknown.
func (c *Collection) Remove(id string) bool {
	removed := false
	c.mutate(func() bool {
		i, ok := c.index[id]
		if !ok {
			return false
		}
		c.products = slices.Delete(c.products, i, i+1)
		delete(c.index, id)
		for j := i; j < len(c.products); j++ {
			c.index[c.products[j].ID] = j
		}
		removed = true
		return true
	})
	return removed
}

// Get returns the current product with the given id.
func (c *Collection) Get(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

func (c *Collection) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Collection) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.categories)
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

func (c *Collection) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// mutate applies fn under the write lock. When fn reports a change the
// derived category set is recomputed before the lock is released and the new
// snapshot is published before mutate returns.
func (c *Collection) mutate(fn func() bool) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}
	c.categories = category.Derive(c.products)
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.bus != nil {
		c.bus.Publish(TopicChanged, snap)
	}
}

func (c *Collection) snapshotLocked() Snapshot {
	return Snapshot{
		Products:   slices.Clone(c.products),
		Categories: slices.Clone(c.categories),
		Version:    c.version,
		Loaded:     c.loaded,
	}
}
