package storage

import (
	"sync/atomic"

	"github.com/raine/telegram-sushi-bot/internal/menu"
)

// CatalogCache keeps the most recently loaded catalog for concurrent readers.
// The held catalog is never modified; Replace swaps in a new one.
type CatalogCache struct {
	file    *CatalogFile
	current atomic.Pointer[menu.Catalog]
}

// NewCatalogCache returns a cache that loads from file on first use.
func NewCatalogCache(file *CatalogFile) *CatalogCache {
	return &CatalogCache{file: file}
}

// Catalog returns the cached catalog, loading it from disk when nothing is
// cached yet. Load errors are returned and not cached.
func (c *CatalogCache) Catalog() (menu.Catalog, error) {
	if cat := c.current.Load(); cat != nil {
		return *cat, nil
	}

	cat, err := c.file.Load()
	if err != nil {
		return nil, err
	}
	c.current.CompareAndSwap(nil, &cat)
	return *c.current.Load(), nil
}

// Replace makes catalog the one handed to readers from now on.
func (c *CatalogCache) Replace(catalog menu.Catalog) {
	c.current.Store(&catalog)
}

// Save persists catalog and then publishes it to readers.
func (c *CatalogCache) Save(catalog menu.Catalog) error {
	if err := c.file.Save(catalog); err != nil {
		return err
	}
	c.Replace(catalog)
	return nil
}
