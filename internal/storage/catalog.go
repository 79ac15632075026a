package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raine/telegram-sushi-bot/internal/menu"
)

var (
	ErrCatalogWrite = errors.New("failed to write menu catalog")
	ErrCatalogRead  = errors.New("failed to read menu catalog")
)

// catalogRecord is the on-disk form of a menu entry. Pointer fields let Load
// tell a missing field apart from an empty one.
type catalogRecord struct {
	Kind *menu.Category `json:"kind"`
	Name *string        `json:"name"`
}

// CatalogFile persists a catalog as a JSON array of {"kind", "name"} records.
type CatalogFile struct {
	path string
}

// NewCatalogFile returns a store backed by the file at path.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

// Path returns the file location.
func (f *CatalogFile) Path() string {
	return f.path
}

// Save replaces the stored catalog. The file is written next to its target
// and renamed into place, so readers see either the old or the new catalog.
func (f *CatalogFile) Save(catalog menu.Catalog) error {
	records := make([]catalogRecord, len(catalog))
	for i := range catalog {
		if !catalog[i].Category.Valid() {
			return fmt.Errorf("%w: entry %d has no category", ErrCatalogWrite, i)
		}
		records[i] = catalogRecord{Kind: &catalog[i].Category, Name: &catalog[i].Name}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}
	return nil
}

// Load reads the stored catalog. A missing file, malformed JSON, unknown or
// missing fields and unknown category names are all errors wrapping
// ErrCatalogRead; Load never falls back to an empty catalog.
func (f *CatalogFile) Load() (menu.Catalog, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogRead, err)
	}
	return decodeCatalog(data)
}

func decodeCatalog(data []byte) (menu.Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []catalogRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogRead, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrCatalogRead)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after catalog", ErrCatalogRead)
	}

	catalog := make(menu.Catalog, len(records))
	for i, r := range records {
		if r.Kind == nil || r.Name == nil {
			return nil, fmt.Errorf("%w: record %d is missing kind or name", ErrCatalogRead, i)
		}
		catalog[i] = menu.Entry{Category: *r.Kind, Name: *r.Name}
	}
	return catalog, nil
}
