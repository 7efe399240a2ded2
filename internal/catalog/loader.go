package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/osse101/GardenSim_Go/internal/validation"
)

var (
	//go:embed data/catalog.json
	defaultCatalogJSON []byte

	//go:embed data/catalog.schema.json
	catalogSchemaJSON []byte
)

// Loader reads catalog documents and validates them against the catalog schema
type Loader interface {
	Load(path string) (*Catalog, error)
	Parse(data []byte) (*Catalog, error)
}

type catalogLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() (Loader, error) {
	v := validation.NewSchemaValidator()
	if err := v.RegisterSchema(CatalogSchemaName, catalogSchemaJSON); err != nil {
		return nil, fmt.Errorf("register catalog schema: %w", err)
	}
	return &catalogLoader{schemaValidator: v}, nil
}

// Load reads and parses a catalog JSON file
func (l *catalogLoader) Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalogFailed, err)
	}

	c, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the schema, then checks cross-table rules
func (l *catalogLoader) Parse(data []byte) (*Catalog, error) {
	if err := l.schemaValidator.ValidateBytes(data, CatalogSchemaName); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalogFailed, err)
	}

	return New(cfg)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		l, err := NewLoader()
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = l.Parse(defaultCatalogJSON)
	})
	return defaultCatalog, defaultErr
}

// MustDefault returns the built-in catalog and panics if it is broken
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// LoadOrDefault loads path when it is set, otherwise the built-in catalog
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	l, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}
