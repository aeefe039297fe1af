package store

import (
	"errors"
	"fmt"
)

// Errors shared by every backend.
var (
	ErrNotFound    = errors.New("item not found")
	ErrDuplicateID = errors.New("duplicate item id")
)

// Kind selects a storage backend.
type Kind string

const (
	KindText Kind = "text"
	KindCSV  Kind = "csv"
	KindHTML Kind = "html"
	KindSQL  Kind = "sql"
)

// Config identifies the active backend. It is passed explicitly to Open;
// there is no ambient "current backend" anywhere in the package.
type Config struct {
	Kind Kind

	// Path is the backing file for the text, csv and html kinds.
	Path string

	// Driver and DSN configure the sql kind. Supported drivers are
	// "postgres" and "mysql"; the driver must be registered by the
	// caller (blank import).
	Driver string
	DSN    string
}

// Open constructs the backend described by cfg. A failure here (file not
// creatable, database unreachable) is fatal for the instance: no Store is
// returned and nothing needs closing.
func Open(cfg Config) (Store, error) {
	switch cfg.Kind {
	case KindText:
		return NewTextStore(cfg.Path)
	case KindCSV:
		return NewCSVStore(cfg.Path)
	case KindHTML:
		return NewHTMLStore(cfg.Path)
	case KindSQL:
		return NewSQLStore(cfg.Driver, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
