// Package sqlite implements the storage backend behind the table adapters.
// JSONL files in the data directory are the source of truth; SQLite is the
// query engine, rebuilt from those files on every attach.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mokka-studios/datatable/pkg/types"
)

var _ types.Backend = (*Backend)(nil)

// dbFile is the SQLite database file inside the data directory.
const dbFile = "datatable.db"

// Backend owns the SQLite connection and one Table per entity type. It
// implements types.Backend.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	log      logrus.FieldLogger
	validate *validator.Validate
	now      func() time.Time
	commit   func(*sql.Tx) error

	customers  *Table[types.Customer]
	products   *Table[types.Product]
	categories *Table[types.Category]
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The backend logs nothing by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Backend) { b.log = l }
}

// WithClock replaces time.Now for creation and update stamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend(opts ...Option) *Backend {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	b := &Backend{log: discard, validate: newValidator(), now: time.Now, commit: (*sql.Tx).Commit}
	for _, opt := range opts {
		opt(b)
	}
	b.customers = &Table[types.Customer]{b: b, s: customerSchema}
	b.products = &Table[types.Product]{b: b, s: productSchema}
	b.categories = &Table[types.Category]{b: b, s: categorySchema}
	return b
}

// Customers returns the customer adapter.
func (b *Backend) Customers() types.Repository[types.Customer] { return b.customers }

// Products returns the product adapter.
func (b *Backend) Products() types.Repository[types.Product] { return b.products }

// Categories returns the category adapter.
func (b *Backend) Categories() types.Repository[types.Category] { return b.categories }

func (b *Backend) dataDir() string {
	if b.config.DataDir == "" {
		return "."
	}
	return b.config.DataDir
}

// Attach validates config, creates the data directory and its JSONL files if
// needed, builds a fresh SQLite database and loads the files into it. With
// SeedDemoData set, demo entities are written the first time a data
// directory is attached, that is when Attach created all three JSONL files.
// A directory emptied through the adapters stays empty.
// Returns types.ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	b.config = config

	dir := b.dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	fresh := true
	for _, name := range []string{customersJSONL, productsJSONL, categoriesJSONL} {
		created, err := ensureJSONL(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		fresh = fresh && created
	}

	// The database is a cache of the JSONL files; start from scratch.
	dbPath := filepath.Join(dir, dbFile)
	_ = os.Remove(dbPath)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	b.db = db

	loaded, err := b.loadAll(ctx)
	if err != nil {
		db.Close()
		b.db = nil
		return fmt.Errorf("load JSONL: %w", err)
	}
	if config.SeedDemoData && fresh {
		if err := b.seed(ctx); err != nil {
			db.Close()
			b.db = nil
			// Leave the directory fresh so the next Attach seeds again.
			for _, name := range []string{customersJSONL, productsJSONL, categoriesJSONL} {
				os.Remove(filepath.Join(dir, name))
			}
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}

	b.attached = true
	b.log.WithFields(logrus.Fields{"data_dir": dir, "records": loaded}).Debug("backend attached")
	return nil
}

// Detach closes the database. After Detach every adapter call fails with a
// "not available" message. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

// commitStaged commits tx and then moves the staged files into place. On a
// failed commit the staged files are removed.
func (b *Backend) commitStaged(tx *sql.Tx, files ...stagedJSONL) error {
	if err := b.commit(tx); err != nil {
		for _, f := range files {
			f.discard()
		}
		return fmt.Errorf("committing transaction: %w", err)
	}
	for i, f := range files {
		if err := f.publish(); err != nil {
			for _, rest := range files[i+1:] {
				rest.discard()
			}
			return fmt.Errorf("replacing %s: %w", filepath.Base(f.path), err)
		}
	}
	return nil
}

// Attached reports whether the backend is attached.
func (b *Backend) Attached() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.attached
}

// newUUID generates a UUID v7 for entity IDs, falling back to v4.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
