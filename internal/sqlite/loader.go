package sqlite

import (
	"context"
	"fmt"
)

// loadAll reads the JSONL files into SQLite in one transaction: either every
// file loads or the database stays empty. Categories load first so product
// references resolve. It returns the number of records loaded.
func (b *Backend) loadAll(ctx context.Context) (int, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, load := range []func() (int, error){
		func() (int, error) { return b.categories.load(ctx, tx) },
		func() (int, error) { return b.customers.load(ctx, tx) },
		func() (int, error) { return b.products.load(ctx, tx) },
	} {
		n, err := load()
		if err != nil {
			return 0, err
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return total, nil
}
