package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mokka-studios/datatable/pkg/types"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// errUserFacing marks errors whose text is shown to the user as is.
var errUserFacing = errors.New("rejected")

func rejectf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUserFacing, fmt.Sprintf(format, args...))
}

// schema describes how one entity type maps onto its table and JSONL file.
// columns[0] is the primary key and matches the entity's JSON field names.
type schema[T any] struct {
	table   string
	file    string
	noun    string // "Customer"
	columns []string
	orderBy string

	id      func(T) string
	setID   func(*T, string)
	created func(T) time.Time
	stamp   func(e *T, created, updated time.Time)
	values  func(T) []any
	scan    func(scanner) (T, error)

	// check runs before insert and update; inUse before delete. Errors made
	// with rejectf are shown to the user.
	check func(ctx context.Context, q querier, e T) error
	inUse func(ctx context.Context, q querier, e T) error
}

// Table implements types.Adapter[T] for one table of a Backend. Writes run in
// a transaction that also rewrites the table's JSONL file, so a failed file
// write leaves SQLite unchanged.
type Table[T any] struct {
	b *Backend
	s schema[T]
}

func (st *Table[T]) log() logrus.FieldLogger {
	return st.b.log.WithField("table", st.s.table)
}

func (st *Table[T]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(st.s.columns, ", "), st.s.table)
}

func (st *Table[T]) all(ctx context.Context, q querier) ([]T, error) {
	rows, err := q.QueryContext(ctx, st.selectSQL()+" ORDER BY "+st.s.orderBy)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", st.s.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		e, err := st.s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", st.s.table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (st *Table[T]) get(ctx context.Context, q querier, id string) (T, error) {
	row := q.QueryRowContext(ctx, st.selectSQL()+" WHERE "+st.s.columns[0]+" = ?", id)
	e, err := st.s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, types.ErrNotFound
	}
	return e, err
}

func (st *Table[T]) insert(ctx context.Context, q querier, e T) error {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(st.s.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", st.s.table, strings.Join(st.s.columns, ", "), marks)
	if _, err := q.ExecContext(ctx, query, st.s.values(e)...); err != nil {
		return fmt.Errorf("inserting into %s: %w", st.s.table, err)
	}
	return nil
}

func (st *Table[T]) update(ctx context.Context, q querier, e T) error {
	sets := make([]string, 0, len(st.s.columns)-1)
	for _, c := range st.s.columns[1:] {
		sets = append(sets, c+" = ?")
	}
	args := append(st.s.values(e)[1:], st.s.id(e))
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", st.s.table, strings.Join(sets, ", "), st.s.columns[0])
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating %s: %w", st.s.table, err)
	}
	return nil
}

// stage writes the table as seen by q to a temp file that replaces the
// JSONL file once the transaction commits.
func (st *Table[T]) stage(ctx context.Context, q querier) (stagedJSONL, error) {
	entities, err := st.all(ctx, q)
	if err != nil {
		return stagedJSONL{}, err
	}
	records, err := encodeJSONL(entities)
	if err != nil {
		return stagedJSONL{}, err
	}
	return stageJSONL(filepath.Join(st.b.dataDir(), st.s.file), records)
}

// load inserts the entities of the JSONL file. Records that fail to decode
// or violate constraints are skipped.
func (st *Table[T]) load(ctx context.Context, tx *sql.Tx) (int, error) {
	records, err := readJSONL(filepath.Join(st.b.dataDir(), st.s.file))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range decodeJSONL[T](records) {
		if st.s.id(e) == "" {
			continue
		}
		if err := st.insert(ctx, tx, e); err != nil {
			st.log().WithError(err).WithField("id", st.s.id(e)).Warn("skipping record")
			continue
		}
		n++
	}
	return n, nil
}

// write runs fn in a transaction and rewrites the JSONL file. The new file
// is staged before the commit and renamed into place only after it, so a
// failed commit leaves the file as it was. If the rename fails after the
// commit, the database is ahead of the file until the next Attach reloads
// it; the error is returned.
func (st *Table[T]) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := st.b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	f, err := st.stage(ctx, tx)
	if err != nil {
		return fmt.Errorf("persisting %s: %w", st.s.file, err)
	}
	return st.b.commitStaged(tx, f)
}

// failed logs err and converts it into a failed Result. Only rejections and
// not-found errors reach the user verbatim.
func (st *Table[T]) failed(op string, err error) types.Result[T] {
	switch {
	case errors.Is(err, errUserFacing):
		return types.Failed[T](strings.TrimPrefix(err.Error(), errUserFacing.Error()+": "))
	case errors.Is(err, types.ErrNotFound):
		return types.Failed[T](st.s.noun + " not found.")
	case errors.Is(err, types.ErrDetached):
		return types.Failed[T]("The data store is not available.")
	}
	st.log().WithError(err).WithField("op", op).Error("adapter call failed")
	return types.Failed[T]("")
}

func (st *Table[T]) validate(e T) error {
	if err := st.b.validate.Struct(e); err != nil {
		return rejectf("%s", validationMessage(err))
	}
	return nil
}

// List returns every entity in table order.
func (st *Table[T]) List(ctx context.Context) types.ListResult[T] {
	st.b.mu.RLock()
	defer st.b.mu.RUnlock()
	if !st.b.attached {
		return types.ListResult[T]{Error: "The data store is not available."}
	}
	data, err := st.all(ctx, st.b.db)
	if err != nil {
		st.log().WithError(err).Error("list failed")
		return types.ListResult[T]{Error: types.DefaultAdapterMessage}
	}
	return types.ListResult[T]{Data: data}
}

// Get returns the entity with the given id.
func (st *Table[T]) Get(ctx context.Context, id string) (T, error) {
	st.b.mu.RLock()
	defer st.b.mu.RUnlock()
	var zero T
	if !st.b.attached {
		return zero, types.ErrDetached
	}
	if id == "" {
		return zero, types.ErrInvalidID
	}
	return st.get(ctx, st.b.db, id)
}

// Create stores e under a new UUID v7 and returns it.
func (st *Table[T]) Create(ctx context.Context, e T) types.Result[T] {
	st.b.mu.Lock()
	defer st.b.mu.Unlock()
	if !st.b.attached {
		return st.failed("create", types.ErrDetached)
	}

	now := st.b.now()
	st.s.setID(&e, newUUID())
	st.s.stamp(&e, now, now)
	if err := st.validate(e); err != nil {
		return st.failed("create", err)
	}
	err := st.write(ctx, func(tx *sql.Tx) error {
		if st.s.check != nil {
			if err := st.s.check(ctx, tx, e); err != nil {
				return err
			}
		}
		return st.insert(ctx, tx, e)
	})
	if err != nil {
		return st.failed("create", err)
	}
	st.log().WithField("id", st.s.id(e)).Debug("created")
	return types.Succeeded(e, st.s.noun+" created.")
}

// Update replaces the stored entity with e's id. The creation time is kept.
func (st *Table[T]) Update(ctx context.Context, e T) types.Result[T] {
	st.b.mu.Lock()
	defer st.b.mu.Unlock()
	if !st.b.attached {
		return st.failed("update", types.ErrDetached)
	}
	id := st.s.id(e)
	if id == "" {
		return st.failed("update", rejectf("%s has no id.", st.s.noun))
	}
	if err := st.validate(e); err != nil {
		return st.failed("update", err)
	}

	err := st.write(ctx, func(tx *sql.Tx) error {
		old, err := st.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if st.s.check != nil {
			if err := st.s.check(ctx, tx, e); err != nil {
				return err
			}
		}
		st.s.stamp(&e, st.s.created(old), st.b.now())
		return st.update(ctx, tx, e)
	})
	if err != nil {
		return st.failed("update", err)
	}
	return types.Succeeded(e, st.s.noun+" updated.")
}

// Delete removes the entity with e's id.
func (st *Table[T]) Delete(ctx context.Context, e T) types.Result[T] {
	st.b.mu.Lock()
	defer st.b.mu.Unlock()
	if !st.b.attached {
		return st.failed("delete", types.ErrDetached)
	}
	id := st.s.id(e)
	if id == "" {
		return st.failed("delete", rejectf("%s has no id.", st.s.noun))
	}

	var deleted T
	err := st.write(ctx, func(tx *sql.Tx) error {
		old, err := st.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if st.s.inUse != nil {
			if err := st.s.inUse(ctx, tx, old); err != nil {
				return err
			}
		}
		deleted = old
		_, err = tx.ExecContext(ctx, "DELETE FROM "+st.s.table+" WHERE "+st.s.columns[0]+" = ?", id)
		return err
	})
	if err != nil {
		return st.failed("delete", err)
	}
	return types.Succeeded(deleted, st.s.noun+" deleted.")
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
