package sqlite

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// JSONL file names, one per entity table.
const (
	customersJSONL  = "customers.jsonl"
	productsJSONL   = "products.jsonl"
	categoriesJSONL = "categories.jsonl"
)

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped. A missing file reads as
// empty.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// decodeJSONL decodes records into entities, skipping records that do not
// decode into T. Unknown fields are ignored.
func decodeJSONL[T any](records []json.RawMessage) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var e T
		if err := json.Unmarshal(rec, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// encodeJSONL marshals entities to one record each.
func encodeJSONL[T any](entities []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(entities))
	for i, e := range entities {
		b, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

// writeJSONL atomically replaces path with records using the temp-file,
// fsync, rename pattern. Readers see the old file or the new one, never a
// partial write.
func writeJSONL(path string, records []json.RawMessage) error {
	f, err := stageJSONL(path, records)
	if err != nil {
		return err
	}
	return f.publish()
}

// stagedJSONL is a synced temp file waiting to replace path.
type stagedJSONL struct {
	tmp  string
	path string
}

// publish renames the temp file over path.
func (f stagedJSONL) publish() error {
	if err := os.Rename(f.tmp, f.path); err != nil {
		os.Remove(f.tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// discard removes the temp file, leaving path untouched.
func (f stagedJSONL) discard() { os.Remove(f.tmp) }

// stageJSONL writes records to a synced temp file next to path.
func stageJSONL(path string, records []json.RawMessage) (_ stagedJSONL, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return stagedJSONL{}, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err = w.Write(rec); err != nil {
			return stagedJSONL{}, fmt.Errorf("writing record: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return stagedJSONL{}, fmt.Errorf("writing newline: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return stagedJSONL{}, fmt.Errorf("flushing buffer: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return stagedJSONL{}, fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return stagedJSONL{}, fmt.Errorf("closing temp file: %w", err)
	}
	return stagedJSONL{tmp: tmpName, path: path}, nil
}

// ensureJSONL creates an empty file at path when none exists and reports
// whether it did.
func ensureJSONL(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return true, f.Close()
}
