package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mokka-studios/datatable/pkg/types"
)

func TestTable_CustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)
	customers := b.Customers()

	c := mustCreate(t, customers.Create(ctx, types.Customer{
		Name: "Ada Lovelace", Email: "ada@analytical.io", Status: types.CustomerActive, Orders: 2, Spent: 99.5,
	}))
	if id, err := uuid.Parse(c.ID); err != nil || id.Version() != 7 {
		t.Errorf("expected a UUID v7 id, got %q", c.ID)
	}
	if c.CreatedAt.IsZero() || !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Errorf("timestamps not stamped: %+v", c)
	}

	c.City = "London"
	res := customers.Update(ctx, c)
	if !res.Success {
		t.Fatalf("Update failed: %s", res.Message)
	}
	updated := *res.Entity
	if !updated.CreatedAt.Equal(c.CreatedAt) || !updated.UpdatedAt.After(c.UpdatedAt) {
		t.Errorf("update must keep created_at and bump updated_at: %+v", updated)
	}

	got, err := customers.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.City != "London" {
		t.Errorf("City = %q, want London", got.City)
	}

	if res := customers.Delete(ctx, c); !res.Success {
		t.Fatalf("Delete failed: %s", res.Message)
	}
	if _, err := customers.Get(ctx, c.ID); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if res := customers.Delete(ctx, c); res.Success || res.Message != "Customer not found." {
		t.Errorf("second delete = %+v", res)
	}
}

func TestTable_ValidationMessages(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)

	tests := []struct {
		name     string
		customer types.Customer
		want     string
	}{
		{"missing name", types.Customer{Email: "a@b.co", Status: "active"}, "name is required."},
		{"bad email", types.Customer{Name: "A", Email: "nope", Status: "active"}, `"nope" is not a valid email address.`},
		{"bad status", types.Customer{Name: "A", Email: "a@b.co", Status: "vip"}, "status must be one of: active, inactive, lead."},
		{"negative spend", types.Customer{Name: "A", Email: "a@b.co", Status: "lead", Spent: -1}, "spent must not be negative."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := b.Customers().Create(ctx, tt.customer)
			if res.Success {
				t.Fatal("expected failure")
			}
			if res.Message != tt.want {
				t.Errorf("message = %q, want %q", res.Message, tt.want)
			}
		})
	}
}

func TestTable_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)
	mustCreate(t, b.Customers().Create(ctx, types.Customer{Name: "A", Email: "a@b.co", Status: "lead"}))

	res := b.Customers().Create(ctx, types.Customer{Name: "B", Email: "A@B.CO", Status: "lead"})
	if res.Success || !strings.Contains(res.Message, "already exists") {
		t.Errorf("duplicate email = %+v", res)
	}
}

func TestTable_UpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)

	res := b.Categories().Update(ctx, types.Category{ID: "missing", Name: "X"})
	if res.Success || res.Message != "Category not found." {
		t.Errorf("update = %+v", res)
	}
	res = b.Categories().Update(ctx, types.Category{Name: "X"})
	if res.Success || res.Message != "Category has no id." {
		t.Errorf("update without id = %+v", res)
	}
}

func TestTable_CategoryReferences(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)

	res := b.Products().Create(ctx, types.Product{Name: "Lamp", CategoryID: "nope", Status: types.ProductAvailable})
	if res.Success || !strings.Contains(res.Message, "does not exist") {
		t.Errorf("dangling category = %+v", res)
	}

	cat := mustCreate(t, b.Categories().Create(ctx, types.Category{Name: "Lighting"}))
	p := mustCreate(t, b.Products().Create(ctx, types.Product{Name: "Lamp", CategoryID: cat.ID, Status: types.ProductAvailable}))

	res2 := b.Categories().Delete(ctx, cat)
	if res2.Success || res2.Message != `Category "Lighting" is used by 1 products.` {
		t.Errorf("delete in-use category = %+v", res2)
	}

	if res := b.Products().Delete(ctx, p); !res.Success {
		t.Fatalf("delete product failed: %s", res.Message)
	}
	if res := b.Categories().Delete(ctx, cat); !res.Success {
		t.Errorf("delete unused category failed: %s", res.Message)
	}
}

func TestTable_WritesPersistToJSONL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := attach(t, dir, false)

	a := mustCreate(t, b.Categories().Create(ctx, types.Category{Name: "B", Ordinal: 2}))
	mustCreate(t, b.Categories().Create(ctx, types.Category{Name: "A", Ordinal: 1}))

	records, err := readJSONL(filepath.Join(dir, categoriesJSONL))
	if err != nil {
		t.Fatal(err)
	}
	cats := decodeJSONL[types.Category](records)
	if len(cats) != 2 || cats[0].Name != "A" || cats[1].Name != "B" {
		t.Errorf("categories.jsonl = %+v", cats)
	}

	b.Categories().Delete(ctx, a)
	records, _ = readJSONL(filepath.Join(dir, categoriesJSONL))
	if len(records) != 1 {
		t.Errorf("expected 1 record after delete, got %d", len(records))
	}
}

func TestTable_FailedCommitKeepsJSONL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b := attach(t, dir, false)
	mustCreate(t, b.Customers().Create(ctx, types.Customer{Name: "Kept", Email: "kept@x.io", Status: "lead"}))

	path := filepath.Join(dir, customersJSONL)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	b.commit = func(tx *sql.Tx) error {
		tx.Rollback()
		return errors.New("disk full")
	}
	res := b.Customers().Create(ctx, types.Customer{Name: "Lost", Email: "lost@x.io", Status: "lead"})
	if res.Success {
		t.Fatalf("Create succeeded despite failed commit: %+v", res)
	}

	after, _ := os.ReadFile(path)
	if string(after) != string(before) {
		t.Errorf("customers.jsonl changed:\nbefore %q\nafter  %q", before, after)
	}
	if tmps, _ := filepath.Glob(filepath.Join(dir, ".jsonl-*.tmp")); len(tmps) != 0 {
		t.Errorf("temp files left behind: %v", tmps)
	}

	b.commit = (*sql.Tx).Commit
	list := b.Customers().List(ctx).Data
	if len(list) != 1 || list[0].Name != "Kept" {
		t.Errorf("list after failed commit = %+v", list)
	}
}

func TestTable_ListOrder(t *testing.T) {
	ctx := context.Background()
	b := attach(t, t.TempDir(), false)
	for _, name := range []string{"first", "second", "third"} {
		mustCreate(t, b.Customers().Create(ctx, types.Customer{Name: name, Email: name + "@x.io", Status: "lead"}))
	}
	res := b.Customers().List(ctx)
	var names []string
	for _, c := range res.Data {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "first,second,third" {
		t.Errorf("list order = %v", names)
	}
}
