package sqlite

// Schema DDL. SQLite is a query cache rebuilt from the JSONL files on every
// attach, so there are no migrations.
const (
	createCategories = `CREATE TABLE categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createCustomers = `CREATE TABLE customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    orders INTEGER NOT NULL DEFAULT 0,
    spent REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProducts = `CREATE TABLE products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category_id TEXT NOT NULL DEFAULT '',
    price REAL NOT NULL DEFAULT 0,
    stock INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProductsCategoryIndex = `CREATE INDEX idx_products_category ON products(category_id);`
	createCustomersStatusIndex  = `CREATE INDEX idx_customers_status ON customers(status);`
)

// schemaStatements lists the DDL in execution order.
var schemaStatements = []string{
	createCategories,
	createCustomers,
	createProducts,
	createProductsCategoryIndex,
	createCustomersStatusIndex,
}
