package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Open connects to the SQLite database at dsn. SQLite is used through a
// single connection so that ":memory:" databases survive between operations.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenDB opens the database, creates missing tables and seeds demo data.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo data (idempotent; safe to run every start)
	if err := seedDemoData(db); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the users, products and activity tables if missing.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
-- Users: role flags hold 'checked' or ''
CREATE TABLE IF NOT EXISTS users(
  id       TEXT PRIMARY KEY,
  name     TEXT NOT NULL DEFAULT '',
  street   TEXT NOT NULL DEFAULT '',
  city     TEXT NOT NULL DEFAULT '',
  state    TEXT NOT NULL DEFAULT '',
  iban     TEXT NOT NULL DEFAULT '',
  payment  TEXT NOT NULL DEFAULT '',
  notes    TEXT NOT NULL DEFAULT '',
  customer TEXT NOT NULL DEFAULT '',
  supplier TEXT NOT NULL DEFAULT '',
  admin    TEXT NOT NULL DEFAULT '',
  password TEXT NOT NULL DEFAULT ''
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL DEFAULT '',
  location      TEXT NOT NULL DEFAULT '',
  price         REAL,
  min_stock     INTEGER,
  initial_stock INTEGER,
  tax           REAL,
  description   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);

-- Activity: direction 'C' purchase/supply, 'V' sale
CREATE TABLE IF NOT EXISTS activity(
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id TEXT NOT NULL DEFAULT '',
  direction  TEXT NOT NULL DEFAULT '',
  party_id   TEXT NOT NULL DEFAULT '',
  price      REAL,
  date       TEXT NOT NULL DEFAULT '',
  serial_num TEXT NOT NULL DEFAULT '',
  notes      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_activity_product   ON activity(product_id);
CREATE INDEX IF NOT EXISTS idx_activity_party     ON activity(party_id);
CREATE INDEX IF NOT EXISTS idx_activity_direction ON activity(direction);
`
	_, err := db.Exec(schema)
	return err
}

// seedDemoData inserts a few users, products and movements when missing.
func seedDemoData(db *sqlx.DB) error {
	type u struct {
		ID, Name, City, Admin, Supplier, Customer, Hash string
	}
	mk := func(id, name, city, admin, supplier, customer, raw string) (u, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		if err != nil {
			return u{}, fmt.Errorf("hash seed password: %w", err)
		}
		return u{ID: id, Name: name, City: city, Admin: admin, Supplier: supplier, Customer: customer, Hash: string(h)}, nil
	}

	var users []u
	for _, x := range [][7]string{
		{"admin", "Administrator", "Madrid", "checked", "", "", "Passw0rd!"},
		{"acme", "Acme Supplies", "Valencia", "", "checked", "", "Passw0rd!"},
		{"jdoe", "John Doe", "Sevilla", "", "", "checked", "Passw0rd!"},
	} {
		row, err := mk(x[0], x[1], x[2], x[3], x[4], x[5], x[6])
		if err != nil {
			return err
		}
		users = append(users, row)
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,city,admin,supplier,customer,password)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, x.ID, x.Name, x.City, x.Admin, x.Supplier, x.Customer, x.Hash); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO products(id,name,location,price,min_stock,initial_stock,tax,description) VALUES
		  ('p-001','Widget','A-01',12.50,10,20,21,'Standard widget'),
		  ('p-002','Gadget','A-02',30.00,5,6,21,'Pocket gadget'),
		  ('p-003','Gizmo','B-01',7.25,8,4,10,'Spare gizmo')
		ON CONFLICT(id) DO NOTHING
	`); err != nil {
		return err
	}

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM activity`); err != nil {
		return err
	}
	if n == 0 {
		if _, err := tx.Exec(`
			INSERT INTO activity(product_id,direction,party_id,price,date,serial_num,notes) VALUES
			  ('p-001','C','acme',100.00,'2024-01-03','SN-1001',''),
			  ('p-001','V','jdoe',12.50,'2024-01-10','SN-1002',''),
			  ('p-001','V','jdoe',12.50,'2024-01-11','SN-1003',''),
			  ('p-002','V','jdoe',30.00,'2024-01-15','SN-2001',''),
			  ('p-003','C','acme',29.00,'2024-02-01','SN-3001','')
		`); err != nil {
			return err
		}
	}

	return tx.Commit()
}
