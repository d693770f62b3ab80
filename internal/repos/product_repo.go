package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"crmlite/internal/domain"
	"crmlite/internal/validate"
)

var productTable = Table{
	Name:  "products",
	Label: "product",
	Columns: []string{
		"id", "name", "location", "price", "min_stock", "initial_stock", "tax", "description",
	},
}

type ProductRepo struct{ *EntityRepo }

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	r := &ProductRepo{EntityRepo: NewEntityRepo(NewStore(db), productTable)}
	r.prepare = checkProduct
	return r
}

// checkProduct rejects stock levels that are not whole numbers and prices or
// taxes that are not numbers. Blank values are stored as given.
func checkProduct(_ domain.Operation, rec domain.Record) (domain.Record, error) {
	for _, f := range []struct{ col, label string }{
		{"min_stock", "minimum stock"},
		{"initial_stock", "initial stock"},
	} {
		v, ok := validate.Quantity(rec.Get(f.col))
		if !ok {
			return rec, invalidInput(fmt.Sprintf("The product %s shall be a whole number", f.label))
		}
		rec.Set(f.col, v)
	}
	for _, f := range []struct{ col, label string }{
		{"price", "price"},
		{"tax", "tax"},
	} {
		v, ok := validate.Amount(rec.Get(f.col))
		if !ok {
			return rec, invalidInput(fmt.Sprintf("The product %s shall be a number", f.label))
		}
		rec.Set(f.col, v)
	}
	return rec, nil
}

// Stocks returns name, initial stock, minimum stock and location of every
// product in table order. Non-numeric stock values count as 0.
func (r *ProductRepo) Stocks(ctx context.Context) ([]domain.ProductStock, error) {
	var out []domain.ProductStock
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &out, `
			SELECT
			  name,
			  CAST(COALESCE(initial_stock, 0) AS INTEGER) AS initial_stock,
			  CAST(COALESCE(min_stock, 0) AS INTEGER)     AS min_stock,
			  location
			FROM products
			ORDER BY rowid
		`)
	})
	if err != nil {
		return nil, fmt.Errorf("list product stocks: %w", err)
	}
	return out, nil
}
