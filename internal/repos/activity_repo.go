package repos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"crmlite/internal/domain"
	"crmlite/internal/validate"
)

var activityTable = Table{
	Name:  "activity",
	Label: "activity",
	Columns: []string{
		"id", "product_id", "direction", "party_id", "price", "date", "serial_num", "notes",
	},
	AutoID: true,
}

type ActivityRepo struct{ *EntityRepo }

func NewActivityRepo(db *sqlx.DB) *ActivityRepo {
	r := &ActivityRepo{EntityRepo: NewEntityRepo(NewStore(db), activityTable)}
	r.prepare = checkActivity
	return r
}

// checkActivity stores the direction as "C" or "V"; anything else would be
// ignored by every aggregate.
func checkActivity(_ domain.Operation, rec domain.Record) (domain.Record, error) {
	dir, ok := validate.Direction(rec.Get("direction"))
	if !ok || dir == "" {
		return rec, invalidInput("The activity direction shall be C (purchase) or V (sale)")
	}
	rec.Set("direction", dir)
	price, ok := validate.Amount(rec.Get("price"))
	if !ok {
		return rec, invalidInput("The activity price shall be a number")
	}
	rec.Set("price", price)
	return rec, nil
}

// ListRefs returns (id, product id, date) for every activity, preceded by a
// blank entry.
func (r *ActivityRepo) ListRefs(ctx context.Context) ([]domain.ActivityRef, error) {
	out := []domain.ActivityRef{{}}
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var rows []domain.ActivityRef
		if err := conn.SelectContext(ctx, &rows, `
			SELECT CAST(id AS TEXT) AS id, product_id, date
			FROM activity
			ORDER BY id
		`); err != nil {
			return err
		}
		out = append(out, rows...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list activity refs: %w", err)
	}
	return out, nil
}

type movementRow struct {
	ProductName string  `db:"name"`
	Price       float64 `db:"price"`
}

// Movements joins activity with products. Blank actorID or direction means
// no filter on that column; both are bound as parameters.
func (r *ActivityRepo) Movements(ctx context.Context, actorID, direction string) ([]domain.Movement, error) {
	query := `
		SELECT p.name, CAST(COALESCE(a.price, 0) AS REAL) AS price
		FROM activity a
		JOIN products p ON p.id = a.product_id
		WHERE 1 = 1`
	args := []any{}
	if direction != "" {
		query += ` AND a.direction = ?`
		args = append(args, direction)
	}
	if actorID != "" {
		query += ` AND a.party_id = ?`
		args = append(args, actorID)
	}
	query += ` ORDER BY a.id`

	var rows []movementRow
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	out := make([]domain.Movement, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Movement{ProductName: m.ProductName, Price: decimal.NewFromFloat(m.Price)})
	}
	return out, nil
}

// Period returns the smallest and largest activity date.
func (r *ActivityRepo) Period(ctx context.Context) (domain.Period, error) {
	var row struct {
		From sql.NullString `db:"from_date"`
		To   sql.NullString `db:"to_date"`
	}
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &row, `SELECT MIN(date) AS from_date, MAX(date) AS to_date FROM activity`)
	})
	if err != nil {
		return domain.Period{}, fmt.Errorf("activity period: %w", err)
	}
	return domain.Period{From: row.From.String, To: row.To.String}, nil
}
