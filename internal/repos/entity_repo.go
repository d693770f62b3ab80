package repos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"crmlite/internal/domain"
	"crmlite/internal/validate"
)

// Table describes an entity table. Columns[0] must be "id".
type Table struct {
	Name    string
	Label   string // used in advisory messages: "user", "product", "activity"
	Columns []string
	AutoID  bool // id assigned by the store on insert
}

// errRollback aborts a write transaction whose outcome is already decided.
var errRollback = errors.New("rollback")

// invalidInput is returned by a prepare hook to reject a record before it
// reaches the store. Its text is shown to the user.
type invalidInput string

func (e invalidInput) Error() string { return string(e) }

// EntityRepo implements list/fetch/apply for one entity table.
type EntityRepo struct {
	store *Store
	t     Table

	selectSQL string
	insertSQL string
	updateSQL string

	// prepare, when set, rewrites a record before it is written.
	prepare func(op domain.Operation, rec domain.Record) (domain.Record, error)
}

func NewEntityRepo(store *Store, t Table) *EntityRepo {
	r := &EntityRepo{store: store, t: t}

	r.selectSQL = fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, strings.Join(t.Columns, ","), t.Name)

	insCols := t.Columns
	if t.AutoID {
		insCols = t.Columns[1:]
	}
	named := make([]string, len(insCols))
	for i, c := range insCols {
		named[i] = ":" + c
	}
	r.insertSQL = fmt.Sprintf(`INSERT INTO %s(%s) VALUES(%s)`, t.Name, strings.Join(insCols, ","), strings.Join(named, ","))

	sets := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		sets = append(sets, c+"=:"+c)
	}
	r.updateSQL = fmt.Sprintf(`UPDATE %s SET %s WHERE id=:id`, t.Name, strings.Join(sets, ","))
	return r
}

func (r *EntityRepo) Table() Table { return r.t }

// Empty returns a record with every column present and empty.
func (r *EntityRepo) Empty() domain.Record { return domain.NewRecord(r.t.Columns) }

// ListIDs returns every identifier, preceded by the blank "no selection" entry.
func (r *EntityRepo) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		ids, err = r.listIDs(ctx, conn)
		return err
	})
	return ids, err
}

func (r *EntityRepo) listIDs(ctx context.Context, conn *sqlx.Conn) ([]string, error) {
	_, rows, err := QueryRows(ctx, conn, fmt.Sprintf(`SELECT id FROM %s ORDER BY id`, r.t.Name))
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", r.t.Label, err)
	}
	ids := make([]string, 0, len(rows)+1)
	ids = append(ids, "")
	for _, row := range rows {
		ids = append(ids, row[0])
	}
	return ids, nil
}

// Fetch returns the record for id together with the identifier list. When id
// is blank or unknown the record holds every column with an empty value.
func (r *EntityRepo) Fetch(ctx context.Context, id string) (domain.Record, []string, error) {
	rec := r.Empty()
	var ids []string
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		var err error
		if ids, err = r.listIDs(ctx, conn); err != nil {
			return err
		}
		if strings.TrimSpace(id) == "" {
			return nil
		}
		cols, rows, err := QueryRows(ctx, conn, r.selectSQL, id)
		if err != nil {
			return fmt.Errorf("fetch %s %q: %w", r.t.Label, id, err)
		}
		if len(rows) == 0 {
			return nil
		}
		for i, c := range cols {
			rec.Set(c, rows[0][i])
		}
		return nil
	})
	if err != nil {
		return r.Empty(), nil, err
	}
	return rec, ids, nil
}

// Count returns the number of rows in the table.
func (r *EntityRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.store.WithConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.t.Name))
	})
	return n, err
}

// Apply performs op with rec in a single transaction. Nothing is changed
// unless the returned outcome is a success.
func (r *EntityRepo) Apply(ctx context.Context, op domain.Operation, rec domain.Record) domain.Outcome {
	rec = r.Empty().Merge(rec.Fields)
	id := strings.TrimSpace(rec.ID())
	rec.Set("id", id)

	switch op {
	case domain.OpInsert:
		if !r.t.AutoID {
			if id == "" {
				return domain.Invalid(op, fmt.Sprintf("The %s id cannot be empty", r.t.Label))
			}
			if _, ok := validate.ID(id); !ok {
				return domain.Invalid(op, fmt.Sprintf("The %s id cannot be longer than %d characters", r.t.Label, validate.MaxIDLen))
			}
		}
	case domain.OpUpdate, domain.OpDelete:
		if id == "" {
			return domain.NotFound(op, r.t.Label, id)
		}
	default:
		return domain.Invalid(op, fmt.Sprintf("unknown operation %q", op))
	}

	if r.prepare != nil && op != domain.OpDelete {
		var err error
		if rec, err = r.prepare(op, rec); err != nil {
			var bad invalidInput
			if errors.As(err, &bad) {
				return domain.Invalid(op, string(bad))
			}
			return domain.StoreError(op, err)
		}
	}

	var out domain.Outcome
	err := r.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		switch op {
		case domain.OpUpdate:
			res, err := tx.NamedExecContext(ctx, r.updateSQL, rec.Args())
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				out = domain.NotFound(op, r.t.Label, id)
				return errRollback
			}
			out = domain.Success(op, id, n)

		case domain.OpInsert:
			if !r.t.AutoID {
				exists, err := r.exists(ctx, tx, id)
				if err != nil {
					return err
				}
				if exists {
					out = domain.DuplicateKey(r.t.Label, id)
					return errRollback
				}
			}
			res, err := tx.NamedExecContext(ctx, r.insertSQL, rec.Args())
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			newID := id
			if r.t.AutoID {
				last, err := res.LastInsertId()
				if err != nil {
					return err
				}
				newID = strconv.FormatInt(last, 10)
			}
			out = domain.Success(op, newID, n)

		case domain.OpDelete:
			exists, err := r.exists(ctx, tx, id)
			if err != nil {
				return err
			}
			if !exists {
				out = domain.NotFound(op, r.t.Label, id)
				return errRollback
			}
			res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.t.Name), id)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			out = domain.Success(op, id, n)
		}
		return nil
	})
	switch {
	case errors.Is(err, errRollback):
		return out
	case err != nil && op == domain.OpInsert && isDuplicateKey(err):
		return domain.DuplicateKey(r.t.Label, id)
	case err != nil:
		return domain.StoreError(op, fmt.Errorf("%s %s: %w", op, r.t.Label, err))
	}
	return out
}

func (r *EntityRepo) exists(ctx context.Context, tx *sqlx.Tx, id string) (bool, error) {
	var n int
	if err := tx.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, r.t.Name), id); err != nil {
		return false, err
	}
	return n > 0, nil
}
