package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// Direction values stored in activity.direction.
const (
	DirectionIn  = "C" // purchase / supply
	DirectionOut = "V" // sale
)

// Record is one row of an entity table as shown on a form: every column is
// always present, absent values are "".
type Record struct {
	Columns []string
	Fields  map[string]string
}

// NewRecord returns a record holding every column with an empty value.
func NewRecord(columns []string) Record {
	r := Record{Columns: append([]string(nil), columns...), Fields: make(map[string]string, len(columns))}
	for _, c := range columns {
		r.Fields[c] = ""
	}
	return r
}

func (r Record) Get(col string) string { return r.Fields[col] }

// ID is the value of the "id" column.
func (r Record) ID() string { return r.Fields["id"] }

// Set stores v only for known columns and reports whether it did.
func (r Record) Set(col, v string) bool {
	if _, ok := r.Fields[col]; !ok {
		return false
	}
	r.Fields[col] = v
	return true
}

// Merge copies the known keys of values into a copy of r.
func (r Record) Merge(values map[string]string) Record {
	out := NewRecord(r.Columns)
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	for k, v := range values {
		out.Set(k, v)
	}
	return out
}

// Args converts the record into named query arguments.
func (r Record) Args() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		m[k] = v
	}
	return m
}

// ActivityRef is one entry of the activity selection list.
type ActivityRef struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	Date      string `db:"date"`
}

// Movement is an activity row joined with its product's display name.
type Movement struct {
	ProductName string
	Price       decimal.Decimal
}

// ProductStock carries the product fields the stock reconciliation needs.
type ProductStock struct {
	Name         string `db:"name"`
	InitialStock int    `db:"initial_stock"`
	MinStock     int    `db:"min_stock"`
	Location     string `db:"location"`
}

// Alert is a product whose reconciled balance is below its minimum stock.
type Alert struct {
	Name     string
	Location string
	MinStock int
	Balance  int
}

// Period holds the first and last activity dates; both empty when there is no activity.
type Period struct {
	From string
	To   string
}

func (p Period) Empty() bool { return p.From == "" && p.To == "" }
