package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmlite/internal/repos"
	"crmlite/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, repos.EnsureSchema(db))
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedMovements(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`
	INSERT INTO products(id,name,location,price,min_stock,initial_stock) VALUES
	  ('a1','A','L1',10,1,0),
	  ('b1','B','L2',5,1,0),
	  ('a2','A','L3',1,1,0);
	INSERT INTO activity(product_id,direction,party_id,price,date) VALUES
	  ('a1','V','cust',10,'2024-03-02'),
	  ('a1','V','other',10.5,'2024-03-01'),
	  ('b1','C','sup',5,'2024-04-01');
	`)
	require.NoError(t, err)
}

func TestUnitCounts_FilterByDirection(t *testing.T) {
	db := memdb(t)
	seedMovements(t, db)
	svc := services.NewActivityService(repos.NewActivityRepo(db))

	got, err := svc.UnitCounts(context.Background(), "", "V")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2}, got)

	got, err = svc.UnitCounts(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, got)
}

func TestUnitCounts_FilterByActor(t *testing.T) {
	db := memdb(t)
	seedMovements(t, db)
	svc := services.NewActivityService(repos.NewActivityRepo(db))

	got, err := svc.UnitCounts(context.Background(), "cust", "V")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1}, got)

	got, err = svc.UnitCounts(context.Background(), `cust" OR "1"="1`, "")
	require.NoError(t, err)
	assert.Empty(t, got, "actor filter must be bound, not interpolated")
}

func TestUnitCounts_MergesSharedNames(t *testing.T) {
	db := memdb(t)
	seedMovements(t, db)
	_, err := db.Exec(`INSERT INTO activity(product_id,direction,party_id,price,date) VALUES ('a2','V','cust',1,'2024-05-01')`)
	require.NoError(t, err)
	svc := services.NewActivityService(repos.NewActivityRepo(db))

	got, err := svc.UnitCounts(context.Background(), "", "V")
	require.NoError(t, err)
	assert.Equal(t, 3, got["A"])
}

func TestUnitCounts_RejectsUnknownDirection(t *testing.T) {
	db := memdb(t)
	svc := services.NewActivityService(repos.NewActivityRepo(db))
	_, err := svc.UnitCounts(context.Background(), "", "X")
	assert.Error(t, err)
}

func TestValueSums(t *testing.T) {
	db := memdb(t)
	seedMovements(t, db)
	svc := services.NewActivityService(repos.NewActivityRepo(db))

	got, err := svc.ValueSums(context.Background(), "V")
	require.NoError(t, err)
	require.Contains(t, got, "A")
	assert.True(t, decimal.RequireFromString("20.5").Equal(got["A"]), got["A"].String())
	assert.NotContains(t, got, "B")
}

func TestPeriodBounds(t *testing.T) {
	db := memdb(t)
	svc := services.NewActivityService(repos.NewActivityRepo(db))

	p, err := svc.PeriodBounds(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Empty())

	seedMovements(t, db)
	p, err = svc.PeriodBounds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", p.From)
	assert.Equal(t, "2024-04-01", p.To)
}
