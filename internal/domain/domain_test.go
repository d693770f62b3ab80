package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"crmlite/internal/domain"
)

func TestRecordMergeKeepsColumns(t *testing.T) {
	r := domain.NewRecord([]string{"id", "name"})
	m := r.Merge(map[string]string{"id": "u1", "extra": "x"})

	assert.Equal(t, map[string]string{"id": "u1", "name": ""}, m.Fields)
	assert.Equal(t, "", r.ID(), "merge copies")
	assert.False(t, m.Set("extra", "y"))
}

func TestClassifyRolePrecedence(t *testing.T) {
	u := domain.NewRecord([]string{"id", "admin", "supplier", "customer"})
	assert.Equal(t, domain.RoleNone, domain.ClassifyRole(u))

	u.Set("customer", domain.Checked)
	assert.Equal(t, domain.RoleCustomer, domain.ClassifyRole(u))
	u.Set("supplier", domain.Checked)
	assert.Equal(t, domain.RoleSupplier, domain.ClassifyRole(u))
	u.Set("admin", domain.Checked)
	assert.Equal(t, domain.RoleAdmin, domain.ClassifyRole(u))

	u.Set("admin", "yes")
	assert.Equal(t, domain.RoleSupplier, domain.ClassifyRole(u), "only the marker counts")
}

func TestOutcomeMessages(t *testing.T) {
	assert.Equal(t, "The number of inserted registers is 1", domain.Success(domain.OpInsert, "u1", 1).Message)
	assert.Equal(t, "The user id shall be unique.", domain.DuplicateKey("user", "u1").Message)

	nf := domain.NotFound(domain.OpUpdate, "product", "p1")
	assert.False(t, nf.OK())
	assert.Contains(t, nf.Message, "The number of updated registers is 0")

	se := domain.StoreError(domain.OpDelete, errors.New("disk I/O error"))
	assert.Equal(t, domain.OutcomeStoreError, se.Kind)
	assert.NotContains(t, se.Message, "disk")
	assert.Error(t, se.Err)
}
