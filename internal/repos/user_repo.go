package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"crmlite/internal/domain"
)

var userTable = Table{
	Name:  "users",
	Label: "user",
	Columns: []string{
		"id", "name", "street", "city", "state", "iban", "payment", "notes",
		"customer", "supplier", "admin", "password",
	},
}

type UserRepo struct{ *EntityRepo }

func NewUserRepo(db *sqlx.DB) *UserRepo {
	r := &UserRepo{EntityRepo: NewEntityRepo(NewStore(db), userTable)}
	r.prepare = hashCredential
	return r
}

// hashCredential stores the password column as a bcrypt hash. A value that
// already is a hash (the form posts back what Fetch returned) is kept.
func hashCredential(_ domain.Operation, rec domain.Record) (domain.Record, error) {
	pw := rec.Get("password")
	if pw == "" {
		return rec, nil
	}
	if _, err := bcrypt.Cost([]byte(pw)); err == nil {
		return rec, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return rec, fmt.Errorf("hash password: %w", err)
	}
	rec.Set("password", string(h))
	return rec, nil
}
