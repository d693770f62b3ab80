package domain

// Checked is the marker stored in a role flag column when the flag is set.
const Checked = "checked"

type Role string

const (
	RoleNone     Role = ""
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
	RoleCustomer Role = "CUSTOMER"
)

// ClassifyRole picks the first set flag in the order admin, supplier, customer.
func ClassifyRole(u Record) Role {
	switch {
	case u.Get("admin") == Checked:
		return RoleAdmin
	case u.Get("supplier") == Checked:
		return RoleSupplier
	case u.Get("customer") == Checked:
		return RoleCustomer
	}
	return RoleNone
}
