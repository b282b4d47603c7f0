package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID        uint
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Role      Role
	CreatedAt time.Time
}

// IsAdmin is the single authorization attribute; no identity value is ever
// special-cased.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
