// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is a shop account. Accounts are created at registration and never
// deleted; admin accounts are provisioned out of band.
type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Contact      string    `db:"contact"`
	Address      string    `db:"address"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	ProfilePic   *string   `db:"profile_pic"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)
