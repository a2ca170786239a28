package types

import "time"

type Role string

const (
	RoleUser       Role = "USER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

type User struct {
	ID         string    `db:"id" json:"id"`
	Email      *string   `db:"email" json:"email,omitempty"`
	GivenName  *string   `db:"given_name" json:"givenName,omitempty"`
	FamilyName *string   `db:"family_name" json:"familyName,omitempty"`
	Roles      []Role    `db:"roles" json:"roles"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
