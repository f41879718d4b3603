// Package model holds the records the tour passes around: users, admins and
// the small enums and variants built on top of them.
package model

import (
	"fmt"
	"strings"
)

// User is the payload produced by the simulated fetch.
type User struct {
	ID    int    `json:"id" validate:"gt=0"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
}

// UserID satisfies generic.Identified.
func (u User) UserID() int { return u.ID }

func (u User) String() string {
	if u.Age == nil {
		return fmt.Sprintf("User{id=%d name=%q email=%q}", u.ID, u.Name, u.Email)
	}
	return fmt.Sprintf("User{id=%d name=%q email=%q age=%d}", u.ID, u.Name, u.Email, *u.Age)
}

// Admin extends User by embedding it; every User field and method is
// promoted onto Admin.
type Admin struct {
	User
	Role        Role     `json:"role" validate:"role"`
	Permissions []string `json:"permissions" validate:"min=1,dive,required"`
}

func (a Admin) String() string {
	return fmt.Sprintf("Admin{name=%q role=%s permissions=[%s]}",
		a.Name, a.Role, strings.Join(a.Permissions, ", "))
}

// Role is one of a fixed set of labels.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "superadmin"
	RoleReceptionist Role = "Receptionist"
)

// ParseRole accepts only the known labels, matched exactly.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleSuperAdmin, RoleReceptionist:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Ptr returns a pointer to v, for optional fields such as User.Age.
func Ptr[T any](v T) *T { return &v }
