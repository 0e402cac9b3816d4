package auth

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDirector  Role = "director"
	RoleSecretary Role = "secretary"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

var allRoles = map[Role]struct{}{
	RoleAdmin:     {},
	RoleDirector:  {},
	RoleSecretary: {},
	RoleProfessor: {},
	RoleStudent:   {},
}

func ValidRole(r Role) bool {
	_, ok := allRoles[r]
	return ok
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) HasRole(r Role) bool {
	for _, role := range u.Roles {
		if role == r {
			return true
		}
	}
	return false
}

func (u User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
