package entity

import (
	"time"

	"github.com/jhoicas/Residentes-api/internal/domain"
)

// Role nivel de acceso asociado a una sesión. Enum cerrado.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleUser
)

// ParseRole convierte el valor persistido en Role; cualquier otro string es ErrUnknownRole.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	}
	return RoleUnknown, domain.ErrUnknownRole
}

// String valor persistido del rol.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	}
	return "unknown"
}

// User cuenta autenticable + registro de rol, identificada por el subject de la sesión.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Nickname     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
