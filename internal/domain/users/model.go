package users

import (
	"time"

	"secure-petstore/internal/ports/auth"
)

// User es el registro de credenciales. PasswordHash nunca se serializa.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
}

// Public devuelve la vista sin hash que se expone al cliente.
func (u User) Public() auth.Identity {
	return auth.Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
