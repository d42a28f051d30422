package users

import (
	"context"
	"time"
)

// Repository es el Credential Store. Los adapters devuelven los errores de
// internal/ports/storage (ErrNotFound, ErrConflict, ErrUnavailable).
type Repository interface {
	// Create asigna ID y CreatedAt y devuelve el usuario persistido.
	Create(ctx context.Context, u User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

// Denylist guarda los jti revocados hasta su expiración.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
