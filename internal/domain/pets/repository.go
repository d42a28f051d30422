package pets

import (
	"context"
	"time"
)

// Repository es el Resource Store. Los adapters devuelven los errores de
// internal/ports/storage.
type Repository interface {
	// List devuelve todas las mascotas, más nuevas primero.
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	// Create asigna ID y timestamps; ignora p.ID.
	Create(ctx context.Context, p Pet) (Pet, error)
	// Update aplica solo los campos presentes en patch y fija updated_at = now.
	Update(ctx context.Context, id int64, patch Patch, now time.Time) (Pet, error)
	Delete(ctx context.Context, id int64) error
}
