package postgres

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"secure-petstore/internal/adapters/storage/postgres/migrations"
)

// Migrate aplica las migraciones embebidas pendientes.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return mapErr(err)
	}
	return nil
}
