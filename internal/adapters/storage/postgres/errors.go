package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"secure-petstore/internal/ports/storage"
)

const (
	codeUniqueViolation = "23505"
	codeInvalidCatalog  = "3D000" // la base no existe
)

// mapErr traduce errores del driver a los de internal/ports/storage.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return fmt.Errorf("%w: %w", storage.ErrConflict, err)
		case pgErr.Code == codeInvalidCatalog, strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	if isConnErr(err) {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return fmt.Errorf("db error: %w", err)
}

// isConnErr detecta fallas de conexión (dial, conexión rechazada o reseteada).
func isConnErr(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return isDialErr(err)
}

// isDialErr: la conexión no llegó a establecerse, así que el statement no corrió.
func isDialErr(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}
