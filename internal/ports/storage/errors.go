// Package storage define los errores que todo adapter de persistencia debe devolver,
// para que los servicios no dependan de un driver concreto.
package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrConflict: violación de unicidad.
	ErrConflict = errors.New("already exists")

	// ErrUnavailable: el store no responde (conexión rechazada, DB inexistente, etc).
	ErrUnavailable = errors.New("store unavailable")
)
