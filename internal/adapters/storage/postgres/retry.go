package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"secure-petstore/internal/ports/storage"
)

const maxRetries = 3

// retryBase es var para que los tests no esperen el backoff real.
var retryBase = 100 * time.Millisecond

// withRetry reintenta fn solo ante errores de conexión, con backoff exponencial.
// fn debe devolver errores ya pasados por mapErr.
func withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return retryWhen(ctx, func(err error) bool { return errors.Is(err, storage.ErrUnavailable) }, fn)
}

// withInsertRetry es para INSERTs: solo reintenta si la conexión nunca se
// estableció. Un reset a mitad de camino puede llegar después del commit.
func withInsertRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return retryWhen(ctx, isDialErr, fn)
}

func retryWhen(ctx context.Context, retryable func(error) bool, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBase))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
