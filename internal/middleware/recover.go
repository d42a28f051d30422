package middleware

import (
	"fmt"
	"net/http"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/response"
)

// Recover convierte un panic en un Internal renderizado por response.Error,
// con el mismo sobre que cualquier otro 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}
			response.Error(w, r, apperr.Internal(err))
		}()

		next.ServeHTTP(w, r)
	})
}
