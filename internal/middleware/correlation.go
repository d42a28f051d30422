package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"secure-petstore/internal/platform/logger"
)

const CorrelationHeader = "x-correlation-id"

const correlationKey ctxKey = "correlation_id"

// maxCorrelationLen acota lo que aceptamos del cliente antes de loguearlo.
const maxCorrelationLen = 128

// Correlation toma el x-correlation-id entrante (o genera un uuid), lo devuelve
// siempre en la respuesta y deja en el contexto un logger hijo que lo incluye.
func Correlation(base logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(CorrelationHeader))
			if id == "" || len(id) > maxCorrelationLen {
				id = uuid.NewString()
			}

			w.Header().Set(CorrelationHeader, id)

			ctx := context.WithValue(r.Context(), correlationKey, id)
			ctx = logger.IntoContext(ctx, base.With(map[string]any{"correlation_id": id}))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey).(string)
	return id
}
