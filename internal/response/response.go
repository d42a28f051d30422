// Package response centraliza el formato de las respuestas JSON.
// Error es el único lugar que decide status, nivel de log y cuerpo ante una falla.
package response

import (
	"context"
	"encoding/json"
	"net/http"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/platform/logger"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type successEnvelope struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
	Stack   string              `json:"stack,omitempty"`
}

// Options controla qué se expone en errores 5xx.
type Options struct {
	// Development habilita stack y mensajes internos en la respuesta.
	Development bool
}

type optsKey struct{}

// Middleware deja las Options en el contexto para que Error las lea.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), optsKey{}, opts)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func optionsFrom(ctx context.Context) Options {
	o, _ := ctx.Value(optsKey{}).(Options)
	return o
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success escribe {status:"success", data}.
func Success(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, successEnvelope{Status: StatusSuccess, Data: data})
}

// List escribe {status:"success", results, data}.
func List(w http.ResponseWriter, results int, data any) {
	WriteJSON(w, http.StatusOK, successEnvelope{Status: StatusSuccess, Results: &results, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error traduce err al sobre {status, message, errors?, stack?}.
// 4xx => "fail" + warn; 5xx => "error" + error con el detalle completo.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	status := ae.Kind.Status()
	opts := optionsFrom(r.Context())
	log := logger.FromContext(r.Context())

	body := errorEnvelope{
		Status:  StatusFail,
		Message: ae.Message,
		Errors:  ae.Fields,
	}

	if status >= http.StatusInternalServerError {
		body.Status = StatusError
		fields := map[string]any{
			"status": status,
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  ae.Error(),
		}
		if ae.Stack != "" {
			fields["stack"] = ae.Stack
		}
		log.Error(ae.Message, fields)

		if opts.Development {
			body.Stack = ae.Stack
		} else {
			body.Message = "Internal server error"
		}
	} else {
		log.Warn(ae.Message, map[string]any{
			"status": status,
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}

	WriteJSON(w, status, body)
}

// NotFound convierte rutas no registradas en un NotFound del traductor.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, r, apperr.NotFoundf("Route %s not found", r.URL.RequestURI()))
}
