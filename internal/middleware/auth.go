package middleware

import (
	"context"
	"net/http"
	"strings"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/ports/auth"
	"secure-petstore/internal/response"
)

type ctxKey string

const (
	identityKey   ctxKey = "identity"
	claimsKey     ctxKey = "claims"
	resolutionKey ctxKey = "auth_resolution"
)

const msgLoginRequired = "Please log in to access this resource"

// Protect exige un Bearer token válido cuyo usuario exista.
// Cualquier falla corta el request con 401 vía response.Error.
func Protect(authn auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				response.Error(w, r, apperr.Unauthorized(msgLoginRequired))
				return
			}

			res := resolve(r.Context(), authn, token)
			if !res.IsAuthenticated() {
				response.Error(w, r, res.Err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withResolution(r.Context(), res)))
		})
	}
}

// OptionalAuth resuelve la identidad si hay token, sin cortar nunca el request.
// El resultado queda en el contexto como auth.Resolution.
func OptionalAuth(authn auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := auth.Resolution{State: auth.Anonymous}
			if token := bearerToken(r.Header.Get("Authorization")); token != "" {
				res = resolve(r.Context(), authn, token)
			}

			if res.State == auth.Rejected {
				logger.FromContext(r.Context()).Debug("optional auth rejected", map[string]any{
					"error": res.Err,
				})
			}

			next.ServeHTTP(w, r.WithContext(withResolution(r.Context(), res)))
		})
	}
}

func resolve(ctx context.Context, authn auth.Authenticator, token string) auth.Resolution {
	claims, err := authn.VerifyToken(ctx, token)
	if err != nil {
		return auth.Resolution{State: auth.Rejected, Err: err}
	}
	id, err := authn.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return auth.Resolution{State: auth.Rejected, Claims: claims, Err: err}
	}
	return auth.Resolution{State: auth.Authenticated, Identity: id, Claims: claims}
}

func withResolution(ctx context.Context, res auth.Resolution) context.Context {
	ctx = context.WithValue(ctx, resolutionKey, res)
	if res.IsAuthenticated() {
		ctx = context.WithValue(ctx, identityKey, res.Identity)
		ctx = context.WithValue(ctx, claimsKey, res.Claims)
	}
	return ctx
}

// GetIdentity devuelve el usuario autenticado, si lo hay.
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// GetResolution devuelve el resultado de Protect/OptionalAuth. Sin middleware => Anonymous.
func GetResolution(ctx context.Context) auth.Resolution {
	if res, ok := ctx.Value(resolutionKey).(auth.Resolution); ok {
		return res
	}
	return auth.Resolution{State: auth.Anonymous}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
