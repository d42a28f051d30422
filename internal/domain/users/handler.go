package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"secure-petstore/internal/middleware"
	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/ports/auth"
	"secure-petstore/internal/response"
	"secure-petstore/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.Protect(svc))
			pr.Get("/me", meHandler())

			// Solo con revocación habilitada; sin denylist el logout no tendría efecto.
			if svc.RevocationEnabled() {
				pr.Post("/logout", logoutHandler(svc))
			}
		})
	})
}

// Documentación de payloads para swagger.
type registerRequest struct {
	Username string `json:"username" example:"alice123"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cretpass"`
}

type loginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cretpass"`
}

type sessionResponse struct {
	Status string  `json:"status" example:"success"`
	Data   Session `json:"data"`
}

type meResponse struct {
	Status string `json:"status" example:"success"`
	Data   struct {
		User auth.Identity `json:"user"`
	} `json:"data"`
}

type errorResponse struct {
	Status  string              `json:"status" example:"fail"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea un usuario y devuelve un session token. Email y username deben ser únicos.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos del usuario"
// @Success 201 {object} sessionResponse
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 409 {object} errorResponse "Email or username already exists"
// @Failure 429 {object} errorResponse
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validation.Decode[validation.UserRegister](r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput{
			Username: validation.Str(in.Username),
			Email:    validation.Str(in.Email),
			Password: validation.Str(in.Password),
		})
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusCreated, sess)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Devuelve el usuario y un session token. Email desconocido y password incorrecto responden igual.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 401 {object} errorResponse "Invalid email or password"
// @Failure 429 {object} errorResponse
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validation.Decode[validation.UserLogin](r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		sess, err := svc.Login(r.Context(), validation.Str(in.Email), validation.Str(in.Password))
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, sess)
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} meResponse
// @Failure 401 {object} errorResponse
// @Router /auth/me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetIdentity(r.Context())
		if !ok {
			response.Error(w, r, apperr.Unauthorized("Please log in to access this resource"))
			return
		}
		response.Success(w, http.StatusOK, map[string]any{"user": id})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Description Revoca el token actual hasta su expiración. Solo disponible con TOKEN_REVOCATION=true.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errorResponse
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Error(w, r, apperr.Unauthorized("Please log in to access this resource"))
			return
		}
		if err := svc.Logout(r.Context(), c); err != nil {
			response.Error(w, r, err)
			return
		}
		response.NoContent(w)
	}
}
