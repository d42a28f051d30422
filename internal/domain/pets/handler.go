package pets

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"secure-petstore/internal/middleware"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/ports/auth"
	"secure-petstore/internal/response"
	"secure-petstore/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service, authn auth.Authenticator) {
	r.Route("/pets", func(pr chi.Router) {
		// Lectura pública; si viene token se registra quién mira.
		pr.With(middleware.OptionalAuth(authn)).Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		pr.Group(func(wr chi.Router) {
			wr.Use(middleware.Protect(authn))
			wr.Post("/", createPetHandler(svc))
			wr.Put("/{petID}", updatePetHandler(svc))
			wr.Delete("/{petID}", deletePetHandler(svc))
		})
	})
}

type petResponse struct {
	ID          int64      `json:"id" example:"1"`
	Name        string     `json:"name" example:"Rex"`
	Species     string     `json:"species" example:"Dog"`
	Age         int        `json:"age" example:"3"`
	Breed       *string    `json:"breed" example:"Beagle"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type petEnvelope struct {
	Pet petResponse `json:"pet"`
}

type petListEnvelope struct {
	Pets []petResponse `json:"pets"`
}

// Payloads para swagger; la validación real vive en internal/validation.
type createPetRequest struct {
	Name        string `json:"name" example:"Rex"`
	Species     string `json:"species" example:"Dog"`
	Age         int    `json:"age" example:"3"`
	Breed       string `json:"breed,omitempty" example:"Beagle"`
	Description string `json:"description,omitempty"`
}

type updatePetRequest struct {
	Name        *string `json:"name,omitempty"`
	Species     *string `json:"species,omitempty"`
	Age         *int    `json:"age,omitempty" example:"4"`
	Breed       *string `json:"breed,omitempty"`
	Description *string `json:"description,omitempty"`
}

type petDataResponse struct {
	Status string      `json:"status" example:"success"`
	Data   petEnvelope `json:"data"`
}

type petListResponse struct {
	Status  string          `json:"status" example:"success"`
	Results int             `json:"results" example:"1"`
	Data    petListEnvelope `json:"data"`
}

type errorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Devuelve todas las mascotas, más nuevas primero. El token es opcional.
// @Tags pets
// @Produce json
// @Param Authorization header string false "Bearer token (opcional)"
// @Success 200 {object} petListResponse
// @Failure 500 {object} errorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res := middleware.GetResolution(r.Context()); res.IsAuthenticated() {
			logger.FromContext(r.Context()).Debug("pets listed by user", map[string]any{
				"user_id": res.Identity.ID,
			})
		}

		items, err := svc.GetAll(r.Context())
		if err != nil {
			response.Error(w, r, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		response.List(w, len(out), petListEnvelope{Pets: out})
	}
}

// getPetHandler godoc
// @Summary Obtener mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petDataResponse
// @Failure 404 {object} errorResponse "Pet with ID <id> not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			response.Error(w, r, err)
			return
		}
		response.Success(w, http.StatusOK, petEnvelope{Pet: toPetResponse(p)})
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description El id lo asigna el store; un id enviado por el cliente se ignora.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petDataResponse
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 401 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validation.Decode[validation.PetCreate](r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:        validation.Str(in.Name),
			Species:     validation.Str(in.Species),
			Age:         *in.Age,
			Breed:       in.Breed,
			Description: in.Description,
		})
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusCreated, petEnvelope{Pet: toPetResponse(p)})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Actualización parcial: solo se modifican los campos enviados.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar (al menos uno)"
// @Success 200 {object} petDataResponse
// @Failure 400 {object} errorResponse "Validation failed"
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := validation.Decode[validation.PetUpdate](r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), UpdateInput{
			Name:        in.Name,
			Species:     in.Species,
			Age:         in.Age,
			Breed:       in.Breed,
			Description: in.Description,
		})
		if err != nil {
			response.Error(w, r, err)
			return
		}

		response.Success(w, http.StatusOK, petEnvelope{Pet: toPetResponse(p)})
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags pets
// @Security BearerAuth
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Delete(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			response.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info(res.Message, map[string]any{
			"pet_id": chi.URLParam(r, "petID"),
		})
		response.NoContent(w)
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Age:         p.Age,
		Breed:       p.Breed,
		Description: p.Description,
	}
	// el listado de fallback no tiene timestamps
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		out.CreatedAt = &t
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
