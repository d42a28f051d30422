package pets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/ports/storage"
)

const msgDeleted = "Pet deleted successfully"

type Service struct {
	repo     Repository
	now      func() time.Time
	fallback bool
}

// NewService arma el Pet Service. Con fallback=true, GetAll responde con un
// listado fijo cuando el store no está disponible.
func NewService(repo Repository, fallback bool) *Service {
	return &Service{
		repo:     repo,
		now:      time.Now,
		fallback: fallback,
	}
}

type CreateInput struct {
	Name        string
	Species     string
	Age         int
	Breed       *string
	Description *string
}

type UpdateInput = Patch

func (s *Service) GetAll(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err == nil {
		return items, nil
	}

	if errors.Is(err, storage.ErrUnavailable) && s.fallback {
		logger.FromContext(ctx).Warn("store unavailable, serving fallback pets", map[string]any{
			"error": err,
		})
		return fallbackPets(), nil
	}
	return nil, apperr.Internal(err)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	n, ok := parseID(id)
	if !ok {
		return Pet{}, notFound(id)
	}

	p, err := s.repo.GetByID(ctx, n)
	if err != nil {
		return Pet{}, s.mapErr(id, err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	now := s.now().UTC()
	p, err := s.repo.Create(ctx, Pet{
		Name:        in.Name,
		Species:     in.Species,
		Age:         in.Age,
		Breed:       in.Breed,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Pet{}, apperr.Internal(err)
	}
	return p, nil
}

// Update aplica solo los campos presentes. Si la mascota no existe => NotFound.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	n, ok := parseID(id)
	if !ok {
		return Pet{}, notFound(id)
	}

	p, err := s.repo.Update(ctx, n, in, s.now().UTC())
	if err != nil {
		return Pet{}, s.mapErr(id, err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	n, ok := parseID(id)
	if !ok {
		return DeleteResult{}, notFound(id)
	}

	if err := s.repo.Delete(ctx, n); err != nil {
		return DeleteResult{}, s.mapErr(id, err)
	}
	return DeleteResult{Message: msgDeleted}, nil
}

func (s *Service) mapErr(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(id)
	}
	return apperr.Internal(err)
}

func notFound(id string) error {
	return apperr.NotFoundf("Pet with ID %s not found", id)
}

// parseID: un id no numérico o no positivo no puede existir en el store.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
