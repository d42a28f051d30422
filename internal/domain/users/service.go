package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"secure-petstore/internal/platform/apperr"
	"secure-petstore/internal/ports/auth"
	"secure-petstore/internal/ports/storage"
)

const (
	msgDuplicate       = "Email or username already exists"
	msgBadCredentials  = "Invalid email or password"
	msgInvalidToken    = "Invalid or expired token"
	msgUserNotFound    = "User not found"
	dummyPasswordInput = "not-a-real-password"
)

type Service struct {
	repo     Repository
	tokens   *TokenIssuer
	denylist Denylist
	now      func() time.Time

	hashCost  int
	dummyOnce sync.Once
	dummyHash []byte
}

// NewService arma el Auth Service. denylist puede ser nil (tokens sin estado).
func NewService(repo Repository, tokens *TokenIssuer, denylist Denylist) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		denylist: denylist,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Session es lo que devuelven Register y Login.
type Session struct {
	User  auth.Identity `json:"user"`
	Token string        `json:"token"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}
	if exists {
		return Session{}, apperr.Conflict(msgDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}

	u, err := s.repo.Create(ctx, User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		// dos registros concurrentes pasan el pre-check; la constraint decide
		if errors.Is(err, storage.ErrConflict) {
			return Session{}, apperr.Conflict(msgDuplicate)
		}
		return Session{}, apperr.Internal(err)
	}

	return s.session(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// mismo costo que un password incorrecto
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return Session{}, apperr.Unauthorized(msgBadCredentials)
		}
		return Session{}, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, apperr.Unauthorized(msgBadCredentials)
	}

	return s.session(u)
}

func (s *Service) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	c, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Claims{}, apperr.Unauthorized(msgInvalidToken)
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, c.TokenID)
		if err != nil {
			return auth.Claims{}, apperr.Internal(err)
		}
		if revoked {
			return auth.Claims{}, apperr.Unauthorized(msgInvalidToken)
		}
	}
	return c, nil
}

// GetUserByID responde Unauthorized (no NotFound) para no revelar qué ids existen.
func (s *Service) GetUserByID(ctx context.Context, id int64) (auth.Identity, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return auth.Identity{}, apperr.Unauthorized(msgUserNotFound)
		}
		return auth.Identity{}, apperr.Internal(err)
	}
	return u.Public(), nil
}

// RevocationEnabled indica si Logout tiene efecto.
func (s *Service) RevocationEnabled() bool { return s.denylist != nil }

// Logout revoca el jti hasta la expiración propia del token.
func (s *Service) Logout(ctx context.Context, c auth.Claims) error {
	if s.denylist == nil {
		return nil
	}
	ttl := c.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, c.TokenID, ttl); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) session(u User) (Session, error) {
	token, _, err := s.tokens.Issue(u.ID)
	if err != nil {
		return Session{}, apperr.Internal(err)
	}
	return Session{User: u.Public(), Token: token}, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(dummyPasswordInput), s.hashCost)
	})
	return s.dummyHash
}
