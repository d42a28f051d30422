package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    int64
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity es la vista pública del usuario autenticado (sin hash).
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ResolutionState enumera los resultados posibles de una autenticación opcional.
type ResolutionState string

const (
	Anonymous     ResolutionState = "anonymous"
	Authenticated ResolutionState = "authenticated"
	Rejected      ResolutionState = "rejected"
)

// Resolution es el resultado explícito de OptionalAuth: nunca corta el request,
// pero deja registrado por qué no hay identidad.
type Resolution struct {
	State    ResolutionState
	Identity Identity
	Claims   Claims
	Err      error
}

func (r Resolution) IsAuthenticated() bool { return r.State == Authenticated }
