package auth

import "context"

// Authenticator verifica tokens y resuelve la identidad asociada.
// Ambos métodos devuelven errores Unauthorized del paquete apperr.
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (Claims, error)
	GetUserByID(ctx context.Context, id int64) (Identity, error)
}
