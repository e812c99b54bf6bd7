package auth

import (
	"context"
	"time"
)

// RateLimiter ventana fija de intentos por clave (IP, email).
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RevocationStore lista de jti revocados hasta su expiración.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Mailer envía el enlace de restablecimiento de contraseña.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}
