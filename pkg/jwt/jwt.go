package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Propósitos de token: sesión normal o restablecimiento de contraseña.
const (
	PurposeSession = "session"
	PurposeReset   = "password_reset"
)

// ErrWrongPurpose el token es válido pero fue emitido para otro uso.
var ErrWrongPurpose = errors.New("jwt: propósito de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// El rol NO viaja en el token: el guard lo consulta en el registro de roles en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// Token resultado de Generate: el string firmado más los datos necesarios para revocarlo.
type Token struct {
	Value     string
	ID        string // jti
	ExpiresAt time.Time
}

// Generate genera un token JWT firmado para userID con el propósito indicado.
func Generate(secret, userID, purpose, issuer string, ttl time.Duration) (*Token, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:  userID,
		Purpose: purpose,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("jwt: firmar: %w", err)
	}
	return &Token{Value: signed, ID: claims.ID, ExpiresAt: exp}, nil
}

// Parse valida firma, expiración y propósito; devuelve los claims.
func Parse(secret, tokenString, purpose string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// Remaining tiempo de vida restante del token (0 si ya expiró).
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
