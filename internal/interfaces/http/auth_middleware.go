package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// SessionCookie cookie con el token de sesión para las páginas.
const SessionCookie = "session"

// Locals keys para la identidad en Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalIdentity = "identity"
	LocalToken    = "token"
)

// IdentityResolver resuelve token → identidad con el rol vigente. Lo implementa *access.Guard.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*access.Identity, error)
}

// TokenFromRequest toma el token de "Authorization: Bearer <token>" o, si no hay header, de la cookie de sesión.
func TokenFromRequest(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return c.Cookies(SessionCookie)
}

// AuthMiddleware exige una sesión válida y carga la identidad en c.Locals.
// El rol se lee del registro de usuarios en cada petición, no del token.
func AuthMiddleware(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "sesión requerida")
		}
		id, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnavailable) {
				return errorJSON(c, fiber.StatusServiceUnavailable, CodeAuthUnavailable, "servicio de autenticación no disponible")
			}
			return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "sesión inválida o expirada")
		}
		setIdentity(c, id, token)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == entity.RoleUnknown {
			return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "sesión requerida")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "no tienes permiso para esta acción")
	}
}

func setIdentity(c *fiber.Ctx, id *access.Identity, token string) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalRole, id.Role)
	c.Locals(LocalIdentity, id)
	c.Locals(LocalToken, token)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto; RoleUnknown si no hay sesión.
func GetRole(c *fiber.Ctx) entity.Role {
	r, _ := c.Locals(LocalRole).(entity.Role)
	return r
}

// GetIdentity devuelve la identidad completa o nil.
func GetIdentity(c *fiber.Ctx) *access.Identity {
	id, _ := c.Locals(LocalIdentity).(*access.Identity)
	return id
}
