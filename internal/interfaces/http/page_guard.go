package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// PageChecker decide acceso a páginas. Lo implementa *access.Guard.
type PageChecker interface {
	Check(ctx context.Context, token string, required entity.Role) access.Decision
}

// RequirePage protege una página: si la decisión no es Allow redirige (302) al destino indicado.
func RequirePage(checker PageChecker, required entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		d := checker.Check(c.UserContext(), token, required)
		if !d.Allow {
			return c.Redirect(d.RedirectTo, fiber.StatusFound)
		}
		setIdentity(c, d.Identity, token)
		return c.Next()
	}
}

// RedirectIfSignedIn envía al dashboard propio a quien ya tiene sesión (páginas de login y registro).
func RedirectIfSignedIn(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Next()
		}
		id, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			return c.Next()
		}
		target, err := access.DashboardFor(id.Role)
		if err != nil {
			return c.Next()
		}
		return c.Redirect(target, fiber.StatusFound)
	}
}
