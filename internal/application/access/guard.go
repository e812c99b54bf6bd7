// Package access resuelve la identidad y el rol de cada petición y decide
// si una página protegida se muestra o a dónde se redirige.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/repository"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

// Rutas de destino de las redirecciones.
const (
	LoginPath          = "/auth/login"
	AdminDashboardPath = "/admin/dashboard"
	UserDashboardPath  = "/user/dashboard"
)

// SessionResolver valida un token de sesión (firma, expiración, revocación).
type SessionResolver interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

// Identity usuario autenticado con su rol vigente.
type Identity struct {
	UserID   string
	Email    string
	Nickname string
	Role     entity.Role
}

// Decision resultado de Check: Allow o una ruta a la que redirigir.
type Decision struct {
	Allow      bool
	RedirectTo string
	Identity   *Identity
}

// Guard consulta la sesión y el registro de roles en cada petición; no cachea el rol.
type Guard struct {
	sessions SessionResolver
	users    repository.UserRepository
	log      *logger.Logger
}

// NewGuard construye el guard.
func NewGuard(sessions SessionResolver, users repository.UserRepository, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{sessions: sessions, users: users, log: log.Component("access")}
}

// DashboardFor dashboard propio de cada rol. Un rol fuera del enum es ErrUnknownRole.
func DashboardFor(role entity.Role) (string, error) {
	switch role {
	case entity.RoleAdmin:
		return AdminDashboardPath, nil
	case entity.RoleUser:
		return UserDashboardPath, nil
	case entity.RoleUnknown:
		return LoginPath, domain.ErrUnknownRole
	default:
		return LoginPath, fmt.Errorf("%w: %d", domain.ErrUnknownRole, role)
	}
}

// Resolve devuelve la identidad del token. Errores: ErrUnauthorized (sin sesión o sin
// registro de rol), ErrUnknownRole, ErrUnavailable (fallo de lectura).
func (g *Guard) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	session, err := g.sessions.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := g.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if _, err := DashboardFor(user.Role); err != nil {
		return nil, err
	}
	return &Identity{UserID: user.ID, Email: user.Email, Nickname: user.Nickname, Role: user.Role}, nil
}

// Check decide el acceso a una página que exige required. Sin sesión, sin registro de rol,
// rol desconocido o cualquier error de lectura: login. Rol distinto: el dashboard de ese rol.
func (g *Guard) Check(ctx context.Context, token string, required entity.Role) Decision {
	id, err := g.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			g.log.Warn().Err(err).Msg("guard: redirigiendo a login")
		}
		return Decision{RedirectTo: LoginPath}
	}
	if id.Role == required {
		return Decision{Allow: true, Identity: id}
	}
	target, err := DashboardFor(id.Role)
	if err != nil {
		return Decision{RedirectTo: LoginPath}
	}
	return Decision{RedirectTo: target, Identity: id}
}
