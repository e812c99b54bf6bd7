package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// AuthHandler maneja registro, sesión y restablecimiento de contraseña.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	secureCookie bool
}

// NewAuthHandler construye el handler de auth. secureCookie=true fuera de development.
func NewAuthHandler(uc *auth.AuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, nickname"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return bindError(c, err)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y el dashboard del rol; también lo deja en la cookie de sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return bindError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in, c.IP())
	if err != nil {
		return authError(c, err)
	}
	role, _ := entity.ParseRole(out.User.Role)
	out.Redirect, _ = access.DashboardFor(role)

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := TokenFromRequest(c); token != "" {
		if err := h.uc.Logout(c.UserContext(), token); err != nil {
			return authError(c, err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(out)
}

// RequestPasswordReset godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Siempre responde 202; no revela si la cuenta existe.
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      202
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := parseBody(c, &in); err != nil {
		return bindError(c, err)
	}
	h.uc.RequestPasswordReset(c.UserContext(), in.Email)
	return c.SendStatus(fiber.StatusAccepted)
}

// ConfirmPasswordReset godoc
// @Summary      Confirmar restablecimiento de contraseña
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.PasswordResetConfirmRequest  true  "token, password"
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetConfirmRequest
	if err := parseBody(c, &in); err != nil {
		return bindError(c, err)
	}
	if err := h.uc.ConfirmPasswordReset(c.UserContext(), in); err != nil {
		return authError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
