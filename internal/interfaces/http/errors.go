package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain"
)

// Códigos de error de la API.
const (
	CodeInvalidBody          = "INVALID_BODY"
	CodeValidation           = "VALIDATION"
	CodeNotFound             = "NOT_FOUND"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeEmailInUse           = "EMAIL_IN_USE"
	CodeWeakPassword         = "WEAK_PASSWORD"
	CodeTooManyAttempts      = "TOO_MANY_ATTEMPTS"
	CodeAuthUnavailable      = "AUTH_UNAVAILABLE"
	CodeSaveFailed           = "SAVE_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeUnavailable          = "UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func validationJSON(c *fiber.Ctx, verr *domain.ValidationError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
		Code:    CodeValidation,
		Message: "revisa los campos marcados",
		Fields:  verr.Fields,
	})
}

// authError mensajes cortos para los fallos de identidad; el texto del backend nunca se expone.
func authError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationJSON(c, verr)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusUnauthorized, CodeInvalidCredentials, "email o contraseña incorrectos")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailInUse, "ese email ya tiene una cuenta")
	case errors.Is(err, domain.ErrWeakPassword):
		return errorJSON(c, fiber.StatusBadRequest, CodeWeakPassword, "la contraseña debe tener al menos 8 caracteres")
	case errors.Is(err, domain.ErrRateLimited):
		return errorJSON(c, fiber.StatusTooManyRequests, CodeTooManyAttempts, "demasiados intentos, espera unos minutos")
	default:
		return errorJSON(c, fiber.StatusServiceUnavailable, CodeAuthUnavailable, "servicio de autenticación no disponible")
	}
}

// residentError mapea los errores del padrón.
func residentError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationJSON(c, verr)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "residente no encontrado")
	case errors.Is(err, domain.ErrConfirmationNeeded):
		return errorJSON(c, fiber.StatusBadRequest, CodeConfirmationRequired, "confirma la eliminación enviando confirm=true")
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		return errorJSON(c, fiber.StatusServiceUnavailable, CodeUnavailable, "el padrón no está disponible, intenta más tarde")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
	}
}
