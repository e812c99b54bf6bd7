package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// SiteInfo textos fijos de las páginas públicas.
type SiteInfo struct {
	Name         string
	ContactEmail string
	ContactPhone string
}

// PageHandler páginas como modelos de vista JSON. Los dashboards van detrás de RequirePage.
type PageHandler struct {
	svc  *residents.Service
	site SiteInfo
}

// NewPageHandler construye el handler de páginas.
func NewPageHandler(svc *residents.Service, site SiteInfo) *PageHandler {
	return &PageHandler{svc: svc, site: site}
}

// Home página de inicio (con sesión, RedirectIfSignedIn envía al dashboard antes).
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{View: dto.ViewHome, Title: h.site.Name})
}

// Login página de inicio de sesión.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{View: dto.ViewLogin, Title: "Iniciar sesión"})
}

// Register página de registro.
func (h *PageHandler) Register(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{View: dto.ViewRegister, Title: "Crear cuenta"})
}

// ResetPassword destino del enlace enviado por correo. El token se valida al confirmar.
func (h *PageHandler) ResetPassword(c *fiber.Ctx) error {
	view := dto.PageView{View: dto.ViewResetPassword, Title: "Restablecer contraseña", Token: c.Query("token")}
	if view.Token == "" {
		view.Message = "El enlace no es válido. Solicita uno nuevo."
	}
	return c.JSON(view)
}

// About página informativa.
func (h *PageHandler) About(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{
		View:    dto.ViewAbout,
		Title:   "Acerca de",
		Message: "Bienvenido al sistema de información de residentes de " + h.site.Name + ".",
	})
}

// Contact datos de contacto.
func (h *PageHandler) Contact(c *fiber.Ctx) error {
	return c.JSON(dto.PageView{
		View:    dto.ViewContact,
		Title:   "Contacto",
		Contact: &dto.ContactInfo{Email: h.site.ContactEmail, Phone: h.site.ContactPhone},
	})
}

// AdminDashboard padrón paginado, estadísticas y sub-regiones.
func (h *PageHandler) AdminDashboard(c *fiber.Ctx) error {
	var q dto.ListResidentsQuery
	if err := parseQuery(c, &q); err != nil {
		return bindError(c, err)
	}
	roster, err := h.svc.List(c.UserContext(), q, true)
	if err != nil {
		return residentError(c, err)
	}
	stats, err := h.svc.Stats(c.UserContext(), c.Query("order"))
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(dto.PageView{
		View:       dto.ViewAdminDashboard,
		Title:      "Panel de administración",
		Nickname:   nickname(c),
		Role:       entity.RoleAdmin.String(),
		Roster:     roster,
		Stats:      stats,
		SubRegions: h.svc.SubRegions(),
	})
}

// UserDashboard padrón paginado sin certificados.
func (h *PageHandler) UserDashboard(c *fiber.Ctx) error {
	var q dto.ListResidentsQuery
	if err := parseQuery(c, &q); err != nil {
		return bindError(c, err)
	}
	roster, err := h.svc.List(c.UserContext(), q, false)
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(dto.PageView{
		View:       dto.ViewUserDashboard,
		Title:      "Residentes",
		Nickname:   nickname(c),
		Role:       entity.RoleUser.String(),
		Roster:     roster,
		SubRegions: h.svc.SubRegions(),
	})
}

// AdminResident ficha completa con documentos.
func (h *PageHandler) AdminResident(c *fiber.Ctx) error {
	return h.resident(c, true)
}

// UserResident ficha sin certificados.
func (h *PageHandler) UserResident(c *fiber.Ctx) error {
	return h.resident(c, false)
}

func (h *PageHandler) resident(c *fiber.Ctx, includeDocuments bool) error {
	r, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.PageView{
			View:    dto.ViewNotFound,
			Title:   "No encontrado",
			Message: "El residente no existe o fue eliminado.",
		})
	}
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(dto.PageView{
		View:     dto.ViewResident,
		Title:    r.FullName(),
		Nickname: nickname(c),
		Role:     GetRole(c).String(),
		Resident: residents.ToResidentResponse(r, includeDocuments),
	})
}

// NotFound último handler del router: vista not_found para páginas, ErrorResponse bajo /api.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	if c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/") {
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "ruta no encontrada")
	}
	return c.Status(fiber.StatusNotFound).JSON(dto.PageView{View: dto.ViewNotFound, Title: "No encontrado"})
}

func nickname(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return id.Nickname
	}
	return ""
}
