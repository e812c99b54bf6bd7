package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// ResidentHandler maneja las peticiones HTTP del padrón.
type ResidentHandler struct {
	svc *residents.Service
}

// NewResidentHandler construye el handler.
func NewResidentHandler(svc *residents.Service) *ResidentHandler {
	return &ResidentHandler{svc: svc}
}

// List godoc
// @Summary      Listar residentes
// @Description  Filtros conjuntivos; si filter_key difiere de los filtros actuales la página vuelve a 1.
// @Tags         residents
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "Búsqueda libre (nombre, dirección, teléfono, email, edad)"
// @Param        gender        query  string  false  "Male|Female|Other"
// @Param        civil_status  query  string  false  "Single|Married|Widowed|Divorced|Separated"
// @Param        sub_region    query  string  false  "Prefijo de dirección"
// @Param        sort          query  string  false  "newest|oldest"  default(newest)
// @Param        page          query  int     false  "Página"  default(1)
// @Param        page_size     query  int     false  "Tamaño de página"
// @Param        filter_key    query  string  false  "filter_key de la respuesta anterior"
// @Success      200  {object}  dto.ResidentPageResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/residents [get]
func (h *ResidentHandler) List(c *fiber.Ctx) error {
	var q dto.ListResidentsQuery
	if err := parseQuery(c, &q); err != nil {
		return bindError(c, err)
	}
	out, err := h.svc.List(c.UserContext(), q, GetRole(c) == entity.RoleAdmin)
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener residente
// @Description  La vista de user no incluye los certificados.
// @Tags         residents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del residente"
// @Success      200  {object}  dto.ResidentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/residents/{id} [get]
func (h *ResidentHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(residents.ToResidentResponse(r, GetRole(c) == entity.RoleAdmin))
}

// Create godoc
// @Summary      Registrar residente
// @Tags         residents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResidentRequest  true  "Formulario del residente"
// @Success      201   {object}  dto.SubmitResponse
// @Failure      422   {object}  dto.SubmitResponse
// @Failure      503   {object}  dto.SubmitResponse
// @Router       /api/residents [post]
func (h *ResidentHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, "")
}

// Update godoc
// @Summary      Editar residente
// @Description  Sin confirm devuelve state=review con los cambios; con confirm=true guarda (última escritura gana).
// @Tags         residents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del residente"
// @Param        body  body  dto.ResidentRequest  true  "Formulario del residente"
// @Success      200   {object}  dto.SubmitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.SubmitResponse
// @Failure      503   {object}  dto.SubmitResponse
// @Router       /api/residents/{id} [put]
func (h *ResidentHandler) Update(c *fiber.Ctx) error {
	return h.submit(c, c.Params("id"))
}

func (h *ResidentHandler) submit(c *fiber.Ctx, id string) error {
	var in dto.ResidentRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
	}
	outcome, err := h.svc.Submit(c.UserContext(), residents.Submission{
		ID:      id,
		Form:    residents.FormFromRequest(in),
		Confirm: in.Confirm,
	})
	if err != nil {
		return residentError(c, err)
	}

	out := residents.ToSubmitResponse(outcome)
	switch outcome.State {
	case residents.StateInvalid:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	case residents.StateFailed:
		out.Submission = &in
		return c.Status(fiber.StatusServiceUnavailable).JSON(out)
	case residents.StateSaved:
		if id == "" {
			return c.Status(fiber.StatusCreated).JSON(out)
		}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar residente
// @Description  Requiere {"confirm": true} en el cuerpo o ?confirm=true.
// @Tags         residents
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del residente"
// @Param        body  body  dto.ConfirmRequest  false  "Confirmación"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/residents/{id} [delete]
func (h *ResidentHandler) Delete(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
		}
	}
	confirm := in.Confirm || c.QueryBool("confirm", false)
	if err := h.svc.Delete(c.UserContext(), c.Params("id"), confirm); err != nil {
		return residentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FormatField godoc
// @Summary      Formatear un campo del formulario
// @Description  Capitaliza nombres, formatea teléfonos y calcula la edad desde birthdate.
// @Tags         residents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FieldRequest  true  "Campo y valor"
// @Success      200   {object}  dto.FieldResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/residents/form/field [post]
func (h *ResidentHandler) FormatField(c *fiber.Ctx) error {
	var in dto.FieldRequest
	if err := parseBody(c, &in); err != nil {
		return bindError(c, err)
	}
	return c.JSON(h.svc.FormatField(in))
}

// SubRegions godoc
// @Summary      Sub-regiones configuradas
// @Tags         residents
// @Produce      json
// @Success      200  {object}  dto.SubRegionsResponse
// @Router       /api/subregions [get]
func (h *ResidentHandler) SubRegions(c *fiber.Ctx) error {
	return c.JSON(dto.SubRegionsResponse{SubRegions: h.svc.SubRegions()})
}

// Stats godoc
// @Summary      Estadísticas poblacionales
// @Tags         residents
// @Security     Bearer
// @Produce      json
// @Param        order  query  string  false  "alpha|most|least (vacío = todas las sub-regiones)"
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/residents/stats [get]
func (h *ResidentHandler) Stats(c *fiber.Ctx) error {
	out, err := h.svc.Stats(c.UserContext(), c.Query("order"))
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(out)
}

// UploadDocument godoc
// @Summary      Subir documento
// @Description  El tipo se detecta por contenido; si se rechaza el documento anterior se conserva.
// @Tags         residents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del residente"
// @Param        kind  path      string  true  "profile_picture|clearance|residency|indigency"
// @Param        file  formData  file    true  "Archivo"
// @Success      200   {object}  dto.DocumentUploadResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/residents/{id}/documents/{kind} [post]
func (h *ResidentHandler) UploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "falta el archivo (campo file)")
	}
	f, err := fh.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "no se pudo leer el archivo")
	}
	defer f.Close()

	data := make([]byte, fh.Size)
	if _, err := io.ReadFull(f, data); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "no se pudo leer el archivo")
	}
	out, err := h.svc.UploadDocument(c.UserContext(), c.Params("id"), c.Params("kind"), data)
	if err != nil {
		return residentError(c, err)
	}
	return c.JSON(out)
}
