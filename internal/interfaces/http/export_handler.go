package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Residentes-api/internal/application/residents"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportHandler descargas del padrón (solo admin).
type ExportHandler struct {
	exp *residents.Exporter
}

// NewExportHandler construye el handler.
func NewExportHandler(exp *residents.Exporter) *ExportHandler {
	return &ExportHandler{exp: exp}
}

// Spreadsheet godoc
// @Summary      Exportar padrón (xlsx)
// @Tags         exports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/residents/export.xlsx [get]
func (h *ExportHandler) Spreadsheet(c *fiber.Ctx) error {
	out, err := h.exp.Spreadsheet(c.UserContext())
	if err != nil {
		return residentError(c, err)
	}
	return sendFile(c, mimeXLSX, "padron.xlsx", out)
}

// Report godoc
// @Summary      Reporte poblacional (PDF)
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/residents/report.pdf [get]
func (h *ExportHandler) Report(c *fiber.Ctx) error {
	out, err := h.exp.Report(c.UserContext())
	if err != nil {
		return residentError(c, err)
	}
	return sendFile(c, mimePDF, "reporte-padron.pdf", out)
}

// Profile godoc
// @Summary      Ficha de residente (PDF)
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del residente"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/residents/{id}/profile.pdf [get]
func (h *ExportHandler) Profile(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.exp.Profile(c.UserContext(), id)
	if err != nil {
		return residentError(c, err)
	}
	return sendFile(c, mimePDF, "residente-"+id+".pdf", out)
}

func sendFile(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
