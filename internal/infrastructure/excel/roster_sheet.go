// Package excel genera la hoja de cálculo del padrón con excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// SheetName nombre de la hoja principal.
const SheetName = "Residentes"

// Headers columnas de la hoja en orden.
var Headers = []string{
	"ID", "Nombre", "Segundo nombre", "Apellido", "Sufijo", "Nacimiento", "Edad",
	"Género", "Estado civil", "Sub-región", "Dirección", "Teléfono", "Email",
	"Foto", "Buena conducta", "Residencia", "Indigencia", "Alta",
}

var columnWidths = []float64{38, 15, 15, 15, 8, 12, 6, 10, 12, 16, 30, 18, 26, 18, 18, 18, 18, 18}

var _ residents.SheetRenderer = (*Renderer)(nil)

// Renderer implementa residents.SheetRenderer.
type Renderer struct{}

// NewRenderer construye el renderer xlsx.
func NewRenderer() *Renderer { return &Renderer{} }

// RosterSheet una fila por residente; los documentos se resumen (tipo y tamaño), nunca se embeben.
func (r *Renderer) RosterSheet(_ context.Context, list []entity.Resident, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#005A3C"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	for i, w := range columnWidths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, w); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: ancho de columna: %w", err)
		}
	}

	for i := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := rowValues(&list[i])
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: fijar cabecera: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Padrón de residentes",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: propiedades: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("excel: cerrar: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(r *entity.Resident) []interface{} {
	return []interface{}{
		r.ID,
		r.FirstName,
		r.MiddleName,
		r.LastName,
		r.Suffix,
		r.Birthdate,
		r.Age,
		string(r.Gender),
		string(r.CivilStatus),
		resident.SubRegionOf(r.Address),
		r.Address,
		r.Phone,
		r.Email,
		resident.Describe(r.Documents.ProfilePicture),
		resident.Describe(r.Documents.Clearance),
		resident.Describe(r.Documents.Residency),
		resident.Describe(r.Documents.Indigency),
		r.CreatedAt.Format("2006-01-02 15:04"),
	}
}
