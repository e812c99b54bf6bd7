// Package pdf genera los documentos PDF del padrón con Maroto v2:
// el reporte poblacional con listado y la ficha individual de un residente.
//
// Reporte (A4):
//
//	┌──────────────────────────────────────────────┐
//	│  Título + fecha de generación                │
//	│  Resumen: total / género / estado civil      │
//	│  Rangos de edad / población por sub-región   │
//	│  Tabla: Nombre | Edad | Género | Dirección   │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ residents.ReportRenderer = (*Generator)(nil)

// Generator implementa residents.ReportRenderer.
type Generator struct {
	title   string // nombre de la comunidad en el encabezado
	baseURL string // destino del QR de la ficha
}

// NewGenerator construye el generador.
func NewGenerator(title, baseURL string) *Generator {
	return &Generator{title: title, baseURL: baseURL}
}

func (g *Generator) newDocument(subject string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(subject, true).
		WithAuthor(g.title, true).
		Build()
	return maroto.New(cfg)
}

// RosterReport resumen poblacional + listado completo.
func (g *Generator) RosterReport(_ context.Context, list []entity.Resident, stats *dto.StatsResponse, generatedAt time.Time) ([]byte, error) {
	m := g.newDocument("Padrón de residentes")

	m.AddRows(titleRow(g.title, "PADRÓN DE RESIDENTES", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Total de residentes: "+strconv.Itoa(stats.Total), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2}),
	)))
	m.AddRows(summaryRow("Género", stats.ByGender), summaryRow("Estado civil", stats.ByCivilStatus))
	m.AddRows(summaryRow("Edad", stats.ByAgeBracket), summaryRow("Sub-región", stats.BySubRegion))
	m.AddRows(line.NewRow(3))

	m.AddRows(tableHeaderRow())
	for i := range list {
		m.AddRows(tableRow(&list[i]))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ResidentProfile ficha individual con foto (si es PNG/JPEG) y QR al registro.
func (g *Generator) ResidentProfile(_ context.Context, r *entity.Resident, generatedAt time.Time) ([]byte, error) {
	m := g.newDocument("Ficha de residente")

	m.AddRows(titleRow(g.title, "FICHA DE RESIDENTE", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	left := col.New(8).Add(
		text.New(fullNameWithSuffix(r), props.Text{Style: fontstyle.Bold, Size: 13, Top: 2, Color: colorPrimary}),
		text.New(fmt.Sprintf("Nacimiento: %s   |   Edad: %d", r.Birthdate, r.Age), props.Text{Size: 9, Top: 11}),
		text.New(fmt.Sprintf("Género: %s   |   Estado civil: %s", r.Gender, r.CivilStatus), props.Text{Size: 9, Top: 17}),
		text.New("Dirección: "+r.Address, props.Text{Size: 9, Top: 23}),
		text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(r.Phone, "-"), nonEmpty(r.Email, "-")), props.Text{Size: 9, Top: 29}),
	)
	m.AddRows(row.New(45).Add(left, photoCol(r.Documents.ProfilePicture)))

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(7).Add(col.New(12).Add(
		text.New("DOCUMENTOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	)))
	labels := map[entity.DocumentKind]string{
		entity.DocProfilePicture: "Foto de perfil",
		entity.DocClearance:      "Constancia de buena conducta",
		entity.DocResidency:      "Certificado de residencia",
		entity.DocIndigency:      "Certificado de indigencia",
	}
	for _, kind := range entity.DocumentKinds {
		m.AddRows(row.New(5).Add(
			col.New(5).Add(text.New(labels[kind], props.Text{Size: 8, Left: 2})),
			col.New(7).Add(text.New(resident.Describe(r.Documents.Get(kind)), props.Text{Size: 8, Color: colorGray})),
		))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(30).Add(
		col.New(3).Add(code.NewQr(g.baseURL+"/admin/residents/"+r.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Registro: "+r.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Alta: "+r.CreatedAt.Format("02/01/2006")+"   |   Última actualización: "+r.UpdatedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(community, title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(community, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow una línea "Etiqueta: a 3 (30.00%) · b 7 (70.00%)".
func summaryRow(label string, counts []dto.CountDTO) core.Row {
	summary := ""
	for i, c := range counts {
		if i > 0 {
			summary += "  ·  "
		}
		summary += fmt.Sprintf("%s %d (%s%%)", c.Label, c.Count, c.Percent.StringFixed(2))
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(10).Add(text.New(nonEmpty(summary, "-"), props.Text{Size: 8, Top: 1, Color: colorGray})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 4, align.Left),
		h("Edad", 1, align.Center),
		h("Género", 2, align.Left),
		h("Estado civil", 2, align.Left),
		h("Dirección", 3, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(r *entity.Resident) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(fullNameWithSuffix(r), 4, align.Left),
		cell(strconv.Itoa(r.Age), 1, align.Center),
		cell(string(r.Gender), 2, align.Left),
		cell(string(r.CivilStatus), 2, align.Left),
		cell(r.Address, 3, align.Left),
	)
}

func photoCol(dataURL string) core.Col {
	c := col.New(4)
	mimeType, data, err := resident.DecodeDataURL(dataURL)
	if err != nil {
		return c.Add(text.New("Sin foto", props.Text{Size: 8, Align: align.Center, Top: 18, Color: colorGray}))
	}
	switch mimeType {
	case "image/png":
		return c.Add(image.NewFromBytes(data, extension.Png, props.Rect{Percent: 90, Center: true}))
	case "image/jpeg":
		return c.Add(image.NewFromBytes(data, extension.Jpg, props.Rect{Percent: 90, Center: true}))
	default:
		return c.Add(text.New("Foto en formato "+mimeType, props.Text{Size: 8, Align: align.Center, Top: 18, Color: colorGray}))
	}
}

func fullNameWithSuffix(r *entity.Resident) string {
	if r.Suffix == "" {
		return r.FullName()
	}
	return r.FullName() + " " + r.Suffix
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
