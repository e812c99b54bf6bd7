package residents

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/roster"
)

// ReportRenderer genera los PDF del padrón.
type ReportRenderer interface {
	RosterReport(ctx context.Context, list []entity.Resident, stats *dto.StatsResponse, generatedAt time.Time) ([]byte, error)
	ResidentProfile(ctx context.Context, r *entity.Resident, generatedAt time.Time) ([]byte, error)
}

// SheetRenderer genera la hoja de cálculo del padrón.
type SheetRenderer interface {
	RosterSheet(ctx context.Context, list []entity.Resident, generatedAt time.Time) ([]byte, error)
}

// Exporter exportaciones del padrón (solo admin).
type Exporter struct {
	svc    *Service
	pdf    ReportRenderer
	sheets SheetRenderer
}

// NewExporter construye el exportador.
func NewExporter(svc *Service, pdf ReportRenderer, sheets SheetRenderer) *Exporter {
	return &Exporter{svc: svc, pdf: pdf, sheets: sheets}
}

// Spreadsheet padrón completo en xlsx, más antiguos primero.
func (e *Exporter) Spreadsheet(ctx context.Context) ([]byte, error) {
	list, err := e.svc.All(ctx)
	if err != nil {
		return nil, err
	}
	roster.Sort(list, roster.SortOldest)
	out, err := e.sheets.RosterSheet(ctx, list, e.svc.now())
	if err != nil {
		return nil, fmt.Errorf("exportar xlsx: %w", err)
	}
	return out, nil
}

// Report PDF con el resumen poblacional y el listado.
func (e *Exporter) Report(ctx context.Context) ([]byte, error) {
	list, err := e.svc.All(ctx)
	if err != nil {
		return nil, err
	}
	stats := BuildStats(roster.Aggregate(list), e.svc.rules.SubRegions, roster.OrderAlpha)
	roster.Sort(list, roster.SortOldest)
	out, err := e.pdf.RosterReport(ctx, list, stats, e.svc.now())
	if err != nil {
		return nil, fmt.Errorf("exportar reporte: %w", err)
	}
	return out, nil
}

// Profile PDF de la ficha de un residente.
func (e *Exporter) Profile(ctx context.Context, id string) ([]byte, error) {
	r, err := e.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := e.pdf.ResidentProfile(ctx, r, e.svc.now())
	if err != nil {
		return nil, fmt.Errorf("exportar ficha: %w", err)
	}
	return out, nil
}
