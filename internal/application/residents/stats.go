package residents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain/roster"
)

var hundred = decimal.NewFromInt(100)

// Stats resumen poblacional sobre todo el padrón; order ordena la tabla de sub-regiones.
func (s *Service) Stats(ctx context.Context, order string) (*dto.StatsResponse, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStats(roster.Aggregate(all), s.rules.SubRegions, roster.ParseSubRegionOrder(order)), nil
}

// BuildStats convierte el agregado en DTO con porcentajes a 2 decimales.
func BuildStats(st roster.Stats, known []string, order roster.SubRegionOrder) *dto.StatsResponse {
	count := func(label string, n int) dto.CountDTO {
		return dto.CountDTO{Label: label, Count: n, Percent: percent(n, st.Total)}
	}
	out := &dto.StatsResponse{
		Total: st.Total,
		Order: string(order),
		ByGender: []dto.CountDTO{
			count("Male", st.ByGender.Male),
			count("Female", st.ByGender.Female),
		},
		ByCivilStatus: []dto.CountDTO{
			count("Single", st.ByCivilStatus.Single),
			count("Married", st.ByCivilStatus.Married),
			count("Widowed", st.ByCivilStatus.Widowed),
			count("Divorced", st.ByCivilStatus.Divorced),
		},
		ByAgeBracket: []dto.CountDTO{
			count("0-12", st.ByAgeBracket.Children),
			count("13-17", st.ByAgeBracket.Teens),
			count("18-59", st.ByAgeBracket.Adults),
			count("60+", st.ByAgeBracket.Seniors),
		},
	}
	rows := roster.SubRegionTable(st, known, order)
	out.BySubRegion = make([]dto.CountDTO, 0, len(rows))
	for _, r := range rows {
		out.BySubRegion = append(out.BySubRegion, count(r.Name, r.Count))
	}
	return out
}

func percent(n, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}
