package dto

import "github.com/shopspring/decimal"

// CountDTO conteo con su porcentaje sobre el total (2 decimales).
type CountDTO struct {
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// StatsResponse resumen poblacional del padrón completo.
type StatsResponse struct {
	Total         int        `json:"total"`
	ByGender      []CountDTO `json:"by_gender"`
	ByCivilStatus []CountDTO `json:"by_civil_status"`
	ByAgeBracket  []CountDTO `json:"by_age_bracket"`
	BySubRegion   []CountDTO `json:"by_sub_region"`
	Order         string     `json:"order"`
}

// SubRegionsResponse lista de sub-regiones configuradas.
type SubRegionsResponse struct {
	SubRegions []string `json:"sub_regions"`
}
