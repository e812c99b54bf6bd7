package roster

import (
	"sort"
	"strings"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// Rangos de edad (inclusivos).
const (
	ChildMaxAge = 12
	TeenMaxAge  = 17
	AdultMaxAge = 59
)

// GenderCounts conteo por género (Other solo entra en Total).
type GenderCounts struct {
	Male   int
	Female int
}

// CivilStatusCounts conteo por estado civil; Separated no tiene columna propia.
type CivilStatusCounts struct {
	Single   int
	Married  int
	Widowed  int
	Divorced int
}

// AgeBrackets niños 0-12, adolescentes 13-17, adultos 18-59, mayores 60+.
type AgeBrackets struct {
	Children int
	Teens    int
	Adults   int
	Seniors  int
}

// Stats resumen poblacional sobre el conjunto completo, sin filtros.
type Stats struct {
	Total         int
	ByGender      GenderCounts
	ByCivilStatus CivilStatusCounts
	ByAgeBracket  AgeBrackets
	BySubRegion   map[string]int
}

// Aggregate cuenta residentes por género, estado civil, rango de edad y sub-región.
// La edad debe venir ya recalculada.
func Aggregate(records []entity.Resident) Stats {
	s := Stats{Total: len(records), BySubRegion: map[string]int{}}
	for i := range records {
		r := &records[i]
		switch r.Gender {
		case entity.GenderMale:
			s.ByGender.Male++
		case entity.GenderFemale:
			s.ByGender.Female++
		}
		switch r.CivilStatus {
		case entity.CivilSingle:
			s.ByCivilStatus.Single++
		case entity.CivilMarried:
			s.ByCivilStatus.Married++
		case entity.CivilWidowed:
			s.ByCivilStatus.Widowed++
		case entity.CivilDivorced:
			s.ByCivilStatus.Divorced++
		}
		switch {
		case r.Age <= ChildMaxAge:
			s.ByAgeBracket.Children++
		case r.Age <= TeenMaxAge:
			s.ByAgeBracket.Teens++
		case r.Age <= AdultMaxAge:
			s.ByAgeBracket.Adults++
		default:
			s.ByAgeBracket.Seniors++
		}
		if sr := resident.SubRegionOf(r.Address); sr != "" {
			s.BySubRegion[sr]++
		}
	}
	return s
}

// SubRegionOrder orden de la tabla de sub-regiones.
type SubRegionOrder string

const (
	OrderNone  SubRegionOrder = ""
	OrderAlpha SubRegionOrder = "alpha"
	OrderMost  SubRegionOrder = "most"
	OrderLeast SubRegionOrder = "least"
)

// ParseSubRegionOrder valor desconocido = sin orden.
func ParseSubRegionOrder(s string) SubRegionOrder {
	switch o := SubRegionOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAlpha, OrderMost, OrderLeast:
		return o
	}
	return OrderNone
}

// SubRegionRow fila de la tabla de población por sub-región.
type SubRegionRow struct {
	Name  string
	Count int
}

// SubRegionTable filas por sub-región. Sin orden: primero las configuradas (en su orden,
// incluso con 0) y luego las no configuradas alfabéticamente. Con orden activo se excluyen
// las de población 0; empates se resuelven por nombre.
func SubRegionTable(s Stats, known []string, order SubRegionOrder) []SubRegionRow {
	counts := make(map[string]int, len(s.BySubRegion))
	for name, n := range s.BySubRegion {
		counts[canonical(name, known)] += n
	}

	rows := make([]SubRegionRow, 0, len(counts)+len(known))
	seen := map[string]bool{}
	for _, name := range known {
		if seen[name] {
			continue
		}
		seen[name] = true
		rows = append(rows, SubRegionRow{Name: name, Count: counts[name]})
	}
	var extra []SubRegionRow
	for name, n := range counts {
		if !seen[name] {
			extra = append(extra, SubRegionRow{Name: name, Count: n})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })
	rows = append(rows, extra...)

	if order == OrderNone {
		return rows
	}

	filtered := rows[:0]
	for _, r := range rows {
		if r.Count > 0 {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch order {
		case OrderMost:
			if a.Count != b.Count {
				return a.Count > b.Count
			}
		case OrderLeast:
			if a.Count != b.Count {
				return a.Count < b.Count
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return filtered
}

func canonical(name string, known []string) string {
	for _, k := range known {
		if strings.EqualFold(name, k) {
			return k
		}
	}
	return name
}
