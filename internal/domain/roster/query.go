// Package roster filtra, ordena, pagina y agrega el padrón de residentes en memoria.
// Funciones puras: no guardan estado entre llamadas.
package roster

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// SortOrder orden por fecha de creación.
type SortOrder string

const (
	SortNewest SortOrder = "newest" // descendente (por defecto)
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder acepta newest/oldest y también desc/asc; vacío o desconocido = newest.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest", "asc":
		return SortOldest
	default:
		return SortNewest
	}
}

// Params filtros activos de la lista. Campos vacíos no filtran.
type Params struct {
	Search      string
	Gender      entity.Gender
	CivilStatus entity.CivilStatus
	SubRegion   string
	Sort        SortOrder
}

// Query aplica los filtros (conjuntivos) y el orden. No modifica records.
func Query(records []entity.Resident, p Params) []entity.Resident {
	search := strings.ToLower(strings.TrimSpace(p.Search))
	subRegion := strings.ToLower(strings.TrimSpace(p.SubRegion))

	out := make([]entity.Resident, 0, len(records))
	for i := range records {
		r := &records[i]
		if p.Gender != "" && r.Gender != p.Gender {
			continue
		}
		if p.CivilStatus != "" && r.CivilStatus != p.CivilStatus {
			continue
		}
		if subRegion != "" && !strings.HasPrefix(strings.ToLower(r.Address), subRegion) {
			continue
		}
		if search != "" && !matches(r, search) {
			continue
		}
		out = append(out, *r)
	}

	Sort(out, p.Sort)
	return out
}

// Sort ordena por CreatedAt de forma estable. Fechas ausentes se comparan como iguales
// entre sí y quedan al final.
func Sort(records []entity.Resident, order SortOrder) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].CreatedAt, records[j].CreatedAt
		switch {
		case a.IsZero() || b.IsZero():
			return !a.IsZero() && b.IsZero()
		case order == SortOldest:
			return a.Before(b)
		default:
			return a.After(b)
		}
	})
}

func matches(r *entity.Resident, needle string) bool {
	for _, hay := range []string{r.FullName(), r.Address, r.Phone, r.Email, strconv.Itoa(r.Age)} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// FilterKey huella de los filtros y el orden; cambia cuando cambia cualquiera de ellos.
// Los clientes la reenvían para que la página vuelva a 1 al cambiar los filtros.
func FilterKey(p Params) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(p.Search)),
		string(p.Gender),
		string(p.CivilStatus),
		strings.ToLower(strings.TrimSpace(p.SubRegion)),
		string(ParseSortOrder(string(p.Sort))),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:8])
}

// ResolvePage página efectiva: vuelve a 1 si el cliente envió una huella distinta de la actual.
func ResolvePage(requested int, clientKey, currentKey string) int {
	if clientKey != "" && clientKey != currentKey {
		return 1
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// Page una página del resultado.
type Page struct {
	Items      []entity.Resident
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// PageCount ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate corta la página solicitada. Páginas fuera de rango se ajustan a la última;
// la página 1 de un resultado vacío es una lista vacía.
func Paginate(records []entity.Resident, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := len(records)
	pages := PageCount(total, pageSize)
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	if pages == 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	items := make([]entity.Resident, end-start)
	copy(items, records[start:end])
	return Page{Items: items, Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}
