package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// Columnas que se leen al importar. El resto (ID, edad, sub-región, documentos)
// se recalcula o se ignora.
const (
	colFirstName   = "Nombre"
	colMiddleName  = "Segundo nombre"
	colLastName    = "Apellido"
	colSuffix      = "Sufijo"
	colBirthdate   = "Nacimiento"
	colGender      = "Género"
	colCivilStatus = "Estado civil"
	colAddress     = "Dirección"
	colPhone       = "Teléfono"
	colEmail       = "Email"
)

// ReadRoster lee la primera hoja de un xlsx con la misma cabecera que RosterSheet.
func ReadRoster(r io.Reader) ([]resident.Form, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel: libro sin hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}
	return FormsFromRows(rows)
}

// FormsFromRows convierte filas (la primera es la cabecera) en formularios.
// Las columnas se localizan por nombre; Nombre y Apellido son obligatorias.
// Las filas vacías se omiten.
func FormsFromRows(rows [][]string) ([]resident.Form, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel: archivo vacío")
	}
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colFirstName, colLastName} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("excel: falta la columna %q", required)
		}
	}

	forms := make([]resident.Form, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		form := resident.Form{
			FirstName:   cell(colFirstName),
			MiddleName:  cell(colMiddleName),
			LastName:    cell(colLastName),
			Suffix:      cell(colSuffix),
			Birthdate:   cell(colBirthdate),
			Gender:      cell(colGender),
			CivilStatus: cell(colCivilStatus),
			Address:     cell(colAddress),
			Phone:       cell(colPhone),
			Email:       cell(colEmail),
		}
		forms = append(forms, form)
	}
	return forms, nil
}
