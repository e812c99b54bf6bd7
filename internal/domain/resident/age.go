// Package resident contiene las reglas del registro de un residente:
// edad derivada, normalización de campos, documentos embebidos, validación y diff.
package resident

import (
	"fmt"
	"time"
)

// DateLayout formato de fecha de nacimiento (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseBirthdate interpreta una fecha YYYY-MM-DD.
func ParseBirthdate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha de nacimiento inválida %q: %w", s, err)
	}
	return t, nil
}

// AgeAt años cumplidos en now. Si el cumpleaños de este año aún no llegó se resta uno;
// un cumpleaños que cae hoy cuenta como cumplido.
func AgeAt(birthdate string, now time.Time) (int, error) {
	b, err := ParseBirthdate(birthdate)
	if err != nil {
		return 0, err
	}
	return ageBetween(b, now), nil
}

func ageBetween(b, now time.Time) int {
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	return age
}
