package resident

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// FormatName aplica el formato de escritura de un nombre: primera letra en mayúscula,
// resto en minúscula, truncado a maxLen runas. No recorta espacios (se usa mientras se escribe).
func FormatName(s string, maxLen int) string {
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return upper.String(string(first)) + lower.String(s[size:])
}

// NormalizeName FormatName sobre el valor sin espacios en los extremos (al enviar).
func NormalizeName(s string, maxLen int) string {
	return FormatName(strings.TrimSpace(s), maxLen)
}

// Capitalize primera letra en mayúscula y el resto intacto (apodos de usuario).
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return upper.String(string(first)) + s[size:]
}
