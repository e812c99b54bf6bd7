package resident

import (
	"regexp"
	"strings"
)

const (
	countryCode      = "63"
	mobilePrefix     = "9"
	defaultLocal     = "09"
	localLength      = 11 // 0 + 10 dígitos
	internationalLen = 13 // +63 + 10 dígitos
)

var (
	phoneLocalRe         = regexp.MustCompile(`^0\d{10}$`)
	phoneInternationalRe = regexp.MustCompile(`^\+63\d{10}$`)
)

// FormatPhone reformatea la entrada de teléfono en cada pulsación:
// quita lo que no sea dígito; "63…" se muestra como "+63…"; "9…" recibe el 0 local;
// "09…" se conserva; cualquier otro comienzo se fuerza al prefijo local "09".
// El resultado se trunca al largo de la forma producida. Es idempotente.
func FormatPhone(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, countryCode):
		return truncate("+"+digits, internationalLen)
	case strings.HasPrefix(digits, mobilePrefix):
		return truncate("0"+digits, localLength)
	case strings.HasPrefix(digits, defaultLocal):
		return truncate(digits, localLength)
	case strings.HasPrefix(digits, "0"):
		return truncate(defaultLocal+digits[1:], localLength)
	default:
		return truncate(defaultLocal+digits, localLength)
	}
}

// ValidPhone acepta 0 + 10 dígitos o +63 + 10 dígitos.
func ValidPhone(s string) bool {
	return phoneLocalRe.MatchString(s) || phoneInternationalRe.MatchString(s)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
