package resident

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// Errores de documentos embebidos.
var (
	ErrDocumentTooLarge    = errors.New("el archivo supera el tamaño máximo")
	ErrDocumentType        = errors.New("tipo de archivo no permitido")
	ErrDocumentEncoding    = errors.New("documento mal codificado")
	ErrDocumentUnknownKind = errors.New("tipo de documento desconocido")
)

var imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// DocumentPolicy contrato de validación de documentos: lista de tipos MIME por
// tipo de documento y tamaño máximo (bytes decodificados).
type DocumentPolicy struct {
	MaxBytes int64
	Allowed  map[entity.DocumentKind][]string
}

// DefaultDocumentPolicy foto: imágenes; certificados: PDF o imágenes escaneadas.
func DefaultDocumentPolicy(maxBytes int64) DocumentPolicy {
	certs := append([]string{"application/pdf"}, imageTypes...)
	return DocumentPolicy{
		MaxBytes: maxBytes,
		Allowed: map[entity.DocumentKind][]string{
			entity.DocProfilePicture: imageTypes,
			entity.DocClearance:      certs,
			entity.DocResidency:      certs,
			entity.DocIndigency:      certs,
		},
	}
}

// ParseDocumentKind convierte el nombre de ruta/campo en DocumentKind.
func ParseDocumentKind(s string) (entity.DocumentKind, error) {
	for _, k := range entity.DocumentKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrDocumentUnknownKind
}

// Encode valida bytes crudos contra la política y los convierte en data URL.
// El tipo se detecta por contenido, no por el nombre ni la cabecera del cliente.
func (p DocumentPolicy) Encode(kind entity.DocumentKind, data []byte) (string, error) {
	mimeType, err := p.check(kind, data)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Validate decodifica una data URL y aplica la misma política que Encode.
// Vacío es válido (sin documento).
func (p DocumentPolicy) Validate(kind entity.DocumentKind, dataURL string) error {
	if dataURL == "" {
		return nil
	}
	_, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return err
	}
	_, err = p.check(kind, data)
	return err
}

func (p DocumentPolicy) check(kind entity.DocumentKind, data []byte) (string, error) {
	allowed, ok := p.Allowed[kind]
	if !ok {
		return "", ErrDocumentUnknownKind
	}
	if p.MaxBytes > 0 && int64(len(data)) > p.MaxBytes {
		return "", fmt.Errorf("%w (%s > %s)", ErrDocumentTooLarge, HumanSize(int64(len(data))), HumanSize(p.MaxBytes))
	}
	detected := baseMIME(mimetype.Detect(data).String())
	for _, a := range allowed {
		if a == detected {
			return detected, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrDocumentType, detected)
}

// DecodeDataURL separa el tipo MIME declarado y los bytes de una data URL base64.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrDocumentEncoding
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrDocumentEncoding
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, ErrDocumentEncoding
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDocumentEncoding, err)
	}
	return baseMIME(mediaType), data, nil
}

// Describe resumen legible de un documento para el diff ("image/png, 12.0 KB").
func Describe(dataURL string) string {
	if dataURL == "" {
		return "sin archivo"
	}
	mediaType, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "archivo ilegible"
	}
	return mediaType + ", " + HumanSize(int64(len(data)))
}

// HumanSize tamaño en B/KB/MB con un decimal.
func HumanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func baseMIME(s string) string {
	base, _, _ := strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
