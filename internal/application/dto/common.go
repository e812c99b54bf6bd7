package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	FilterKey  string `json:"filter_key"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo en errores de validación (campo → mensaje).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ConfirmRequest reconocimiento explícito para operaciones destructivas.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}
