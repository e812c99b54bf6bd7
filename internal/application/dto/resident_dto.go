package dto

import "time"

// ListResidentsQuery parámetros de la lista del padrón.
type ListResidentsQuery struct {
	Q           string `query:"q" validate:"max=100"`
	Gender      string `query:"gender" validate:"omitempty,oneof=Male Female Other"`
	CivilStatus string `query:"civil_status" validate:"omitempty,oneof=Single Married Widowed Divorced Separated"`
	SubRegion   string `query:"sub_region" validate:"max=100"`
	Sort        string `query:"sort" validate:"omitempty,oneof=newest oldest desc asc"`
	Page        int    `query:"page" validate:"min=0"`
	PageSize    int    `query:"page_size" validate:"min=0,max=100"`
	FilterKey   string `query:"filter_key"`
}

// DocumentsDTO documentos como data URLs. En entrada: null = sin cambio, "" = quitar.
type DocumentsDTO struct {
	ProfilePicture *string `json:"profile_picture,omitempty"`
	Clearance      *string `json:"clearance,omitempty"`
	Residency      *string `json:"residency,omitempty"`
	Indigency      *string `json:"indigency,omitempty"`
}

// ResidentRequest formulario de alta/edición. Age no se acepta: se deriva de birthdate.
type ResidentRequest struct {
	FirstName   string       `json:"first_name"`
	MiddleName  string       `json:"middle_name"`
	LastName    string       `json:"last_name"`
	Suffix      string       `json:"suffix"`
	Birthdate   string       `json:"birthdate"`
	Gender      string       `json:"gender"`
	CivilStatus string       `json:"civil_status"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	Documents   DocumentsDTO `json:"documents"`
	Confirm     bool         `json:"confirm"`
}

// ResidentResponse residente con edad recalculada. Documents se omite en la vista de user.
type ResidentResponse struct {
	ID          string        `json:"id"`
	FirstName   string        `json:"first_name"`
	MiddleName  string        `json:"middle_name"`
	LastName    string        `json:"last_name"`
	Suffix      string        `json:"suffix"`
	FullName    string        `json:"full_name"`
	Birthdate   string        `json:"birthdate"`
	Age         int           `json:"age"`
	Gender      string        `json:"gender"`
	CivilStatus string        `json:"civil_status"`
	Address     string        `json:"address"`
	SubRegion   string        `json:"sub_region"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Documents   *DocumentsDTO `json:"documents,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ResidentPageResponse una página del padrón.
type ResidentPageResponse struct {
	Items []ResidentResponse `json:"items"`
	PageResponse
}

// ChangeDTO un campo modificado en la revisión previa a guardar.
type ChangeDTO struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// SubmitResponse resultado del flujo de edición (state: invalid|review|saved|failed).
type SubmitResponse struct {
	State        string            `json:"state"`
	Message      string            `json:"message,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
	FirstInvalid string            `json:"first_invalid,omitempty"`
	Changes      []ChangeDTO       `json:"changes,omitempty"`
	Resident     *ResidentResponse `json:"resident,omitempty"`
	Original     *ResidentResponse `json:"original,omitempty"`
	Submission   *ResidentRequest  `json:"submission,omitempty"`
}

// FieldRequest valor de un campo mientras se escribe.
type FieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// FieldResponse valor formateado; Age solo cuando field=birthdate es una fecha válida.
type FieldResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Age   *int   `json:"age,omitempty"`
	Error string `json:"error"`
}

// DocumentUploadResponse resultado de subir un documento.
type DocumentUploadResponse struct {
	Kind     string `json:"kind"`
	MimeType string `json:"mime_type"`
	Size     string `json:"size"`
}
