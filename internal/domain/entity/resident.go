package entity

import "time"

// Gender género registrado del residente.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Genders valores válidos en orden de formulario.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid informa si g es uno de los valores permitidos.
func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// CivilStatus estado civil del residente.
type CivilStatus string

const (
	CivilSingle    CivilStatus = "Single"
	CivilMarried   CivilStatus = "Married"
	CivilWidowed   CivilStatus = "Widowed"
	CivilDivorced  CivilStatus = "Divorced"
	CivilSeparated CivilStatus = "Separated"
)

// CivilStatuses valores válidos en orden de formulario.
var CivilStatuses = []CivilStatus{CivilSingle, CivilMarried, CivilWidowed, CivilDivorced, CivilSeparated}

// Valid informa si s es uno de los valores permitidos.
func (s CivilStatus) Valid() bool {
	for _, v := range CivilStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Suffixes sufijos de nombre aceptados ("" = sin sufijo).
var Suffixes = []string{"", "Jr.", "Sr.", "II", "III", "IV"}

// DocumentKind tipo de documento adjunto al residente.
type DocumentKind string

const (
	DocProfilePicture DocumentKind = "profile_picture"
	DocClearance      DocumentKind = "clearance"
	DocResidency      DocumentKind = "residency"
	DocIndigency      DocumentKind = "indigency"
)

// DocumentKinds todos los tipos en orden de formulario.
var DocumentKinds = []DocumentKind{DocProfilePicture, DocClearance, DocResidency, DocIndigency}

// Documents documentos del residente como data URLs (data:<mime>;base64,...). Vacío = sin documento.
type Documents struct {
	ProfilePicture string
	Clearance      string
	Residency      string
	Indigency      string
}

// Get devuelve el documento del tipo indicado.
func (d Documents) Get(kind DocumentKind) string {
	switch kind {
	case DocProfilePicture:
		return d.ProfilePicture
	case DocClearance:
		return d.Clearance
	case DocResidency:
		return d.Residency
	case DocIndigency:
		return d.Indigency
	}
	return ""
}

// Set asigna el documento del tipo indicado.
func (d *Documents) Set(kind DocumentKind, value string) {
	switch kind {
	case DocProfilePicture:
		d.ProfilePicture = value
	case DocClearance:
		d.Clearance = value
	case DocResidency:
		d.Residency = value
	case DocIndigency:
		d.Indigency = value
	}
}

// Resident representa un residente del barangay. Age es derivada de Birthdate
// y se recalcula en cada lectura; nunca se persiste.
type Resident struct {
	ID          string
	FirstName   string
	MiddleName  string
	LastName    string
	Suffix      string
	Birthdate   string // YYYY-MM-DD
	Age         int
	Gender      Gender
	CivilStatus CivilStatus
	Address     string // "<sub-región>[, <sub-unidad>]"
	Phone       string
	Email       string
	Documents   Documents
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName nombre completo "first middle last" (sin dobles espacios).
func (r *Resident) FullName() string {
	name := r.FirstName
	for _, part := range []string{r.MiddleName, r.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}
