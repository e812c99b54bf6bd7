package resident

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// Nombres de campo (claves de error y del diff), en orden de formulario.
const (
	FieldFirstName   = "first_name"
	FieldMiddleName  = "middle_name"
	FieldLastName    = "last_name"
	FieldSuffix      = "suffix"
	FieldBirthdate   = "birthdate"
	FieldAge         = "age"
	FieldGender      = "gender"
	FieldCivilStatus = "civil_status"
	FieldAddress     = "address"
	FieldPhone       = "phone"
	FieldEmail       = "email"
)

var emailValidator = validator.New()

// Rules parámetros del formulario de residente.
type Rules struct {
	NameMaxLength  int
	SubRegions     []string
	RequireContact bool
	Documents      DocumentPolicy
}

// Form valores tal como llegan del formulario. Documents: nil = sin cambio,
// puntero a "" = quitar el documento.
type Form struct {
	FirstName   string
	MiddleName  string
	LastName    string
	Suffix      string
	Birthdate   string
	Gender      string
	CivilStatus string
	Address     string
	Phone       string
	Email       string
	Documents   map[entity.DocumentKind]*string
}

// Apply vuelca el formulario normalizado sobre base (copia) y recalcula la edad.
// Los documentos ausentes en el formulario conservan el valor de base.
func (r Rules) Apply(base entity.Resident, f Form, now time.Time) entity.Resident {
	out := base
	out.FirstName = NormalizeName(f.FirstName, r.NameMaxLength)
	out.MiddleName = NormalizeName(f.MiddleName, r.NameMaxLength)
	out.LastName = NormalizeName(f.LastName, r.NameMaxLength)
	out.Suffix = strings.TrimSpace(f.Suffix)
	out.Birthdate = strings.TrimSpace(f.Birthdate)
	out.Gender = entity.Gender(strings.TrimSpace(f.Gender))
	out.CivilStatus = entity.CivilStatus(strings.TrimSpace(f.CivilStatus))
	out.Address = r.NormalizeAddress(f.Address)
	out.Phone = FormatPhone(f.Phone)
	out.Email = strings.TrimSpace(f.Email)
	for kind, v := range f.Documents {
		if v != nil {
			out.Documents.Set(kind, *v)
		}
	}
	out.Age = 0
	if age, err := AgeAt(out.Birthdate, now); err == nil {
		out.Age = age
	}
	return out
}

// NormalizeAddress recorta espacios y reescribe la sub-región con la etiqueta configurada
// ("barangay 1 ,  purok 2" -> "Barangay 1, purok 2").
func (r Rules) NormalizeAddress(address string) string {
	head, tail, hasTail := strings.Cut(address, ",")
	head = strings.TrimSpace(head)
	for _, sr := range r.SubRegions {
		if strings.EqualFold(head, sr) {
			head = sr
			break
		}
	}
	tail = strings.TrimSpace(tail)
	if !hasTail || tail == "" {
		return head
	}
	return head + ", " + tail
}

// KnownSubRegion informa si la sub-región de address está en la lista configurada.
func (r Rules) KnownSubRegion(address string) bool {
	head := SubRegionOf(address)
	for _, sr := range r.SubRegions {
		if strings.EqualFold(head, sr) {
			return true
		}
	}
	return false
}

// SubRegionOf parte de la dirección antes de la primera coma, sin espacios.
func SubRegionOf(address string) string {
	head, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(head)
}

// Validate comprueba obligatorios y formatos sobre un residente ya normalizado.
// Los errores se acumulan en orden de formulario.
func (r Rules) Validate(res *entity.Resident, now time.Time) *domain.ValidationError {
	verr := domain.NewValidationError()

	if res.FirstName == "" {
		verr.Add(FieldFirstName, "El nombre es obligatorio")
	}
	if res.LastName == "" {
		verr.Add(FieldLastName, "El apellido es obligatorio")
	}
	if !validSuffix(res.Suffix) {
		verr.Add(FieldSuffix, "Sufijo no válido")
	}
	if res.Birthdate == "" {
		verr.Add(FieldBirthdate, "La fecha de nacimiento es obligatoria")
	} else if b, err := ParseBirthdate(res.Birthdate); err != nil {
		verr.Add(FieldBirthdate, "Fecha de nacimiento inválida (AAAA-MM-DD)")
	} else if b.After(now) {
		verr.Add(FieldBirthdate, "La fecha de nacimiento no puede ser futura")
	}
	if res.Gender == "" {
		verr.Add(FieldGender, "El género es obligatorio")
	} else if !res.Gender.Valid() {
		verr.Add(FieldGender, "Género no válido")
	}
	if res.CivilStatus == "" {
		verr.Add(FieldCivilStatus, "El estado civil es obligatorio")
	} else if !res.CivilStatus.Valid() {
		verr.Add(FieldCivilStatus, "Estado civil no válido")
	}
	if res.Address == "" {
		verr.Add(FieldAddress, "La dirección es obligatoria")
	} else if !r.KnownSubRegion(res.Address) {
		verr.Add(FieldAddress, "La dirección debe comenzar con un barangay de la lista")
	}
	if res.Phone == "" {
		if r.RequireContact {
			verr.Add(FieldPhone, "El teléfono es obligatorio")
		}
	} else if !ValidPhone(res.Phone) {
		verr.Add(FieldPhone, "Teléfono inválido (09XXXXXXXXX o +639XXXXXXXXX)")
	}
	if res.Email == "" {
		if r.RequireContact {
			verr.Add(FieldEmail, "El email es obligatorio")
		}
	} else if emailValidator.Var(res.Email, "email") != nil {
		verr.Add(FieldEmail, "Email inválido")
	}
	for _, kind := range entity.DocumentKinds {
		if err := r.Documents.Validate(kind, res.Documents.Get(kind)); err != nil {
			verr.Add(string(kind), err.Error())
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func validSuffix(s string) bool {
	for _, v := range entity.Suffixes {
		if s == v {
			return true
		}
	}
	return false
}

// FieldValue resultado de formatear un campo mientras se escribe.
type FieldValue struct {
	Field string
	Value string
	Age   *int // solo para birthdate válida
}

// FormatField aplica el formato en vivo de un campo (nombres, teléfono, edad desde fecha).
// Campos sin formato especial se devuelven tal cual.
func (r Rules) FormatField(field, value string, now time.Time) FieldValue {
	out := FieldValue{Field: field, Value: value}
	switch field {
	case FieldFirstName, FieldMiddleName, FieldLastName:
		out.Value = FormatName(value, r.NameMaxLength)
	case FieldPhone:
		out.Value = FormatPhone(value)
	case FieldBirthdate:
		if age, err := AgeAt(value, now); err == nil && age >= 0 {
			out.Age = &age
		}
	}
	return out
}
