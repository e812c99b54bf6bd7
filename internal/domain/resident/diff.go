package resident

import (
	"strconv"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// Change un campo modificado en una edición (antes → después).
type Change struct {
	Field string
	Old   string
	New   string
}

// Diff lista los campos que difieren entre before y after en orden de formulario.
// Los documentos se resumen (tipo y tamaño) en lugar de volcar la data URL.
func Diff(before, after *entity.Resident) []Change {
	var changes []Change
	add := func(field, o, n string) {
		if o != n {
			changes = append(changes, Change{Field: field, Old: o, New: n})
		}
	}

	add(FieldFirstName, before.FirstName, after.FirstName)
	add(FieldMiddleName, before.MiddleName, after.MiddleName)
	add(FieldLastName, before.LastName, after.LastName)
	add(FieldSuffix, before.Suffix, after.Suffix)
	add(FieldBirthdate, before.Birthdate, after.Birthdate)
	if before.Birthdate != after.Birthdate {
		add(FieldAge, strconv.Itoa(before.Age), strconv.Itoa(after.Age))
	}
	add(FieldGender, string(before.Gender), string(after.Gender))
	add(FieldCivilStatus, string(before.CivilStatus), string(after.CivilStatus))
	add(FieldAddress, before.Address, after.Address)
	add(FieldPhone, before.Phone, after.Phone)
	add(FieldEmail, before.Email, after.Email)
	for _, kind := range entity.DocumentKinds {
		o, n := before.Documents.Get(kind), after.Documents.Get(kind)
		if o != n {
			changes = append(changes, Change{Field: string(kind), Old: Describe(o), New: Describe(n)})
		}
	}
	return changes
}
