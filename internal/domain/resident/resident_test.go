package resident_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfHeader = []byte("%PDF-1.4\n%âãÏÓ\n")
	hoy       = time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
)

func testRules() resident.Rules {
	return resident.Rules{
		NameMaxLength: 15,
		SubRegions:    []string{"Barangay 1", "Barangay 2", "Barangay 3", "Barangay 4"},
		Documents:     resident.DefaultDocumentPolicy(1 << 20),
	}
}

func TestAgeAt_CumpleañosPendiente(t *testing.T) {
	age, err := resident.AgeAt("2000-06-15", hoy)
	require.NoError(t, err)
	assert.Equal(t, 23, age)
}

func TestAgeAt_CumpleañosHoyCuenta(t *testing.T) {
	age, err := resident.AgeAt("2000-06-14", hoy)
	require.NoError(t, err)
	assert.Equal(t, 24, age)
}

func TestAgeAt_FechaInvalida(t *testing.T) {
	_, err := resident.AgeAt("14/06/2000", hoy)
	assert.Error(t, err)
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Ana", resident.FormatName("ana", 15))
	assert.Equal(t, "Mcdonald", resident.FormatName("McDONALD", 15))
	assert.Equal(t, "Ñañez", resident.FormatName("ñañez", 15))
	assert.Equal(t, "Abcdefghijklmno", resident.FormatName("abcdefghijklmnopqrs", 15))
	assert.Equal(t, "", resident.FormatName("", 15))
	assert.Equal(t, "Ana", resident.NormalizeName("  ana ", 15))
	assert.Equal(t, "JuanDev", resident.Capitalize("juanDev"))
}

func TestFormatPhone_Escenarios(t *testing.T) {
	cases := map[string]string{
		"9171234567":        "09171234567",
		"639171234567":      "+639171234567",
		"09171234567":       "09171234567",
		"0917-123-4567":     "09171234567",
		"+63 917 123 4567":  "+639171234567",
		"1234":              "091234",
		"0817":              "09817",
		"091712345678999":   "09171234567",
		"63917123456789999": "+639171234567",
		"abc":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, resident.FormatPhone(in), "entrada %q", in)
	}
}

func TestFormatPhone_Idempotente(t *testing.T) {
	for _, in := range []string{"9171234567", "639171234567", "1234", "0817", "09171234567"} {
		once := resident.FormatPhone(in)
		assert.Equal(t, once, resident.FormatPhone(once), "entrada %q", in)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, resident.ValidPhone("09171234567"))
	assert.True(t, resident.ValidPhone("+639171234567"))
	assert.False(t, resident.ValidPhone("0917123456"))
	assert.False(t, resident.ValidPhone("+63917123456"))
}

func TestDocumentPolicy_RechazaArchivoGrande(t *testing.T) {
	policy := resident.DefaultDocumentPolicy(1 << 20)
	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2<<20)...)

	_, err := policy.Encode(entity.DocProfilePicture, big)
	assert.ErrorIs(t, err, resident.ErrDocumentTooLarge)
}

func TestDocumentPolicy_TipoPorDocumento(t *testing.T) {
	policy := resident.DefaultDocumentPolicy(1 << 20)

	url, err := policy.Encode(entity.DocProfilePicture, pngHeader)
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/png;base64,")
	assert.NoError(t, policy.Validate(entity.DocProfilePicture, url))

	_, err = policy.Encode(entity.DocProfilePicture, pdfHeader)
	assert.ErrorIs(t, err, resident.ErrDocumentType, "la foto no acepta PDF")

	url, err = policy.Encode(entity.DocClearance, pdfHeader)
	require.NoError(t, err)
	assert.Contains(t, url, "data:application/pdf;base64,")

	_, err = policy.Encode(entity.DocResidency, []byte("texto plano"))
	assert.ErrorIs(t, err, resident.ErrDocumentType)

	_, err = policy.Encode(entity.DocumentKind("cedula"), pngHeader)
	assert.ErrorIs(t, err, resident.ErrDocumentUnknownKind)
}

func TestDocumentPolicy_ValidateDataURL(t *testing.T) {
	policy := resident.DefaultDocumentPolicy(1 << 20)
	assert.NoError(t, policy.Validate(entity.DocIndigency, ""))
	assert.ErrorIs(t, policy.Validate(entity.DocIndigency, "no-es-data-url"), resident.ErrDocumentEncoding)
	assert.ErrorIs(t, policy.Validate(entity.DocIndigency, "data:image/png;base64,%%%"), resident.ErrDocumentEncoding)
}

func TestDescribe(t *testing.T) {
	policy := resident.DefaultDocumentPolicy(1 << 20)
	url, err := policy.Encode(entity.DocProfilePicture, pngHeader)
	require.NoError(t, err)

	assert.Equal(t, "sin archivo", resident.Describe(""))
	assert.Equal(t, "image/png, 16 B", resident.Describe(url))
	assert.Equal(t, "1.5 KB", resident.HumanSize(1536))
	assert.Equal(t, "2.0 MB", resident.HumanSize(2<<20))
}

func TestApply_EscenarioAnaCruz(t *testing.T) {
	rules := testRules()
	form := resident.Form{
		FirstName:   "ana",
		LastName:    "cruz",
		Birthdate:   "2000-06-15",
		Gender:      "Female",
		CivilStatus: "Single",
		Address:     "barangay 1",
	}

	r := rules.Apply(entity.Resident{}, form, hoy)
	assert.Equal(t, "Ana", r.FirstName)
	assert.Equal(t, "Cruz", r.LastName)
	assert.Equal(t, 23, r.Age)
	assert.Equal(t, "Barangay 1", r.Address)
	assert.Nil(t, rules.Validate(&r, hoy))
}

func TestApply_DocumentosAusentesSeConservan(t *testing.T) {
	rules := testRules()
	base := entity.Resident{Documents: entity.Documents{Clearance: "data:application/pdf;base64,AAAA"}}
	vacio := ""

	r := rules.Apply(base, resident.Form{}, hoy)
	assert.Equal(t, base.Documents.Clearance, r.Documents.Clearance)

	r = rules.Apply(base, resident.Form{Documents: map[entity.DocumentKind]*string{entity.DocClearance: &vacio}}, hoy)
	assert.Empty(t, r.Documents.Clearance)
}

func TestNormalizeAddress(t *testing.T) {
	rules := testRules()
	assert.Equal(t, "Barangay 2, Purok 3", rules.NormalizeAddress("  barangay 2 ,  Purok 3 "))
	assert.Equal(t, "Barangay 2", rules.NormalizeAddress("BARANGAY 2,"))
	assert.Equal(t, "Otro lugar", rules.NormalizeAddress("Otro lugar"))
	assert.Equal(t, "Barangay 2", resident.SubRegionOf(" Barangay 2 , Purok 3"))
}

func TestValidate_ObligatoriosEnOrdenDeFormulario(t *testing.T) {
	rules := testRules()
	r := entity.Resident{}

	verr := rules.Validate(&r, hoy)
	require.NotNil(t, verr)
	assert.Equal(t, resident.FieldFirstName, verr.First())
	assert.Equal(t, []string{
		resident.FieldFirstName, resident.FieldLastName, resident.FieldBirthdate,
		resident.FieldGender, resident.FieldCivilStatus, resident.FieldAddress,
	}, verr.Order)
	assert.True(t, errors.Is(verr, domain.ErrInvalidInput))
}

func TestValidate_Formatos(t *testing.T) {
	rules := testRules()
	r := entity.Resident{
		FirstName: "Ana", LastName: "Cruz", Suffix: "Esq.",
		Birthdate: "2030-01-01", Gender: "Alien", CivilStatus: "Complicado",
		Address: "Barangay 9", Phone: "12345", Email: "no-es-email",
	}

	verr := rules.Validate(&r, hoy)
	require.NotNil(t, verr)
	for _, f := range []string{
		resident.FieldSuffix, resident.FieldBirthdate, resident.FieldGender,
		resident.FieldCivilStatus, resident.FieldAddress, resident.FieldPhone, resident.FieldEmail,
	} {
		assert.Contains(t, verr.Fields, f)
	}
	assert.Equal(t, resident.FieldSuffix, verr.First())
}

func TestValidate_ContactoObligatorio(t *testing.T) {
	rules := testRules()
	rules.RequireContact = true
	r := entity.Resident{
		FirstName: "Ana", LastName: "Cruz", Birthdate: "2000-06-15",
		Gender: entity.GenderFemale, CivilStatus: entity.CivilSingle, Address: "Barangay 1",
	}

	verr := rules.Validate(&r, hoy)
	require.NotNil(t, verr)
	assert.Equal(t, []string{resident.FieldPhone, resident.FieldEmail}, verr.Order)
}

func TestValidate_DocumentoInvalido(t *testing.T) {
	rules := testRules()
	r := entity.Resident{
		FirstName: "Ana", LastName: "Cruz", Birthdate: "2000-06-15",
		Gender: entity.GenderFemale, CivilStatus: entity.CivilSingle, Address: "Barangay 1",
		Documents: entity.Documents{ProfilePicture: "data:text/plain;base64,aG9sYQ=="},
	}

	verr := rules.Validate(&r, hoy)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, string(entity.DocProfilePicture))
}

func TestFormatField(t *testing.T) {
	rules := testRules()

	assert.Equal(t, "Ana", rules.FormatField(resident.FieldFirstName, "aNA", hoy).Value)
	assert.Equal(t, "09171234567", rules.FormatField(resident.FieldPhone, "9171234567", hoy).Value)

	fv := rules.FormatField(resident.FieldBirthdate, "2000-06-15", hoy)
	require.NotNil(t, fv.Age)
	assert.Equal(t, 23, *fv.Age)

	assert.Nil(t, rules.FormatField(resident.FieldBirthdate, "2000-13-40", hoy).Age)
	assert.Equal(t, "Barangay 1", rules.FormatField(resident.FieldAddress, "Barangay 1", hoy).Value)
}

func TestDiff(t *testing.T) {
	before := entity.Resident{FirstName: "Ana", LastName: "Cruz", Birthdate: "2000-06-15", Age: 23, Phone: "09171234567"}
	after := before
	after.LastName = "Reyes"
	after.Birthdate = "2001-06-15"
	after.Age = 22
	after.Documents.Clearance = "data:application/pdf;base64,JVBERi0xLjQK"

	changes := resident.Diff(&before, &after)
	require.Len(t, changes, 4)
	assert.Equal(t, resident.Change{Field: resident.FieldLastName, Old: "Cruz", New: "Reyes"}, changes[0])
	assert.Equal(t, resident.FieldBirthdate, changes[1].Field)
	assert.Equal(t, resident.Change{Field: resident.FieldAge, Old: "23", New: "22"}, changes[2])
	assert.Equal(t, resident.Change{Field: "clearance", Old: "sin archivo", New: "application/pdf, 9 B"}, changes[3])

	assert.Empty(t, resident.Diff(&before, &before))
}
