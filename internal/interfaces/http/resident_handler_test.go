package http_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
)

func anaRequest() dto.ResidentRequest {
	return dto.ResidentRequest{
		FirstName: "ana", LastName: "cruz", Birthdate: "2000-06-15",
		Gender: "Female", CivilStatus: "Single", Address: "Barangay 1",
	}
}

func createAna(t *testing.T, s *testServer) dto.ResidentResponse {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/residents", tokenFor(t, adminID), anaRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.SubmitResponse](t, resp)
	require.Equal(t, "saved", out.State)
	require.NotNil(t, out.Resident)
	return *out.Resident
}

func TestCreate_EscenarioAnaCruz(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)

	assert.Equal(t, "Ana", ana.FirstName)
	assert.Equal(t, "Cruz", ana.LastName)
	assert.Equal(t, 23, ana.Age)
	assert.Equal(t, "Barangay 1", ana.SubRegion)
}

func TestCreate_Invalido422ConCampos(t *testing.T) {
	s := newTestServer(t)
	in := anaRequest()
	in.FirstName = ""
	in.Address = "Otro lugar"

	resp := s.do(t, http.MethodPost, "/api/residents", tokenFor(t, adminID), in)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	out := decode[dto.SubmitResponse](t, resp)
	assert.Equal(t, "invalid", out.State)
	assert.Equal(t, "first_name", out.FirstInvalid)
	assert.Contains(t, out.Fields, "address")
	assert.Empty(t, s.residents.rows)
}

func TestCreate_UserNoPuedeEscribir(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/residents", tokenFor(t, userID), anaRequest())
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, s.residents.rows)
}

func TestUpdate_RevisionYConfirmacion(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)
	token := tokenFor(t, adminID)

	in := anaRequest()
	in.CivilStatus = "Married"
	resp := s.do(t, http.MethodPut, "/api/residents/"+ana.ID, token, in)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SubmitResponse](t, resp)
	assert.Equal(t, "review", out.State)
	require.Len(t, out.Changes, 1)
	assert.Equal(t, dto.ChangeDTO{Field: "civil_status", Old: "Single", New: "Married"}, out.Changes[0])
	assert.Equal(t, "Single", string(s.residents.rows[ana.ID].CivilStatus), "la revisión no escribe")

	in.Confirm = true
	resp = s.do(t, http.MethodPut, "/api/residents/"+ana.ID, token, in)
	out = decode[dto.SubmitResponse](t, resp)
	assert.Equal(t, "saved", out.State)
	assert.Equal(t, "Married", string(s.residents.rows[ana.ID].CivilStatus))
}

func TestUpdate_Inexistente404(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPut, "/api/residents/no-existe", tokenFor(t, adminID), anaRequest())
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestIDNoUUID_404EnLecturaYBorrado(t *testing.T) {
	s := newTestServer(t)
	token := tokenFor(t, adminID)

	resp := s.do(t, http.MethodGet, "/api/residents/no-existe", token, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)

	resp = s.do(t, http.MethodDelete, "/api/residents/no-existe", token, dto.ConfirmRequest{Confirm: true})
	out = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestDelete_RequiereConfirmacion(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)
	token := tokenFor(t, adminID)

	resp := s.do(t, http.MethodDelete, "/api/residents/"+ana.ID, token, nil)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CONFIRMATION_REQUIRED", out.Code)
	assert.Contains(t, s.residents.rows, ana.ID)

	resp = s.do(t, http.MethodDelete, "/api/residents/"+ana.ID, token, dto.ConfirmRequest{Confirm: true})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotContains(t, s.residents.rows, ana.ID)
}

func TestGet_UserNoVeCertificados(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)

	resp := s.do(t, http.MethodGet, "/api/residents/"+ana.ID, tokenFor(t, userID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ResidentResponse](t, resp)
	require.NotNil(t, out.Documents)
	assert.NotNil(t, out.Documents.ProfilePicture)
	assert.Nil(t, out.Documents.Clearance)
	assert.Nil(t, out.Documents.Residency)
	assert.Nil(t, out.Documents.Indigency)

	resp = s.do(t, http.MethodGet, "/api/residents/"+ana.ID, tokenFor(t, adminID), nil)
	out = decode[dto.ResidentResponse](t, resp)
	assert.NotNil(t, out.Documents.Clearance)
}

func TestList_FiltroInvalido422(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/residents?gender=Robot", tokenFor(t, adminID), nil)
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out.Fields, "gender")
}

func TestList_FiltraYDevuelveFilterKey(t *testing.T) {
	s := newTestServer(t)
	createAna(t, s)

	resp := s.do(t, http.MethodGet, "/api/residents?q=ana&gender=Female", tokenFor(t, userID), nil)
	out := decode[dto.ResidentPageResponse](t, resp)
	assert.Equal(t, 1, out.Total)
	assert.NotEmpty(t, out.FilterKey)

	resp = s.do(t, http.MethodGet, "/api/residents?gender=Male", tokenFor(t, userID), nil)
	out = decode[dto.ResidentPageResponse](t, resp)
	assert.Equal(t, 0, out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Empty(t, out.Items)
}

func TestFormatField_Telefono(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/residents/form/field", tokenFor(t, adminID),
		dto.FieldRequest{Field: "phone", Value: "9171234567"})
	out := decode[dto.FieldResponse](t, resp)

	assert.Equal(t, "09171234567", out.Value)
	assert.Empty(t, out.Error)
}

func TestUploadDocument_2MBRechazado(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "foto.png")
	require.NoError(t, err)
	_, err = part.Write(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 2<<20)...))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/residents/"+ana.ID+"/documents/profile_picture", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, adminID))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out.Fields, "profile_picture")
	assert.Empty(t, s.residents.rows[ana.ID].Documents.ProfilePicture, "el documento queda sin cambios")
}

func TestExports_SoloAdmin(t *testing.T) {
	s := newTestServer(t)
	ana := createAna(t, s)

	resp := s.do(t, http.MethodGet, "/api/residents/report.pdf", tokenFor(t, adminID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = s.do(t, http.MethodGet, "/api/residents/"+ana.ID+"/profile.pdf", tokenFor(t, adminID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/residents/export.xlsx", tokenFor(t, userID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubRegionsPublico(t *testing.T) {
	s := newTestServer(t)
	out := decode[dto.SubRegionsResponse](t, s.do(t, http.MethodGet, "/api/subregions", "", nil))
	assert.Equal(t, []string{"Barangay 1", "Barangay 2", "Barangay 3", "Barangay 4"}, out.SubRegions)
}
