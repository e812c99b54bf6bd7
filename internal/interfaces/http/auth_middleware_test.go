package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
)

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/residents/stats", tokenFor(t, adminID), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")
}

// Caso 1b: ruta que permite admin o user.
func TestRequireRole_UserAccedeListado(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/residents", tokenFor(t, userID), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: rol distinto al requerido → HTTP 403 Forbidden.
func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/residents/stats", tokenFor(t, userID), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN", "la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: el rol se lee del registro en cada petición; un cambio de rol aplica de inmediato.
func TestAuthMiddleware_RolActualDelRegistro(t *testing.T) {
	s := newTestServer(t)
	token := tokenFor(t, userID)

	resp := s.do(t, http.MethodGet, "/api/residents/stats", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	s.users.users[userID].Role = s.users.users[adminID].Role
	resp = s.do(t, http.MethodGet, "/api/residents/stats", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: token válido de un usuario sin registro de rol → 401.
func TestAuthMiddleware_SinRegistroDeRol(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/residents", tokenFor(t, "00000000-0000-0000-0000-00000000dead"), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: sin token o token malformado → 401 UNAUTHORIZED.
func TestAuthMiddleware_SinToken(t *testing.T) {
	s := newTestServer(t)
	for _, token := range []string{"", "token.invalido.aqui"} {
		resp := s.do(t, http.MethodGet, "/api/residents", token, nil)
		out := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, token)
		assert.Equal(t, "UNAUTHORIZED", out.Code)
	}
}

// Caso 6: un token revocado por logout deja de servir.
func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	s := newTestServer(t)
	token := tokenFor(t, adminID)

	resp := s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/auth/me", tokenFor(t, adminID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, adminID, me.ID)
	assert.Equal(t, "admin", me.Role)
	assert.Equal(t, "Jefa", me.Nickname)
}
