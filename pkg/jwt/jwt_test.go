package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Residentes-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "padron-test"
)

func TestGenerateAndParse_Sesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, pkgjwt.PurposeSession, testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	require.NotEmpty(t, tok.ID)

	claims, err := pkgjwt.Parse(testSecret, tok.Value, pkgjwt.PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	assert.Equal(t, tok.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.Remaining(time.Now()).Seconds(), 5)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, pkgjwt.PurposeSession, testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok.Value, pkgjwt.PurposeSession)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, pkgjwt.PurposeSession, testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok.Value, pkgjwt.PurposeSession)
	assert.Error(t, err)
}

func TestParse_TokenDeResetNoSirveComoSesion(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, pkgjwt.PurposeReset, testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok.Value, pkgjwt.PurposeSession)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongPurpose)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, pkgjwt.PurposeSession, testIssuer, time.Hour)
	assert.Error(t, err)
}
