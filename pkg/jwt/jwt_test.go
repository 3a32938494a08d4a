package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/relief-inventory-api/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "relief-inventory-test"
)

func TestGenerateAndParse_DevuelveUsuarioYRol(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "volunteer", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotUser, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "volunteer", gotRole)
}

func TestGenerate_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "", issuer, 60)
	assert.Error(t, err)
}

func TestGenerate_UsuarioVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate(secret, "", "", issuer, 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "", issuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "", issuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestParse_SinUserIDUsaSubject(t *testing.T) {
	claims := gojwt.RegisteredClaims{Subject: userID}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	gotUser, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Empty(t, gotRole)
}

func TestParse_AlgoritmoNoHMAC_RetornaError(t *testing.T) {
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, pkgjwt.Claims{UserID: userID}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}
