package auth_test

import (
	"testing"
	"time"

	"waste-retrieval-api-server/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "waste-app", "uid-1", "worker@example.com", time.Hour)
	require.Nil(t, err)

	claims, err := auth.ParseToken(secret, "waste-app", token)
	require.Nil(t, err)
	assert.Equal(t, "uid-1", claims.UserID())
	assert.Equal(t, "worker@example.com", claims.Email)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "", "uid-1", "", time.Hour)
	require.Nil(t, err)

	_, err = auth.ParseToken([]byte("other"), "", token)
	assert.NotNil(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "", "uid-1", "", -time.Minute)
	require.Nil(t, err)

	_, err = auth.ParseToken(secret, "", token)
	assert.NotNil(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "someone-else", "uid-1", "", time.Hour)
	require.Nil(t, err)

	_, err = auth.ParseToken(secret, "waste-app", token)
	assert.NotNil(t, err)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	token, err := auth.GenerateJWT(secret, "", "", "", time.Hour)
	require.Nil(t, err)

	_, err = auth.ParseToken(secret, "", token)
	assert.Equal(t, auth.ErrMissingSubject, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := auth.ParseToken(secret, "", "not-a-token")
	assert.NotNil(t, err)
}
