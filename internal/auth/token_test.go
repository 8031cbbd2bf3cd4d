package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medoka/internal/models"
)

func TestIssueParseRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")
	m := &models.Manager{
		ID:        7,
		Email:     "a@b.com",
		FirstName: "Amel",
		LastName:  "Bou",
	}

	raw, err := tokens.Issue(m)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ManagerID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "Amel", claims.FirstName)
	assert.Equal(t, "Bou", claims.LastName)
	// exp примерно через 7 суток
	assert.WithinDuration(t, time.Now().Add(SessionTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-one").Issue(&models.Manager{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = NewTokens("secret-two").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tokens := NewTokens("test-secret")
	for _, raw := range []string{"", "not.a.jwt", "aaa.bbb.ccc"} {
		_, err := tokens.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := &Tokens{secret: []byte("test-secret"), ttl: -time.Minute}
	raw, err := tokens.Issue(&models.Manager{ID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	_, err = NewTokens("test-secret").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
