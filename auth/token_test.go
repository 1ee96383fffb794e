package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	identity := &Identity{ID: "user-1", Name: "Jana", Email: "jana@example.com"}

	token, err := IssueToken("secret", identity, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Jana", claims.Name)
}

func TestParseToken_WrongKey(t *testing.T) {
	identity := &Identity{ID: "user-1", Name: "Jana"}
	token, err := IssueToken("right-secret", identity, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("other-secret", token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Tampered(t *testing.T) {
	identity := &Identity{ID: "user-1", Name: "Jana"}
	token, err := IssueToken("secret", identity, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Flip the payload; the signature no longer matches.
	tampered := parts[0] + ".eyJ1c2VyX2lkIjoiYWRtaW4ifQ." + parts[2]

	claims, err := ParseToken("secret", tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Expired(t *testing.T) {
	identity := &Identity{ID: "user-1", Name: "Jana"}
	token, err := IssueToken("secret", identity, -time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Garbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		claims, err := ParseToken("secret", raw)
		assert.Error(t, err, "raw=%q", raw)
		assert.Nil(t, claims)
	}
}
