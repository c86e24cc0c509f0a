package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubject() Subject {
	return Subject{
		ID:          uuid.New(),
		Email:       "a@x.com",
		Role:        "user",
		IsStaff:     true,
		IsSuperuser: false,
	}
}

func TestIssuePair_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret", time.Hour, 24*time.Hour)
	sub := testSubject()

	pair, err := issuer.IssuePair(sub)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := issuer.Validate(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, sub.ID.String(), claims.UserID)
	assert.Equal(t, sub.Email, claims.Email)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsSuperuser)

	_, err = issuer.Validate(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
}

func TestValidate_WrongTokenType(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k", time.Hour, time.Hour)
	pair, err := issuer.IssuePair(testSubject())
	require.NoError(t, err)

	_, err = issuer.Validate(pair.Access, TokenTypeRefresh)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = issuer.RefreshAccess(pair.Access)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, err := issuer.IssuePair(testSubject())
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Validate(pair.Access, TokenTypeAccess)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = issuer.RefreshAccess(pair.Refresh)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidate_WrongSecretAndMalformed(t *testing.T) {
	t.Parallel()

	pair, err := NewTokenIssuer("right", time.Hour, time.Hour).IssuePair(testSubject())
	require.NoError(t, err)

	other := NewTokenIssuer("wrong", time.Hour, time.Hour)
	_, err = other.Validate(pair.Access, TokenTypeAccess)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = other.Validate("not.a.jwt", TokenTypeAccess)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestRefreshAccess_CarriesClaims(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("k", time.Hour, time.Hour)
	sub := testSubject()
	pair, err := issuer.IssuePair(sub)
	require.NoError(t, err)

	access, err := issuer.RefreshAccess(pair.Refresh)
	require.NoError(t, err)

	claims, err := issuer.Validate(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, sub.ID.String(), claims.UserID)
	assert.Equal(t, sub.IsStaff, claims.IsStaff)
}
