package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return &Service{secret: []byte("test-secret"), issuer: "courtside-test"}
}

func TestIssueAndParsePair(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	pair, err := svc.IssuePair(userID, "09123456789", false)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := svc.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "09123456789", claims.Phone)
	assert.Equal(t, "access", claims.Kind)

	refreshClaims, err := svc.ParseRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Kind)
}

func TestParseRejectsWrongKind(t *testing.T) {
	svc := testService()
	pair, err := svc.IssuePair(uuid.New(), "09123456789", true)
	require.NoError(t, err)

	_, err = svc.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ParseRefresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	svc := testService()
	other := &Service{secret: []byte("other-secret"), issuer: "courtside-test"}

	pair, err := other.IssuePair(uuid.New(), "09123456789", false)
	require.NoError(t, err)

	_, err = svc.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := testService()
	_, err := svc.ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
