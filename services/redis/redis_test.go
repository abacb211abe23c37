package redis

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *RedisClient {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		t.Skip("REDIS_URL not set, skipping Redis tests")
	}
	rc, err := InitRedis(addr, 0)
	require.NoError(t, err)
	t.Cleanup(func() { CloseRedis(rc) })
	return rc
}

func TestSMSCooldown(t *testing.T) {
	rc := testClient(t)
	phone := "09120000001"
	require.NoError(t, rc.CleanupKeys([]string{FormatSMSCooldownKey(phone)}))

	assert.False(t, rc.SMSCooldownActive(phone))
	rc.MarkSMSCooldown(phone)
	assert.True(t, rc.SMSCooldownActive(phone))

	require.NoError(t, rc.CleanupKeys([]string{FormatSMSCooldownKey(phone)}))
	assert.False(t, rc.SMSCooldownActive(phone))
}

func TestUserExistsCache(t *testing.T) {
	rc := testClient(t)
	phone := "09120000002"
	require.NoError(t, rc.CleanupKeys([]string{FormatUserExistsKey(phone)}))

	assert.False(t, rc.UserExists(phone), "cache miss reads as not-exists")
	rc.MarkUserExists(phone)
	assert.True(t, rc.UserExists(phone))

	require.NoError(t, rc.CleanupKeys([]string{FormatUserExistsKey(phone)}))
}
