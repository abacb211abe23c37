package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Both markers are best-effort accelerants, not sources of
// truth: a miss only costs a duplicate SMS send or a slightly later
// duplicate-registration rejection.
const (
	SMSCooldownTTL = 60 * time.Second
	UserExistsTTL  = 5 * time.Minute
)

// RedisClient handles Redis operations.
type RedisClient struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisClient creates a new Redis client instance. Addr may be a plain
// host:port or a full redis:// URL.
func NewRedisClient(addr string, db int) (*RedisClient, error) {
	var client *redis.Client
	if opt, err := redis.ParseURL(addr); err == nil {
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		Client: client,
		Ctx:    context.Background(),
	}, nil
}

// MarkSMSCooldown sets the 60-second rate marker after a code was issued
// for the phone.
func (rc *RedisClient) MarkSMSCooldown(phone string) {
	key := FormatSMSCooldownKey(phone)
	if err := rc.Client.Set(rc.Ctx, key, 1, SMSCooldownTTL).Err(); err != nil {
		// Best-effort: the authoritative store still enforces invariants.
		log.Printf("redis: failed to set SMS cooldown for %s: %v", phone, err)
	}
}

// SMSCooldownActive reports whether a code was issued for the phone within
// the cooldown window. Errors degrade to "not limited".
func (rc *RedisClient) SMSCooldownActive(phone string) bool {
	key := FormatSMSCooldownKey(phone)
	n, err := rc.Client.Exists(rc.Ctx, key).Result()
	if err != nil {
		log.Printf("redis: SMS cooldown lookup failed for %s: %v", phone, err)
		return false
	}
	return n > 0
}

// MarkUserExists caches a positive existence check for the phone.
func (rc *RedisClient) MarkUserExists(phone string) {
	key := FormatUserExistsKey(phone)
	if err := rc.Client.Set(rc.Ctx, key, 1, UserExistsTTL).Err(); err != nil {
		log.Printf("redis: failed to cache user existence for %s: %v", phone, err)
	}
}

// UserExists reports a cached positive existence check. Errors and misses
// both fall through to the authoritative store.
func (rc *RedisClient) UserExists(phone string) bool {
	key := FormatUserExistsKey(phone)
	n, err := rc.Client.Exists(rc.Ctx, key).Result()
	if err != nil {
		log.Printf("redis: user existence lookup failed for %s: %v", phone, err)
		return false
	}
	return n > 0
}

// CleanupKeys removes the specified keys from Redis. Used by tests.
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
			return err
		}
	}
	return nil
}
