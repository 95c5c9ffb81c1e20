package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares entries between several bot processes. Entries are
// stored as json under prefix+key and redis expires them together with
// their TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (rs *RedisStore) redisKey(key string) string {
	return rs.prefix + key
}

func (rs *RedisStore) Load(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := rs.client.Get(ctx, rs.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	entry := Entry{}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("couldn't unmarshal redis entry %s: %w", key, err)
	}
	return entry, true, nil
}

func (rs *RedisStore) Save(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("couldn't marshal redis entry %s: %w", entry.Key, err)
	}
	if err := rs.client.Set(ctx, rs.redisKey(entry.Key), raw, redisExpiration(entry.TTL)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", entry.Key, err)
	}
	return nil
}

// redisExpiration maps an entry TTL to a redis expiration. 0 tells redis to
// keep the key forever.
func redisExpiration(ttl time.Duration) time.Duration {
	if ttl == Forever || ttl <= 0 {
		return 0
	}
	return ttl
}
