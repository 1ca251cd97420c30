package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hvac-backend/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Key prefixes of cached list responses. Each write to an entity clears its prefix.
const (
	ServicesPrefix  = "services:"
	PMOCPrefix      = "pmoc:"
	EquipmentPrefix = "equipment:"
	ClientsPrefix   = "clients:"
)

const ListTTL = 2 * time.Minute

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every helper
// below degrades to a no-op, so the API keeps working straight from Postgres.
func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	client = c
	return nil
}

// Close releases the connection pool.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// GetJSON decodes a cached value into dest and reports whether it was found.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	data, ok := GetCached(ctx, key)
	if ok && json.Unmarshal(data, dest) == nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return true
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()
	return false
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	SetCached(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

// InvalidatePrefix clears every key under one of the prefixes above.
func InvalidatePrefix(ctx context.Context, prefix string) {
	InvalidatePattern(ctx, prefix+"*")
}

// ListKey builds a deterministic key from a prefix and filter values.
// Zero ints and empty strings are written as "-".
func ListKey(prefix string, parts ...any) string {
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			if v == "" {
				v = "-"
			}
			fields = append(fields, v)
		case int:
			if v == 0 {
				fields = append(fields, "-")
			} else {
				fields = append(fields, strconv.Itoa(v))
			}
		default:
			fields = append(fields, fmt.Sprint(v))
		}
	}
	return prefix + "list:" + strings.Join(fields, ":")
}

// Ping checks the installed client. It fails when Redis is not configured.
func Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("redis not configured")
	}
	return client.Ping(ctx).Err()
}
