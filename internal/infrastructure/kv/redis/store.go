package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
)

const scanCount = 500

type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Store is a kv.Store backed by a redis server.
type Store struct {
	client *goredis.Client
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return NewStoreWithClient(goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}))
}

func NewStoreWithClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable("get", err)
	}
	return b, true, nil
}

func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("mget", err)
	}

	out := make([][]byte, len(keys))
	for i, v := range values {
		switch item := v.(type) {
		case nil:
		case string:
			out[i] = []byte(item)
		case []byte:
			out[i] = item
		default:
			return nil, fmt.Errorf("redis mget: unexpected value type %T for key %s", v, keys[i])
		}
	}
	return out, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return unavailable("set", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return unavailable("del", err)
	}
	return nil
}

// Keys walks the keyspace with SCAN so large databases do not block the server.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	out := make([]string, 0)
	seen := make(map[string]struct{})

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return nil, unavailable("scan", err)
		}
		for _, key := range keys {
			// SCAN may return a key more than once.
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func unavailable(op string, err error) error {
	return fmt.Errorf("redis %s: %w: %w", op, kv.ErrUnavailable, err)
}

func escapeGlob(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
