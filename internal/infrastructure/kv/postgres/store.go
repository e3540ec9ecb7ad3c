package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	qb "github.com/riskibarqy/whalecast/internal/platform/querybuilder"
)

const tableName = "kv_entries"

const upsertSuffix = "ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at"

type entryTableModel struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store is a kv.Store over a single postgres table. Values are stored as jsonb.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := getQuery(key)
	if err != nil {
		return nil, false, err
	}

	var value string
	if err := s.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, unavailable("get entry", err)
	}
	return []byte(value), true, nil
}

func (s *Store) MGet(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}

	query, args, err := mgetQuery(keys)
	if err != nil {
		return nil, err
	}

	var rows []entryTableModel
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, unavailable("select entries", err)
	}

	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row.Value
	}

	out := make([][]byte, len(keys))
	for i, key := range keys {
		if v, ok := byKey[key]; ok {
			out[i] = []byte(v)
		}
	}
	return out, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.InsertModel(tableName, entryTableModel{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC(),
	}, upsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unavailable("upsert entry", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete entry query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return unavailable("delete entry", err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := keysQuery(prefix)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, unavailable("select keys", err)
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func getQuery(key string) (string, []any, error) {
	query, args, err := qb.Select("value").From(tableName).Where(qb.Eq("key", key)).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build get entry query: %w", err)
	}
	return query, args, nil
}

func mgetQuery(keys []string) (string, []any, error) {
	values := make([]any, 0, len(keys))
	for _, key := range keys {
		values = append(values, key)
	}

	query, args, err := qb.Select("key", "value", "updated_at").From(tableName).Where(qb.In("key", values)).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select entries query: %w", err)
	}
	return query, args, nil
}

func keysQuery(prefix string) (string, []any, error) {
	query, args, err := qb.Select("key").From(tableName).Where(qb.HasPrefix("key", prefix)).OrderBy("key").ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select keys query: %w", err)
	}
	return query, args, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("postgres %s: %w: %w", op, kv.ErrUnavailable, err)
}
