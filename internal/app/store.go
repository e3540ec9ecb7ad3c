package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv/memory"
	kvpostgres "github.com/riskibarqy/whalecast/internal/infrastructure/kv/postgres"
	kvredis "github.com/riskibarqy/whalecast/internal/infrastructure/kv/redis"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv/upstash"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
	"github.com/riskibarqy/whalecast/internal/platform/resilience"
)

// NewStore builds the key-value backend selected by STORE_BACKEND.
func NewStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (kv.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil
	case config.BackendRedis:
		return kvredis.NewStore(kvredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Timeout:  cfg.StoreTimeout,
		}), nil
	case config.BackendUpstash:
		store, err := upstash.NewStore(upstash.Config{
			BaseURL: cfg.UpstashURL,
			Token:   cfg.UpstashToken,
			Timeout: cfg.StoreTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.UpstashCircuitEnabled,
				FailureThreshold: cfg.UpstashCircuitFailureCount,
				OpenTimeout:      cfg.UpstashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.UpstashCircuitHalfOpenMaxReq,
			},
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return kvpostgres.NewStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := PostgresURL(cfg)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// traceQueryLimit caps the db.statement attribute.
const traceQueryLimit = 512

// traceQuery folds a statement onto one line and truncates it on a rune boundary.
func traceQuery(query string) string {
	var b strings.Builder
	for i, field := range strings.Fields(query) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(field)
		if b.Len() > traceQueryLimit {
			break
		}
	}
	out := b.String()
	if len(out) <= traceQueryLimit {
		return out
	}
	cut := traceQueryLimit
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut] + "..."
}
