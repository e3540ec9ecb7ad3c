package kvstore

import (
	"context"
	"fmt"
	"sort"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
	"github.com/riskibarqy/whalecast/internal/platform/tracing"
)

var repoTracer = tracing.New("whalecast/internal/infrastructure/repository/kvstore", nil)

// ProfileRepository reads and writes profiles under the user:<id> namespace.
type ProfileRepository struct {
	store  kv.Store
	logger *logging.Logger
}

func NewProfileRepository(store kv.Store, logger *logging.Logger) *ProfileRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileRepository{store: store, logger: logger.Named("profile_kvstore")}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (profile.Profile, bool, error) {
	key := profile.Key(id)
	ctx, span := repoTracer.Start(ctx, "kvstore.ProfileRepository.GetByID", trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return profile.Profile{}, false, fmt.Errorf("get %s: %w: %w", key, profile.ErrStoreUnavailable, err)
	}
	if !ok {
		return profile.Profile{}, false, nil
	}

	p, err := decodeProfile(raw)
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return p, true, nil
}

// List returns every stored profile ordered by id. Malformed records are skipped.
func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	ctx, span := repoTracer.Start(ctx, "kvstore.ProfileRepository.List")
	defer span.End()

	keys, err := r.store.Keys(ctx, profile.KeyPrefix)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list profile keys: %w: %w", profile.ErrStoreUnavailable, err)
	}
	span.SetAttributes(attribute.Int("kv.key_count", len(keys)))
	if len(keys) == 0 {
		return []profile.Profile{}, nil
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("load profiles: %w: %w", profile.ErrStoreUnavailable, err)
	}

	out := make([]profile.Profile, 0, len(values))
	for i, raw := range values {
		// The key may have been deleted between Keys and MGet.
		if raw == nil {
			continue
		}
		p, err := decodeProfile(raw)
		if err != nil {
			r.logger.WarnContext(ctx, "skip malformed profile record", "key", keys[i], "error", err)
			span.AddEvent("malformed_record", trace.WithAttributes(attribute.String("kv.key", keys[i])))
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	raw, err := sonic.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %d: %w", p.ID, err)
	}

	key := profile.Key(p.ID)
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w: %w", key, profile.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	key := profile.Key(id)
	if err := r.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w: %w", key, profile.ErrStoreUnavailable, err)
	}
	return nil
}

func decodeProfile(raw []byte) (profile.Profile, error) {
	var p profile.Profile
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %w", profile.ErrMalformedRecord, err)
	}
	if p.ID <= 0 {
		return profile.Profile{}, fmt.Errorf("%w: missing fid", profile.ErrMalformedRecord)
	}
	return p, nil
}
