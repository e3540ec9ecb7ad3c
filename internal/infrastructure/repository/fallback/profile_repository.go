package fallback

import (
	"context"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

// ProfileRepository reads from primary and substitutes fallback data when
// primary fails or has nothing to return. Writes only go to primary.
// A read error is returned as is only when the caller's own ctx has ended; a
// backend timeout on a live ctx still degrades to fallback data.
type ProfileRepository struct {
	primary  profile.Repository
	fallback profile.Repository
	logger   *logging.Logger
}

func NewProfileRepository(primary, fallback profile.Repository, logger *logging.Logger) *ProfileRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger.Named("profile_fallback"),
	}
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	items, err := r.primary.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		r.logger.WarnContext(ctx, "profile store failed, serving fallback profiles", "error", err)
		return r.fallback.List(ctx)
	}
	if len(items) == 0 {
		r.logger.DebugContext(ctx, "profile store is empty, serving fallback profiles")
		return r.fallback.List(ctx)
	}

	return items, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (profile.Profile, bool, error) {
	item, ok, err := r.primary.GetByID(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return profile.Profile{}, false, err
		}
		r.logger.WarnContext(ctx, "profile store failed, serving fallback profile", "profile_id", id, "error", err)
		return r.fallback.GetByID(ctx, id)
	}
	if !ok {
		return r.fallback.GetByID(ctx, id)
	}

	return item, true, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	return r.primary.Upsert(ctx, p)
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	return r.primary.Delete(ctx, id)
}
