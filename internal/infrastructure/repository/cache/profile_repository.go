package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	basecache "github.com/riskibarqy/whalecast/internal/platform/cache"
)

const (
	profileListKey     = "profile:list"
	profileByIDKeyBase = "profile:id:"
)

// ProfileRepository caches reads of next. Writes invalidate the list and the written id.
type ProfileRepository struct {
	next profile.Repository
	list *basecache.Store[[]profile.Profile]
	byID *basecache.Store[cachedProfileByID]
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

func NewProfileRepository(next profile.Repository, ttl time.Duration) *ProfileRepository {
	return &ProfileRepository{
		next: next,
		list: basecache.NewStore[[]profile.Profile](ttl),
		byID: basecache.NewStore[cachedProfileByID](ttl),
	}
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	items, err := r.list.GetOrLoad(ctx, profileListKey, func(ctx context.Context) ([]profile.Profile, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]profile.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append(make([]profile.Profile, 0, len(items)), items...), nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (profile.Profile, bool, error) {
	cached, err := r.byID.GetOrLoad(ctx, byIDKey(id), func(ctx context.Context) (cachedProfileByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedProfileByID{}, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	err := r.next.Upsert(ctx, p)
	r.invalidate(ctx, p.ID)
	return err
}

func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

// invalidate runs even when the write failed, since the write may have been applied.
func (r *ProfileRepository) invalidate(ctx context.Context, id int64) {
	r.list.Delete(ctx, profileListKey)
	r.byID.Delete(ctx, byIDKey(id))
}

func byIDKey(id int64) string {
	return profileByIDKeyBase + strconv.FormatInt(id, 10)
}
