package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv/memory"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/demo"
	kvmock "github.com/riskibarqy/whalecast/internal/mocks/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

func TestProfileRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository(memory.NewStore(), logging.NewNop())

	for _, p := range demo.Profiles() {
		require.NoError(t, repo.Upsert(ctx, p))
	}

	for _, want := range demo.Profiles() {
		got, ok, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, demo.Profiles(), items)
}

func TestProfileRepository_UpsertIsLastWriteWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository(memory.NewStore(), logging.NewNop())

	p := demo.Profile(205)
	require.NoError(t, repo.Upsert(ctx, p))
	p.WhaleScore = 90
	require.NoError(t, repo.Upsert(ctx, p))

	got, ok, err := repo.GetByID(ctx, 205)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 90, got.WhaleScore)
}

func TestProfileRepository_StoredFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	repo := NewProfileRepository(store, logging.NewNop())

	require.NoError(t, repo.Upsert(ctx, demo.Profile(205)))

	raw, ok, err := store.Get(ctx, "user:205")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{
		"fid": 205,
		"username": "fin_alpha",
		"displayName": "Fin",
		"wallet": "0x5555eeee6666ffff7777aaaabbbbcccc11112222",
		"verified": true,
		"whale_score": 70,
		"followers": 310,
		"winrate_30d": 0.63,
		"pnl_30d": 28.6
	}`, string(raw))
}

func TestProfileRepository_AbsenceIsNotAnError(t *testing.T) {
	t.Parallel()

	repo := NewProfileRepository(memory.NewStore(), logging.NewNop())

	_, ok, err := repo.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileRepository_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository(memory.NewStore(), logging.NewNop())
	require.NoError(t, repo.Upsert(ctx, demo.Profile(203)))

	require.NoError(t, repo.Delete(ctx, 203))
	require.NoError(t, repo.Delete(ctx, 203))
	require.NoError(t, repo.Delete(ctx, 404))

	_, ok, err := repo.GetByID(ctx, 203)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileRepository_EmptyListIsEmptySlice(t *testing.T) {
	t.Parallel()

	store := memory.NewStoreWith(map[string][]byte{
		"201": []byte(`{"url":"https://example.com","token":"t"}`),
	})
	repo := NewProfileRepository(store, logging.NewNop())

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProfileRepository_ListSkipsMalformedAndSorts(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	store := memory.NewStoreWith(map[string][]byte{
		"user:207": []byte(`{"fid":207,"username":"crypto_whale"}`),
		"user:202": []byte(`{"fid":202,"username":"neuw_memes"}`),
		"user:bad": []byte(`not-json`),
		"user:0":   []byte(`{"username":"no_fid"}`),
	})
	repo := NewProfileRepository(store, logging.FromZap(zap.New(core)))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(202), items[0].ID)
	assert.Equal(t, int64(207), items[1].ID)
	assert.Equal(t, 2, logs.FilterMessage("skip malformed profile record").Len())
}

func TestProfileRepository_GetMalformed(t *testing.T) {
	t.Parallel()

	store := memory.NewStoreWith(map[string][]byte{"user:201": []byte(`{"fid":"oops"`)})
	repo := NewProfileRepository(store, logging.NewNop())

	_, _, err := repo.GetByID(context.Background(), 201)
	assert.ErrorIs(t, err, profile.ErrMalformedRecord)
}

func TestProfileRepository_ListDropsKeysDeletedBeforeMGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvmock.NewStore(t)
	store.On("Keys", mock.Anything, "user:").Return([]string{"user:201", "user:202"}, nil).Once()
	store.On("MGet", mock.Anything, []string{"user:201", "user:202"}).
		Return([][]byte{nil, []byte(`{"fid":202,"username":"neuw_memes"}`)}, nil).
		Once()

	items, err := NewProfileRepository(store, logging.NewNop()).List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "neuw_memes", items[0].Handle)
}

func TestProfileRepository_StoreFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cause := errors.New("connection refused")
	transportErr := errors.Join(kv.ErrUnavailable, cause)

	t.Run("get", func(t *testing.T) {
		store := kvmock.NewStore(t)
		store.On("Get", mock.Anything, "user:201").Return(nil, false, transportErr).Once()

		_, ok, err := NewProfileRepository(store, logging.NewNop()).GetByID(ctx, 201)
		assert.False(t, ok)
		assert.ErrorIs(t, err, profile.ErrStoreUnavailable)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("list keys", func(t *testing.T) {
		store := kvmock.NewStore(t)
		store.On("Keys", mock.Anything, "user:").Return(nil, transportErr).Once()

		items, err := NewProfileRepository(store, logging.NewNop()).List(ctx)
		assert.Nil(t, items)
		assert.ErrorIs(t, err, profile.ErrStoreUnavailable)
	})

	t.Run("list mget", func(t *testing.T) {
		store := kvmock.NewStore(t)
		store.On("Keys", mock.Anything, "user:").Return([]string{"user:201"}, nil).Once()
		store.On("MGet", mock.Anything, []string{"user:201"}).Return(nil, transportErr).Once()

		_, err := NewProfileRepository(store, logging.NewNop()).List(ctx)
		assert.ErrorIs(t, err, profile.ErrStoreUnavailable)
	})

	t.Run("upsert", func(t *testing.T) {
		store := kvmock.NewStore(t)
		store.On("Set", mock.Anything, "user:201", mock.Anything).Return(transportErr).Once()

		err := NewProfileRepository(store, logging.NewNop()).Upsert(ctx, demo.Profile(201))
		assert.ErrorIs(t, err, profile.ErrStoreUnavailable)
	})

	t.Run("delete", func(t *testing.T) {
		store := kvmock.NewStore(t)
		store.On("Delete", mock.Anything, "user:201").Return(transportErr).Once()

		err := NewProfileRepository(store, logging.NewNop()).Delete(ctx, 201)
		assert.ErrorIs(t, err, profile.ErrStoreUnavailable)
	})
}
