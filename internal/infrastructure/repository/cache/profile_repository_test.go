package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	profilemock "github.com/riskibarqy/whalecast/internal/mocks/domain/profile"
)

func TestProfileRepository_CachesReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := profilemock.NewRepository(t)
	next.On("List", mock.Anything).Return([]profile.Profile{{ID: 201, Handle: "beam_eth"}}, nil).Once()
	next.On("GetByID", mock.Anything, int64(404)).Return(profile.Profile{}, false, nil).Once()

	repo := NewProfileRepository(next, time.Minute)

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		_, ok, err := repo.GetByID(ctx, 404)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestProfileRepository_ListReturnsCopies(t *testing.T) {
	t.Parallel()

	next := profilemock.NewRepository(t)
	next.On("List", mock.Anything).Return([]profile.Profile{{ID: 201, Handle: "beam_eth"}}, nil).Once()
	repo := NewProfileRepository(next, time.Minute)

	first, err := repo.List(context.Background())
	require.NoError(t, err)
	first[0].Handle = "mutated"

	second, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "beam_eth", second[0].Handle)
}

func TestProfileRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	next := profilemock.NewRepository(t)
	next.On("List", mock.Anything).Return(nil, boom).Once()
	next.On("List", mock.Anything).Return([]profile.Profile{{ID: 202}}, nil).Once()

	repo := NewProfileRepository(next, time.Minute)
	_, err := repo.List(ctx)
	require.ErrorIs(t, err, boom)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestProfileRepository_WritesInvalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := profile.Profile{ID: 205, Handle: "fin_alpha", WhaleScore: 70}
	updated := p
	updated.WhaleScore = 75

	next := profilemock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(205)).Return(p, true, nil).Once()
	next.On("List", mock.Anything).Return([]profile.Profile{p}, nil).Once()
	next.On("Upsert", mock.Anything, updated).Return(nil).Once()
	next.On("GetByID", mock.Anything, int64(205)).Return(updated, true, nil).Once()
	next.On("List", mock.Anything).Return([]profile.Profile{updated}, nil).Once()
	next.On("Delete", mock.Anything, int64(205)).Return(nil).Once()
	next.On("GetByID", mock.Anything, int64(205)).Return(profile.Profile{}, false, nil).Once()

	repo := NewProfileRepository(next, time.Minute)

	got, _, err := repo.GetByID(ctx, 205)
	require.NoError(t, err)
	assert.Equal(t, 70, got.WhaleScore)
	_, err = repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, updated))
	got, _, err = repo.GetByID(ctx, 205)
	require.NoError(t, err)
	assert.Equal(t, 75, got.WhaleScore)
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75, items[0].WhaleScore)

	require.NoError(t, repo.Delete(ctx, 205))
	_, ok, err := repo.GetByID(ctx, 205)
	require.NoError(t, err)
	assert.False(t, ok)
}
