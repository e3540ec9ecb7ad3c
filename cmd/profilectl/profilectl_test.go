package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/whalecast/internal/app"
	"github.com/riskibarqy/whalecast/internal/config"
	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv"
	"github.com/riskibarqy/whalecast/internal/infrastructure/kv/memory"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/demo"
	profilemock "github.com/riskibarqy/whalecast/internal/mocks/domain/profile"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

func memoryFactory(store kv.Store) appFactory {
	return func(_ context.Context, logger *logging.Logger) (*app.App, error) {
		cfg := config.Config{StoreBackend: config.BackendMemory}
		return app.NewWithStore(cfg, store, logger), nil
	}
}

func run(t *testing.T, store kv.Store, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(memoryFactory(store))
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProfilectl_SeedListVerify(t *testing.T) {
	store := memory.NewStore()

	out, err := run(t, store, "seed", "--workers", "3")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 8 profiles (0 skipped)")

	out, err = run(t, store, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 0 profiles (8 skipped)")

	out, err = run(t, store, "list")
	require.NoError(t, err)
	require.Contains(t, out, `"username": "beam_eth"`)
	require.Contains(t, out, `"fid": 208`)

	out, err = run(t, store, "verify")
	require.NoError(t, err)
	require.Contains(t, out, "Total profiles found: 8")
	require.Contains(t, out, "✅ user:201 found")
	require.Contains(t, out, "Winrate (30d): 69.0%")
}

func TestProfilectl_PutGetDelete(t *testing.T) {
	store := memory.NewStore()

	_, err := run(t, store, "put", "--id", "42", "--handle", "whale42", "--score", "72", "--winrate", "0.6")
	require.NoError(t, err)

	out, err := run(t, store, "get", "42")
	require.NoError(t, err)
	require.Contains(t, out, `"whale_score": 72`)

	_, err = run(t, store, "put", "--id", "43", "--handle", "bad", "--winrate", "2")
	require.Error(t, err)

	out, err = run(t, store, "delete", "42")
	require.NoError(t, err)
	require.Contains(t, out, "deleted user:42")

	_, err = run(t, store, "get", "42")
	require.Error(t, err)

	// An empty store lists nothing unless fallback is requested.
	out, err = run(t, store, "list")
	require.NoError(t, err)
	require.Equal(t, "[]", strings.TrimSpace(out))

	out, err = run(t, store, "list", "--with-fallback")
	require.NoError(t, err)
	require.Contains(t, out, "beam_eth")
}

func TestProfilectl_NotifyRoundTrip(t *testing.T) {
	store := memory.NewStore()

	_, err := run(t, store, "notify", "set", "205", "--url", "https://frame.example/notify", "--token", "tok")
	require.NoError(t, err)

	out, err := run(t, store, "notify", "get", "205")
	require.NoError(t, err)
	require.Contains(t, out, `"token": "tok"`)

	// The notification key must not collide with the profile namespace.
	_, err = run(t, store, "get", "205")
	require.Error(t, err)

	_, err = run(t, store, "notify", "delete", "205")
	require.NoError(t, err)
	_, err = run(t, store, "notify", "get", "205")
	require.Error(t, err)
}

func TestProfilectl_RejectsBadID(t *testing.T) {
	_, err := run(t, memory.NewStore(), "get", "abc")
	require.Error(t, err)
}

func TestSeedProfiles_CollectsWriteErrors(t *testing.T) {
	repo := profilemock.NewRepository(t)
	items := demo.Profiles()[:2]
	repo.On("Upsert", mock.Anything, items[0]).Return(nil).Once()
	repo.On("Upsert", mock.Anything, items[1]).Return(profile.ErrStoreUnavailable).Once()

	res, err := seedProfiles(context.Background(), repo, items, 2, true, logging.NewNop())
	require.ErrorIs(t, err, profile.ErrStoreUnavailable)
	require.Equal(t, 1, res.Written)
}

func TestVerifyProfiles_ReportsMissing(t *testing.T) {
	repo := profilemock.NewRepository(t)
	items := demo.Profiles()[:2]
	repo.On("List", mock.Anything).Return(items, nil).Once()
	repo.On("GetByID", mock.Anything, items[0].ID).Return(items[0], true, nil).Once()
	repo.On("GetByID", mock.Anything, items[1].ID).Return(profile.Profile{}, false, nil).Once()

	var out bytes.Buffer
	err := verifyProfiles(context.Background(), &out, repo, 2)
	require.Error(t, err)
	require.Contains(t, out.String(), "❌ user:202 not found")

	failing := profilemock.NewRepository(t)
	failing.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()
	require.Error(t, verifyProfiles(context.Background(), &bytes.Buffer{}, failing, 1))
}
