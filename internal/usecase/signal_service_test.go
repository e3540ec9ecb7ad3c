package usecase

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	profilemock "github.com/riskibarqy/whalecast/internal/mocks/domain/profile"
	"github.com/riskibarqy/whalecast/internal/infrastructure/repository/demo"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSignalService(repo profile.Repository) *SignalService {
	service := NewSignalService(repo)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestSignalService_FeedZipsProfilesWithTrades(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	repo.On("List", mock.Anything).Return(demo.Profiles(), nil).Once()

	items, err := newTestSignalService(repo).Feed(context.Background(), FeedFilter{})
	require.NoError(t, err)
	require.Len(t, items, 8)

	// Eight profiles over six trades wrap around.
	require.Equal(t, "1", items[0].Trade.ID)
	require.Equal(t, "6", items[5].Trade.ID)
	require.Equal(t, "1", items[6].Trade.ID)
	require.Equal(t, "2", items[7].Trade.ID)
	require.Equal(t, "Swapped 1.0K USDC → 50.0M PEPE", items[0].Summary)
	require.Equal(t, "2m ago", items[0].TimeAgo)
	require.Equal(t, items[0].Profile.Tier(), items[0].Tier)
}

func TestSignalService_FeedFilters(t *testing.T) {
	t.Parallel()

	profiles := []profile.Profile{
		{ID: 1, Handle: "a", Verified: true, WhaleScore: 80},
		{ID: 2, Handle: "b", Verified: false, WhaleScore: 90},
		{ID: 3, Handle: "c", Verified: true, WhaleScore: 20},
	}

	tests := []struct {
		name   string
		filter FeedFilter
		want   []int64
	}{
		{name: "verified only", filter: FeedFilter{OnlyVerified: true}, want: []int64{1, 3}},
		{name: "whales only", filter: FeedFilter{OnlyWhales: true}, want: []int64{1, 2}},
		// trade 1 is 1000 USDC, trade 2 is 2.5 ETH, trade 3 is 500 USDT.
		{name: "min notional", filter: FeedFilter{MinNotional: 400}, want: []int64{1, 3}},
		{name: "combined", filter: FeedFilter{OnlyVerified: true, OnlyWhales: true, MinNotional: 400}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := profilemock.NewRepository(t)
			repo.On("List", mock.Anything).Return(profiles, nil).Once()

			items, err := newTestSignalService(repo).Feed(context.Background(), tt.filter)
			require.NoError(t, err)

			got := make([]int64, 0, len(items))
			for _, item := range items {
				got = append(got, item.Profile.ID)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSignalService_FeedRejectsInvalidNotional(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := newTestSignalService(profilemock.NewRepository(t)).Feed(context.Background(), FeedFilter{MinNotional: v})
		require.ErrorIs(t, err, ErrInvalidInput, "min notional %v", v)
	}
}

func TestSignalService_Details(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(205)).Return(demo.Profile(205), true, nil).Once()

	got, err := newTestSignalService(repo).Details(context.Background(), 205, "42")
	require.NoError(t, err)
	require.Equal(t, "fin_alpha", got.Profile.Handle)
	require.Equal(t, "42", got.Trade.ID)
	require.NotEmpty(t, got.Trade.TxHash)
	require.Len(t, got.RecentTrades, 3)
	require.Equal(t, profile.TierMegaWhale, got.Tier)
	require.Equal(t, "🐋", got.Badge)

	_, err = newTestSignalService(profilemock.NewRepository(t)).Details(context.Background(), 205, " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignalService_QuoteCopyTrade(t *testing.T) {
	t.Parallel()

	service := newTestSignalService(profilemock.NewRepository(t))

	quote, err := service.QuoteCopyTrade(context.Background(), "1", 100, 0.5)
	require.NoError(t, err)
	require.True(t, quote.Price.Equal(decimal.NewFromInt(50000)), "price=%s", quote.Price)
	require.True(t, quote.EstimatedOutput.Equal(decimal.NewFromInt(5000000)), "estimated=%s", quote.EstimatedOutput)
	require.True(t, quote.MinimumReceived.Equal(decimal.NewFromInt(4975000)), "minimum=%s", quote.MinimumReceived)
	require.Equal(t, "USDC", quote.TokenIn)
	require.Equal(t, "PEPE", quote.TokenOut)

	zero, err := service.QuoteCopyTrade(context.Background(), "2", 1, 0)
	require.NoError(t, err)
	require.True(t, zero.MinimumReceived.Equal(zero.EstimatedOutput))
	require.True(t, zero.EstimatedOutput.Equal(decimal.NewFromInt(6000)))
}

func TestSignalService_QuoteCopyTradeErrors(t *testing.T) {
	t.Parallel()

	service := newTestSignalService(profilemock.NewRepository(t))

	tests := []struct {
		name     string
		tradeID  string
		amount   float64
		slippage float64
		want     error
	}{
		{name: "zero amount", tradeID: "1", amount: 0, slippage: 0.5, want: ErrInvalidInput},
		{name: "negative amount", tradeID: "1", amount: -5, slippage: 0.5, want: ErrInvalidInput},
		{name: "negative slippage", tradeID: "1", amount: 10, slippage: -0.1, want: ErrInvalidInput},
		{name: "slippage over hundred", tradeID: "1", amount: 10, slippage: 150, want: ErrInvalidInput},
		{name: "NaN amount", tradeID: "1", amount: math.NaN(), slippage: 0.5, want: ErrInvalidInput},
		{name: "infinite amount", tradeID: "1", amount: math.Inf(1), slippage: 0.5, want: ErrInvalidInput},
		{name: "NaN slippage", tradeID: "1", amount: 10, slippage: math.NaN(), want: ErrInvalidInput},
		{name: "unknown trade", tradeID: "99", amount: 10, slippage: 0.5, want: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.QuoteCopyTrade(context.Background(), tt.tradeID, tt.amount, tt.slippage)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignalService_AlphaCard(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(205)).Return(demo.Profile(205), true, nil).Once()

	card, err := newTestSignalService(repo).AlphaCard(context.Background(), 205, "1")
	require.NoError(t, err)
	require.Equal(t, "Swapped 1.0K USDC → 50.0M PEPE", card.Summary)
	require.Equal(t, "2m ago", card.TimeAgo)
	require.Equal(t, "🐋", card.Badge)
	require.InDelta(t, 35.4, card.PnL, 1e-9)
	require.True(t, strings.HasPrefix(card.Text, "🐋 @fin_alpha (Mega Whale)\n"), "text=%q", card.Text)
	require.Contains(t, card.Text, "PnL +35.4% · 2m ago")
}

func TestSignalService_AlphaCardUnknownTrade(t *testing.T) {
	t.Parallel()

	repo := profilemock.NewRepository(t)
	repo.On("GetByID", mock.Anything, int64(205)).Return(demo.Profile(205), true, nil).Once()

	_, err := newTestSignalService(repo).AlphaCard(context.Background(), 205, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}
