package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/domain/signal"
)

var (
	hundred        = decimal.NewFromInt(100)
	maxSlippagePct = decimal.NewFromInt(100)
)

const quotePrecision = 8

type FeedFilter struct {
	OnlyVerified bool
	OnlyWhales   bool
	MinNotional  float64
}

type FeedItem struct {
	Profile profile.Profile `json:"profile"`
	Trade   signal.Trade    `json:"trade"`
	Tier    profile.Tier    `json:"tier"`
	Badge   string          `json:"badge,omitempty"`
	Summary string          `json:"summary"`
	TimeAgo string          `json:"timeAgo"`
}

type SignalDetails struct {
	Profile      profile.Profile `json:"profile"`
	Trade        signal.Trade    `json:"trade"`
	RecentTrades []signal.Trade  `json:"recentTrades"`
	Tier         profile.Tier    `json:"tier"`
	Badge        string          `json:"badge,omitempty"`
}

// CopyQuote is a simulated copy of a trade. Nothing is executed.
type CopyQuote struct {
	TradeID         string          `json:"tradeId"`
	TokenIn         string          `json:"tokenIn"`
	TokenOut        string          `json:"tokenOut"`
	Amount          decimal.Decimal `json:"amount"`
	Price           decimal.Decimal `json:"price"`
	EstimatedOutput decimal.Decimal `json:"estimatedOutput"`
	MinimumReceived decimal.Decimal `json:"minimumReceived"`
	SlippagePct     decimal.Decimal `json:"slippagePct"`
}

type AlphaCard struct {
	ProfileID   int64        `json:"profileId"`
	Handle      string       `json:"username"`
	DisplayName string       `json:"displayName"`
	Tier        profile.Tier `json:"tier"`
	Badge       string       `json:"badge,omitempty"`
	Summary     string       `json:"summary"`
	PnL         float64      `json:"pnl"`
	TimeAgo     string       `json:"timeAgo"`
	Text        string       `json:"text"`
}

type SignalService struct {
	profiles profile.Repository
	now      func() time.Time
}

func NewSignalService(profiles profile.Repository) *SignalService {
	return &SignalService{
		profiles: profiles,
		now:      time.Now,
	}
}

func (s *SignalService) Feed(ctx context.Context, filter FeedFilter) ([]FeedItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignalService.Feed")
	defer span.End()

	if !isFinite(filter.MinNotional) || filter.MinNotional < 0 {
		return nil, fmt.Errorf("%w: min notional must be a finite number >= 0", ErrInvalidInput)
	}

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, wrapStoreErr("list feed profiles", err)
	}

	now := s.now()
	trades := signal.DemoFeedTrades(now)
	out := make([]FeedItem, 0, len(profiles))
	for i, p := range profiles {
		trade := trades[i%len(trades)]
		if filter.OnlyVerified && !p.Verified {
			continue
		}
		if filter.OnlyWhales && !p.IsWhale() {
			continue
		}
		if trade.AmountIn < filter.MinNotional {
			continue
		}

		tier := p.Tier()
		out = append(out, FeedItem{
			Profile: p,
			Trade:   trade,
			Tier:    tier,
			Badge:   tier.Badge(),
			Summary: trade.Summary(),
			TimeAgo: signal.TimeAgo(now, trade.ExecutedAt),
		})
	}

	return out, nil
}

func (s *SignalService) Details(ctx context.Context, profileID int64, tradeID string) (SignalDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignalService.Details")
	defer span.End()

	tradeID = strings.TrimSpace(tradeID)
	if tradeID == "" {
		return SignalDetails{}, fmt.Errorf("%w: trade id is required", ErrInvalidInput)
	}

	p, err := s.getProfile(ctx, profileID)
	if err != nil {
		return SignalDetails{}, err
	}

	now := s.now()
	tier := p.Tier()
	return SignalDetails{
		Profile:      p,
		Trade:        signal.DemoDetailTrade(now, tradeID),
		RecentTrades: signal.DemoRecentTrades(now),
		Tier:         tier,
		Badge:        tier.Badge(),
	}, nil
}

func (s *SignalService) QuoteCopyTrade(ctx context.Context, tradeID string, amount, slippagePct float64) (CopyQuote, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SignalService.QuoteCopyTrade")
	defer span.End()

	// decimal.NewFromFloat panics on NaN and Inf.
	if !isFinite(amount) || !isFinite(slippagePct) {
		return CopyQuote{}, fmt.Errorf("%w: amount and slippage must be finite numbers", ErrInvalidInput)
	}
	amountDec := decimal.NewFromFloat(amount)
	slippageDec := decimal.NewFromFloat(slippagePct)
	if !amountDec.IsPositive() {
		return CopyQuote{}, fmt.Errorf("%w: amount must be > 0", ErrInvalidInput)
	}
	if slippageDec.IsNegative() || slippageDec.GreaterThan(maxSlippagePct) {
		return CopyQuote{}, fmt.Errorf("%w: slippage must be within [0,100]", ErrInvalidInput)
	}

	trade, ok := signal.DemoFeedTrade(s.now(), strings.TrimSpace(tradeID))
	if !ok {
		return CopyQuote{}, fmt.Errorf("%w: trade=%s", ErrNotFound, tradeID)
	}

	price := decimal.Zero
	amountIn := decimal.NewFromFloat(trade.AmountIn)
	if !amountIn.IsZero() {
		price = decimal.NewFromFloat(trade.AmountOut).Div(amountIn)
	}
	estimated := amountDec.Mul(price)
	minimum := estimated.Mul(decimal.NewFromInt(1).Sub(slippageDec.Div(hundred)))

	return CopyQuote{
		TradeID:         trade.ID,
		TokenIn:         trade.TokenIn,
		TokenOut:        trade.TokenOut,
		Amount:          amountDec,
		Price:           price.Round(quotePrecision),
		EstimatedOutput: estimated.Round(quotePrecision),
		MinimumReceived: minimum.Round(quotePrecision),
		SlippagePct:     slippageDec,
	}, nil
}

func (s *SignalService) AlphaCard(ctx context.Context, profileID int64, tradeID string) (AlphaCard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SignalService.AlphaCard")
	defer span.End()

	p, err := s.getProfile(ctx, profileID)
	if err != nil {
		return AlphaCard{}, err
	}

	now := s.now()
	trade, ok := signal.DemoFeedTrade(now, strings.TrimSpace(tradeID))
	if !ok {
		return AlphaCard{}, fmt.Errorf("%w: trade=%s", ErrNotFound, tradeID)
	}

	tier := p.Tier()
	card := AlphaCard{
		ProfileID:   p.ID,
		Handle:      p.Handle,
		DisplayName: p.DisplayName,
		Tier:        tier,
		Badge:       tier.Badge(),
		Summary:     trade.Summary(),
		PnL:         trade.PnL,
		TimeAgo:     signal.TimeAgo(now, trade.ExecutedAt),
	}
	card.Text = alphaCardText(card)

	return card, nil
}

func (s *SignalService) getProfile(ctx context.Context, id int64) (profile.Profile, error) {
	if id <= 0 {
		return profile.Profile{}, fmt.Errorf("%w: profile id must be positive", ErrInvalidInput)
	}

	p, exists, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return profile.Profile{}, wrapStoreErr("get signal profile", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile=%d", ErrNotFound, id)
	}
	return p, nil
}

func alphaCardText(card AlphaCard) string {
	var b strings.Builder
	if card.Badge != "" {
		b.WriteString(card.Badge)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "@%s (%s)\n", card.Handle, card.Tier)
	b.WriteString(card.Summary)
	fmt.Fprintf(&b, "\nPnL %+.1f%% · %s", card.PnL, card.TimeAgo)
	return b.String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
