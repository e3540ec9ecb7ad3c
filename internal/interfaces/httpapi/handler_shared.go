package httpapi

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/whalecast/internal/domain/profile"
	"github.com/riskibarqy/whalecast/internal/domain/signal"
	"github.com/riskibarqy/whalecast/internal/platform/logging"
	"github.com/riskibarqy/whalecast/internal/usecase"
)

// StorePinger reports whether the backing key-value store is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	profileService *usecase.ProfileService
	signalService  *usecase.SignalService
	store          StorePinger
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	profileService *usecase.ProfileService,
	signalService *usecase.SignalService,
	store StorePinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileService: profileService,
		signalService:  signalService,
		store:          store,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type profileDTO struct {
	ID            int64   `json:"fid"`
	Handle        string  `json:"username"`
	DisplayName   string  `json:"displayName"`
	WalletAddress string  `json:"wallet"`
	Verified      bool    `json:"verified"`
	WhaleScore    int     `json:"whale_score"`
	FollowerCount int     `json:"followers"`
	WinRate30d    float64 `json:"winrate_30d"`
	PnL30d        float64 `json:"pnl_30d"`
	Tier          string  `json:"tier"`
	Badge         string  `json:"badge,omitempty"`
}

type tradeDTO struct {
	ID         string  `json:"id"`
	TokenIn    string  `json:"tokenIn"`
	TokenOut   string  `json:"tokenOut"`
	AmountIn   float64 `json:"amountIn"`
	AmountOut  float64 `json:"amountOut"`
	Price      float64 `json:"price"`
	ExecutedAt string  `json:"timestamp"`
	PnL        float64 `json:"pnl"`
	TxHash     string  `json:"txHash,omitempty"`
	Summary    string  `json:"summary"`
}

type feedItemDTO struct {
	Profile profileDTO `json:"profile"`
	Trade   tradeDTO   `json:"trade"`
	TimeAgo string     `json:"timeAgo"`
}

type signalDetailsDTO struct {
	Profile      profileDTO `json:"profile"`
	Trade        tradeDTO   `json:"trade"`
	RecentTrades []tradeDTO `json:"recentTrades"`
}

type copyQuoteRequest struct {
	Amount   float64  `json:"amount" validate:"gt=0"`
	Slippage *float64 `json:"slippage" validate:"omitempty,gte=0,lte=100"`
}

type copyQuoteDTO struct {
	TradeID         string `json:"tradeId"`
	TokenIn         string `json:"tokenIn"`
	TokenOut        string `json:"tokenOut"`
	Amount          string `json:"amount"`
	Price           string `json:"price"`
	EstimatedOutput string `json:"estimatedOutput"`
	MinimumReceived string `json:"minimumReceived"`
	SlippagePct     string `json:"slippage"`
	Simulated       bool   `json:"simulated"`
}

func profileToDTO(p profile.Profile) profileDTO {
	tier := p.Tier()
	return profileDTO{
		ID:            p.ID,
		Handle:        p.Handle,
		DisplayName:   p.DisplayName,
		WalletAddress: p.WalletAddress,
		Verified:      p.Verified,
		WhaleScore:    p.WhaleScore,
		FollowerCount: p.FollowerCount,
		WinRate30d:    p.WinRate30d,
		PnL30d:        p.PnL30d,
		Tier:          string(tier),
		Badge:         tier.Badge(),
	}
}

func tradeToDTO(t signal.Trade) tradeDTO {
	return tradeDTO{
		ID:         t.ID,
		TokenIn:    t.TokenIn,
		TokenOut:   t.TokenOut,
		AmountIn:   t.AmountIn,
		AmountOut:  t.AmountOut,
		Price:      t.Price(),
		ExecutedAt: t.ExecutedAt.UTC().Format(time.RFC3339),
		PnL:        t.PnL,
		TxHash:     t.TxHash,
		Summary:    t.Summary(),
	}
}

func tradesToDTO(items []signal.Trade) []tradeDTO {
	out := make([]tradeDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tradeToDTO(t))
	}
	return out
}

func copyQuoteToDTO(q usecase.CopyQuote) copyQuoteDTO {
	return copyQuoteDTO{
		TradeID:         q.TradeID,
		TokenIn:         q.TokenIn,
		TokenOut:        q.TokenOut,
		Amount:          q.Amount.String(),
		Price:           q.Price.String(),
		EstimatedOutput: q.EstimatedOutput.String(),
		MinimumReceived: q.MinimumReceived.String(),
		SlippagePct:     q.SlippagePct.String(),
		Simulated:       true,
	}
}

func parseProfileID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: profile id must be a positive integer", usecase.ErrInvalidInput)
	}
	return id, nil
}

func parseOptionalBool(name, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func parseOptionalFloat(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
