package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/whalecast/internal/domain/signal"
	"github.com/riskibarqy/whalecast/internal/usecase"
)

const maxRequestBodyBytes = 1 << 16

func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeed")
	defer span.End()

	query := r.URL.Query()
	onlyVerified, err := parseOptionalBool("verified", query.Get("verified"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	onlyWhales, err := parseOptionalBool("whales", query.Get("whales"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minNotional, err := parseOptionalFloat("min_notional", query.Get("min_notional"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.signalService.Feed(ctx, usecase.FeedFilter{
		OnlyVerified: onlyVerified,
		OnlyWhales:   onlyWhales,
		MinNotional:  minNotional,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list feed failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]feedItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, feedItemDTO{
			Profile: profileToDTO(item.Profile),
			Trade:   tradeToDTO(item.Trade),
			TimeAgo: item.TimeAgo,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSignalDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSignalDetails")
	defer span.End()

	profileID, err := parseProfileID(r.PathValue("profileID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tradeID := strings.TrimSpace(r.PathValue("tradeID"))

	details, err := h.signalService.Details(ctx, profileID, tradeID)
	if err != nil {
		h.logger.WarnContext(ctx, "get signal details failed", "profile_id", profileID, "trade_id", tradeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, signalDetailsDTO{
		Profile:      profileToDTO(details.Profile),
		Trade:        tradeToDTO(details.Trade),
		RecentTrades: tradesToDTO(details.RecentTrades),
	})
}

func (h *Handler) GetAlphaCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAlphaCard")
	defer span.End()

	profileID, err := parseProfileID(r.PathValue("profileID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tradeID := strings.TrimSpace(r.URL.Query().Get("trade_id"))
	if tradeID == "" {
		writeError(ctx, w, fmt.Errorf("%w: trade_id is required", usecase.ErrInvalidInput))
		return
	}

	card, err := h.signalService.AlphaCard(ctx, profileID, tradeID)
	if err != nil {
		h.logger.WarnContext(ctx, "get alpha card failed", "profile_id", profileID, "trade_id", tradeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, card)
}

func (h *Handler) QuoteCopyTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuoteCopyTrade")
	defer span.End()

	var req copyQuoteRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slippage := signal.DefaultSlippagePct
	if req.Slippage != nil {
		slippage = *req.Slippage
	}

	tradeID := strings.TrimSpace(r.PathValue("tradeID"))
	quote, err := h.signalService.QuoteCopyTrade(ctx, tradeID, req.Amount, slippage)
	if err != nil {
		h.logger.WarnContext(ctx, "quote copy trade failed", "trade_id", tradeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, copyQuoteToDTO(quote))
}
