package signal

import (
	"fmt"
	"strconv"
	"time"
)

// Trade is a swap attributed to a profile. Trades are mock data and never persisted.
type Trade struct {
	ID         string    `json:"id"`
	TokenIn    string    `json:"tokenIn"`
	TokenOut   string    `json:"tokenOut"`
	AmountIn   float64   `json:"amountIn"`
	AmountOut  float64   `json:"amountOut"`
	ExecutedAt time.Time `json:"timestamp"`
	PnL        float64   `json:"pnl"`
	TxHash     string    `json:"txHash,omitempty"`
}

// Price is the amount of TokenOut received per unit of TokenIn.
func (t Trade) Price() float64 {
	if t.AmountIn == 0 {
		return 0
	}
	return t.AmountOut / t.AmountIn
}

// Summary renders the swap line shown on signal and alpha cards.
func (t Trade) Summary() string {
	return fmt.Sprintf("Swapped %s %s → %s %s", FormatAmount(t.AmountIn), t.TokenIn, FormatAmount(t.AmountOut), t.TokenOut)
}

// FormatAmount abbreviates large token amounts with K and M suffixes.
func FormatAmount(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return strconv.FormatFloat(amount/1_000_000, 'f', 1, 64) + "M"
	case amount >= 1_000:
		return strconv.FormatFloat(amount/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
}

// TimeAgo renders the elapsed time between at and now in the coarsest unit.
func TimeAgo(now, at time.Time) string {
	diff := now.Sub(at)
	minutes := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "now"
	case minutes < 60:
		return fmt.Sprintf("%dm ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", days)
	}
}
