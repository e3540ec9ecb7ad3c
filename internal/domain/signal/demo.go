package signal

import "time"

const (
	DefaultSlippagePct = 0.5
	detailTxHash       = "0x1234567890abcdef1234567890abcdef12345678"
)

type mockTrade struct {
	id        string
	tokenIn   string
	tokenOut  string
	amountIn  float64
	amountOut float64
	age       time.Duration
	pnl       float64
	txHash    string
}

var feedTrades = []mockTrade{
	{id: "1", tokenIn: "USDC", tokenOut: "PEPE", amountIn: 1000, amountOut: 50000000, age: 2 * time.Minute, pnl: 35.4},
	{id: "2", tokenIn: "ETH", tokenOut: "DOGE", amountIn: 2.5, amountOut: 15000, age: 15 * time.Minute, pnl: 12.7},
	{id: "3", tokenIn: "USDT", tokenOut: "SHIB", amountIn: 500, amountOut: 25000000, age: time.Hour, pnl: 8.9},
	{id: "4", tokenIn: "USDC", tokenOut: "BONK", amountIn: 200, amountOut: 1000000, age: 2 * time.Hour, pnl: -25.1},
	{id: "5", tokenIn: "ETH", tokenOut: "PEPE", amountIn: 1.2, amountOut: 30000000, age: 3 * time.Hour, pnl: 28.6},
	{id: "6", tokenIn: "USDC", tokenOut: "FLOKI", amountIn: 800, amountOut: 40000000, age: 4 * time.Hour, pnl: 19.8},
}

var recentTrades = []mockTrade{
	{id: "1", tokenIn: "ETH", tokenOut: "DOGE", amountIn: 2.5, amountOut: 15000, age: 24 * time.Hour, pnl: 12.7, txHash: "0xabcdef1234567890abcdef1234567890abcdef12"},
	{id: "2", tokenIn: "USDT", tokenOut: "SHIB", amountIn: 500, amountOut: 25000000, age: 3 * 24 * time.Hour, pnl: 8.9, txHash: "0x9876543210fedcba9876543210fedcba98765432"},
	{id: "3", tokenIn: "USDC", tokenOut: "BONK", amountIn: 200, amountOut: 1000000, age: 5 * 24 * time.Hour, pnl: -25.1, txHash: "0xfedcba9876543210fedcba9876543210fedcba98"},
}

func (m mockTrade) at(now time.Time) Trade {
	return Trade{
		ID:         m.id,
		TokenIn:    m.tokenIn,
		TokenOut:   m.tokenOut,
		AmountIn:   m.amountIn,
		AmountOut:  m.amountOut,
		ExecutedAt: now.Add(-m.age),
		PnL:        m.pnl,
		TxHash:     m.txHash,
	}
}

// DemoFeedTrades returns the six mock trades paired with feed profiles.
func DemoFeedTrades(now time.Time) []Trade {
	out := make([]Trade, 0, len(feedTrades))
	for _, m := range feedTrades {
		out = append(out, m.at(now))
	}
	return out
}

// DemoFeedTrade looks up a feed trade by id.
func DemoFeedTrade(now time.Time, id string) (Trade, bool) {
	for _, m := range feedTrades {
		if m.id == id {
			return m.at(now), true
		}
	}
	return Trade{}, false
}

// DemoDetailTrade is the trade shown on a signal details page. It echoes the requested id.
func DemoDetailTrade(now time.Time, id string) Trade {
	t := feedTrades[0].at(now)
	t.ID = id
	t.TxHash = detailTxHash
	return t
}

func DemoRecentTrades(now time.Time) []Trade {
	out := make([]Trade, 0, len(recentTrades))
	for _, m := range recentTrades {
		out = append(out, m.at(now))
	}
	return out
}
