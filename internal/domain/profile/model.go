package profile

import (
	"fmt"
	"strconv"
)

// KeyPrefix namespaces profile records in the key-value store.
const KeyPrefix = "user:"

// Key returns the store key holding the profile with the given id.
func Key(id int64) string {
	return KeyPrefix + strconv.FormatInt(id, 10)
}

// Profile is a trader shown to WhaleCast users as a signal source.
// JSON tags match the records already present in the store.
type Profile struct {
	ID            int64   `json:"fid"`
	Handle        string  `json:"username"`
	DisplayName   string  `json:"displayName"`
	WalletAddress string  `json:"wallet"`
	Verified      bool    `json:"verified"`
	WhaleScore    int     `json:"whale_score"`
	FollowerCount int     `json:"followers"`
	WinRate30d    float64 `json:"winrate_30d"`
	PnL30d        float64 `json:"pnl_30d"`
}

func (p Profile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("profile id must be positive")
	}
	if p.Handle == "" {
		return fmt.Errorf("profile handle is required")
	}
	if p.FollowerCount < 0 {
		return fmt.Errorf("profile follower count must be >= 0")
	}
	if p.WinRate30d < 0 || p.WinRate30d > 1 {
		return fmt.Errorf("profile win rate must be within [0,1]")
	}

	return nil
}

func (p Profile) Tier() Tier {
	return TierFor(p.WhaleScore)
}

// IsWhale reports whether the profile qualifies for the whales-only filter.
func (p Profile) IsWhale() bool {
	return p.WhaleScore >= 50
}

type Tier string

const (
	TierMegaWhale Tier = "Mega Whale"
	TierWhale     Tier = "Whale"
	TierDolphin   Tier = "Dolphin"
	TierMinnow    Tier = "Minnow"
)

func TierFor(score int) Tier {
	switch {
	case score >= 70:
		return TierMegaWhale
	case score >= 50:
		return TierWhale
	case score >= 30:
		return TierDolphin
	default:
		return TierMinnow
	}
}

// Badge is the emoji shown next to a handle, empty below whale tier.
func (t Tier) Badge() string {
	switch t {
	case TierMegaWhale:
		return "🐋"
	case TierWhale:
		return "🐳"
	default:
		return ""
	}
}
