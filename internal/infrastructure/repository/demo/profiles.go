package demo

import "github.com/riskibarqy/whalecast/internal/domain/profile"

// Profiles returns the demo table ordered by id. Callers get their own copy.
func Profiles() []profile.Profile {
	return []profile.Profile{
		{ID: 201, Handle: "beam_eth", DisplayName: "Beam Nawapat", WalletAddress: "0x1111aaaa2222bbbb3333cccc4444dddd5555eeee", Verified: true, WhaleScore: 78, FollowerCount: 520, WinRate30d: 0.69, PnL30d: 35.4},
		{ID: 202, Handle: "neuw_memes", DisplayName: "Neuw", WalletAddress: "0x2222bbbb3333cccc4444dddd5555eeee6666ffff", Verified: false, WhaleScore: 52, FollowerCount: 150, WinRate30d: 0.51, PnL30d: 12.7},
		{ID: 203, Handle: "dome_trader", DisplayName: "Dome", WalletAddress: "0x3333cccc4444dddd5555eeee6666ffff7777aaaa", Verified: true, WhaleScore: 61, FollowerCount: 240, WinRate30d: 0.58, PnL30d: 8.9},
		{ID: 204, Handle: "chai_degen", DisplayName: "Chai", WalletAddress: "0x4444dddd5555eeee6666ffff7777aaaabbbbcccc", Verified: false, WhaleScore: 34, FollowerCount: 90, WinRate30d: 0.37, PnL30d: -25.1},
		{ID: 205, Handle: "fin_alpha", DisplayName: "Fin", WalletAddress: "0x5555eeee6666ffff7777aaaabbbbcccc11112222", Verified: true, WhaleScore: 70, FollowerCount: 310, WinRate30d: 0.63, PnL30d: 28.6},
		{ID: 206, Handle: "thames_builder", DisplayName: "Thames", WalletAddress: "0x6666ffff7777aaaabbbbcccc1111222233334444", Verified: true, WhaleScore: 65, FollowerCount: 400, WinRate30d: 0.6, PnL30d: 19.8},
		{ID: 207, Handle: "crypto_whale", DisplayName: "Crypto Whale", WalletAddress: "0x7777aaaa8888bbbb9999cccc0000ddddeeee1111", Verified: true, WhaleScore: 85, FollowerCount: 1200, WinRate30d: 0.72, PnL30d: 45.2},
		{ID: 208, Handle: "meme_king", DisplayName: "Meme King", WalletAddress: "0x8888bbbb9999cccc0000ddddeeee111122223333", Verified: false, WhaleScore: 45, FollowerCount: 320, WinRate30d: 0.48, PnL30d: -8.3},
	}
}

// Profile returns the demo entry for id, or the first entry when id is unknown.
func Profile(id int64) profile.Profile {
	all := Profiles()
	for _, p := range all {
		if p.ID == id {
			return p
		}
	}
	return all[0]
}
