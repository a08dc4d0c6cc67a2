package models

import "time"

type TournamentType string

const (
	TournamentDaily   TournamentType = "daily"
	TournamentPremium TournamentType = "premium"
	TournamentSpecial TournamentType = "special"
)

type TournamentStatus string

const (
	TournamentActive TournamentStatus = "active"
	TournamentEnded  TournamentStatus = "ended"
)

// Tournament is a score-accumulation board. FinalLeaderboard is the frozen
// top-100 snapshot written once by finalize.
type Tournament struct {
	ID     string           `gorm:"primaryKey;type:uuid" json:"id"`
	Name   string           `json:"name"`
	Type   TournamentType   `gorm:"index" json:"type"`
	Status TournamentStatus `gorm:"index" json:"status"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	EntryFee    int64  `json:"entry_fee"`
	FeeCurrency string `json:"fee_currency"` // coins | gems

	MaxParticipants     int `json:"max_participants"`
	CurrentParticipants int `json:"current_participants" gorm:"default:0"`

	RewardTiers      []TournamentRewardTier `json:"reward_tiers" gorm:"serializer:json"`
	FinalLeaderboard []TournamentEntry      `json:"final_leaderboard,omitempty" gorm:"serializer:json"`

	Timestamps
}

// TournamentRewardTier pays every finisher whose rank falls in
// [RankMin, RankMax]. Tiers are scanned in order; first match wins.
type TournamentRewardTier struct {
	RankMin int    `json:"rank_min"`
	RankMax int    `json:"rank_max"`
	Coins   int64  `json:"coins"`
	Gems    int64  `json:"gems"`
	Title   string `json:"title,omitempty"`
}

// TournamentEntry is one player's running score line.
type TournamentEntry struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID string `gorm:"index:idx_tournament_user,unique" json:"tournament_id"`
	UserID       string `gorm:"index:idx_tournament_user,unique" json:"user_id"`
	Username     string `json:"username"`

	Score          int64   `json:"score" gorm:"default:0"`
	FishCaught     int64   `json:"fish_caught" gorm:"default:0"`
	BiggestFish    float64 `json:"biggest_fish" gorm:"default:0"`
	PerfectCatches int64   `json:"perfect_catches" gorm:"default:0"`
	ComboMax       int64   `json:"combo_max" gorm:"default:0"`

	JoinedAt time.Time `json:"joined_at"`

	Timestamps
}

// ScoreUpdate carries one score report. Score, FishCaught and PerfectCatches
// are added; BiggestFish and ComboMax are kept-if-greater.
type ScoreUpdate struct {
	Score          int64   `json:"score"`
	FishCaught     int64   `json:"fish_caught"`
	BiggestFish    float64 `json:"biggest_fish"`
	PerfectCatches int64   `json:"perfect_catches"`
	ComboMax       int64   `json:"combo_max"`
}

// TournamentResult is the per-player outcome persisted by finalize.
type TournamentResult struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID string `gorm:"index" json:"tournament_id"`
	UserID       string `gorm:"index" json:"user_id"`
	Rank         int    `json:"rank"`
	Score        int64  `json:"score"`
	RewardCoins  int64  `json:"reward_coins"`
	RewardGems   int64  `json:"reward_gems"`
	Title        string `json:"title,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
