package models

import "time"

// SeasonPass is the season definition shared by all players, including the
// generated tier table.
type SeasonPass struct {
	ID           string           `gorm:"primaryKey;type:uuid" json:"id"`
	SeasonNumber int              `gorm:"uniqueIndex" json:"season_number"`
	Name         string           `json:"name"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      time.Time        `json:"end_date"`
	MaxLevel     int              `json:"max_level" gorm:"default:50"`
	Tiers        []SeasonPassTier `json:"tiers" gorm:"serializer:json"`

	Timestamps
}

// SeasonPassTier is one level of the season track. PremiumReward is nil on
// levels with a free reward only.
type SeasonPassTier struct {
	Level         int     `json:"level"`
	RequiredXP    int64   `json:"required_xp"`
	FreeReward    Reward  `json:"free_reward"`
	PremiumReward *Reward `json:"premium_reward,omitempty"`
}

// TierFor returns the tier definition for a level, nil if out of range.
func (s *SeasonPass) TierFor(level int) *SeasonPassTier {
	for i := range s.Tiers {
		if s.Tiers[i].Level == level {
			return &s.Tiers[i]
		}
	}
	return nil
}

// PlayerSeasonPass is one player's progress on one season.
type PlayerSeasonPass struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"index:idx_player_season,unique" json:"user_id"`
	SeasonID string `gorm:"index:idx_player_season,unique" json:"season_id"`

	Level     int   `json:"level" gorm:"default:1"`
	XP        int64 `json:"xp" gorm:"default:0"`
	IsPremium bool  `json:"is_premium" gorm:"default:false"`

	ClaimedFree    []int `json:"claimed_free" gorm:"serializer:json"`
	ClaimedPremium []int `json:"claimed_premium" gorm:"serializer:json"`

	Timestamps
}

// Purchase records a premium pass unlock for audit. Payment itself is
// handled upstream; this is the ledger line only.
type Purchase struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	ItemType  string    `json:"item_type"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
