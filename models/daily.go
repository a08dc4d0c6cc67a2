package models

// PlayerDailyRewards tracks the login streak for one user. LastLogin and
// ClaimedDays hold UTC calendar dates formatted as 2006-01-02; MilestoneClaimed
// is append-only and survives streak resets.
type PlayerDailyRewards struct {
	UserID           string   `gorm:"primaryKey;type:uuid" json:"user_id"`
	CurrentStreak    int      `json:"current_streak" gorm:"default:0"`
	MaxStreak        int      `json:"max_streak" gorm:"default:0"`
	LastLogin        string   `json:"last_login"`
	TotalLogins      int      `json:"total_logins" gorm:"default:0"`
	ClaimedDays      []string `json:"claimed_days" gorm:"serializer:json"`
	MilestoneClaimed []int    `json:"milestone_claimed" gorm:"serializer:json"`
	IsPremium        bool     `json:"is_premium" gorm:"default:false"`

	Timestamps
}

// DailyRewardEntry is one row of the frozen 30-day reward calendar.
type DailyRewardEntry struct {
	Day           int        `json:"day"`
	Type          RewardType `json:"type"`
	ItemID        string     `json:"item_id,omitempty"`
	Amount        int64      `json:"amount"`
	PremiumAmount int64      `json:"premium_amount"`
}
