package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the player ledger document: currency balances plus the lifetime
// counters the quest and achievement checks read.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`

	// Currency balances. Never negative; debits are balance-checked.
	Coins int64 `json:"coins" gorm:"default:0"`
	Gems  int64 `json:"gems" gorm:"default:0"`

	// Lifetime counters
	Level        int   `json:"level" gorm:"default:1"`
	TotalCatches int64 `json:"total_catches" gorm:"default:0"`

	// Story progression
	CompletedQuests []string `json:"completed_quests" gorm:"serializer:json"`
	CurrentChapter  int      `json:"current_chapter" gorm:"default:1"`

	Achievements []string `json:"achievements" gorm:"serializer:json"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
