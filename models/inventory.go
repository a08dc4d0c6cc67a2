package models

// PlayerInventory holds the per-user consumable counters rewards are credited
// to. Baits and Items are open counter maps keyed by bait/item id.
type PlayerInventory struct {
	UserID    string `gorm:"primaryKey;type:uuid" json:"user_id"`
	Energy    int64  `json:"energy" gorm:"default:0"`
	MaxEnergy int64  `json:"max_energy" gorm:"default:100"`

	Baits map[string]int64 `json:"baits" gorm:"serializer:json"`
	Items map[string]int64 `json:"items" gorm:"serializer:json"`

	Timestamps
}
