package models

import "time"

type QuestType string

const (
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
	QuestStory  QuestType = "story"
)

type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestClaimed   QuestStatus = "claimed"
)

// QuestTemplate is a static quest definition. Daily and weekly instances are
// sampled from the template tables; story templates form an unlock chain.
type QuestTemplate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        QuestType  `json:"type"`
	Chapter     int        `json:"chapter,omitempty"`
	Unlocks     string     `json:"unlocks,omitempty"`  // template id unlocked on completion
	Requires    string     `json:"requires,omitempty"` // template id that must be completed first
	Objectives  []QuestObjective `json:"objectives"`
	Rewards     []Reward   `json:"rewards"`
}

// QuestObjective describes one objective with optional match filters. Zero
// values mean "no filter" (MinRarity 0, MinSize 0, empty strings).
type QuestObjective struct {
	Type      string  `json:"type"`
	Target    int64   `json:"target"`
	FishType  string  `json:"fish_type,omitempty"`
	Stage     int     `json:"stage,omitempty"`
	MinRarity int     `json:"min_rarity,omitempty"`
	MinSize   float64 `json:"min_size,omitempty"`
}

// ObjectiveProgress is an objective plus its accumulated progress, clamped to
// Target.
type ObjectiveProgress struct {
	QuestObjective
	Progress int64 `json:"progress"`
}

func (o *ObjectiveProgress) Done() bool { return o.Progress >= o.Target }

// PlayerQuest is one instantiated quest for one player. PeriodKey is the
// calendar bucket the instance belongs to (date for daily, ISO week for
// weekly, empty for story).
type PlayerQuest struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string      `gorm:"index" json:"user_id"`
	QuestID   string      `json:"quest_id"`
	Type      QuestType   `json:"type"`
	PeriodKey string      `json:"period_key"`
	Title     string      `json:"title"`
	Status    QuestStatus `json:"status"`
	Chapter   int         `json:"chapter,omitempty"`

	Objectives []ObjectiveProgress `json:"objectives" gorm:"serializer:json"`
	Rewards    []Reward            `json:"rewards" gorm:"serializer:json"`

	AcceptedAt  time.Time  `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`

	Timestamps
}

// CatchEvent is the progress report consumed by the quest engine.
type CatchEvent struct {
	Type     string  `json:"type"`
	Amount   int64   `json:"amount"`
	FishType string  `json:"fish_type,omitempty"`
	Stage    int     `json:"stage,omitempty"`
	Rarity   int     `json:"rarity,omitempty"`
	Size     float64 `json:"size,omitempty"`
}

// Achievement is a static threshold over a user counter.
type Achievement struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Counter   string   `json:"counter"` // total_catches | level | coins
	Threshold int64    `json:"threshold"`
	Rewards   []Reward `json:"rewards"`
}
