package models

import "time"

type GuildRank string

const (
	RankLeader   GuildRank = "leader"
	RankCoLeader GuildRank = "co-leader"
	RankElder    GuildRank = "elder"
	RankMember   GuildRank = "member"
)

// Guild is the shared guild document. Treasury balances and experience are
// the contribution ledger; MaxMembers is derived from Level.
type Guild struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string `gorm:"uniqueIndex" json:"name"`
	Tag         string `gorm:"uniqueIndex" json:"tag"`
	Description string `json:"description"`
	Emblem      string `json:"emblem"`
	LeaderID    string `json:"leader_id"`

	Level      int   `json:"level" gorm:"default:1"`
	Experience int64 `json:"experience" gorm:"default:0"`

	MemberCount int `json:"member_count" gorm:"default:0"`
	MaxMembers  int `json:"max_members" gorm:"default:30"`

	TreasuryCoins      int64 `json:"treasury_coins" gorm:"default:0"`
	TreasuryGems       int64 `json:"treasury_gems" gorm:"default:0"`
	WeeklyContribution int64 `json:"weekly_contribution" gorm:"default:0"`

	AutoAccept bool     `json:"auto_accept" gorm:"default:false"`
	MinLevel   int      `json:"min_level" gorm:"default:1"`
	Perks      []string `json:"perks" gorm:"serializer:json"`

	Timestamps
}

// GuildMember is one user's membership. A user belongs to at most one guild.
type GuildMember struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID  string    `gorm:"index" json:"guild_id"`
	UserID   string    `gorm:"uniqueIndex" json:"user_id"`
	Username string    `json:"username"`
	Rank     GuildRank `json:"rank"`

	ContributionPoints int64 `json:"contribution_points" gorm:"default:0"`
	WeeklyPoints       int64 `json:"weekly_points" gorm:"default:0"`
	FishDonated        int64 `json:"fish_donated" gorm:"default:0"`

	JoinedAt time.Time `json:"joined_at"`

	Timestamps
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type GuildApplication struct {
	ID       string            `gorm:"primaryKey;type:uuid" json:"id"`
	GuildID  string            `gorm:"index" json:"guild_id"`
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	Message  string            `json:"message"`
	Status   ApplicationStatus `json:"status"`

	Timestamps
}

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeDeclined  ChallengeStatus = "declined"
)

// GuildChallenge is a stake-escrow race between two guilds. Stakes are held
// out of both treasuries from acceptance until payout.
type GuildChallenge struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	ChallengerID string `gorm:"index" json:"challenger_id"`
	DefenderID   string `gorm:"index" json:"defender_id"`

	Type          string `json:"type"`
	TargetValue   int64  `json:"target_value"`
	StakeCoins    int64  `json:"stake_coins"`
	DurationHours int    `json:"duration_hours" gorm:"default:24"`

	ChallengerProgress int64 `json:"challenger_progress" gorm:"default:0"`
	DefenderProgress   int64 `json:"defender_progress" gorm:"default:0"`

	Status   ChallengeStatus `json:"status"`
	WinnerID string          `json:"winner_id,omitempty"`

	EndsAt time.Time `json:"ends_at"`

	Timestamps
}
