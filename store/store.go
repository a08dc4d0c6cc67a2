// Package store defines one repository interface per collection. Services
// depend on these interfaces only; the gorm implementation backs the running
// service and the memory implementation backs the tests.
package store

import (
	"context"
	"errors"
	"time"

	"fishing-game-backend/models"
)

// ErrNotFound is returned by every point lookup that misses.
var ErrNotFound = errors.New("document not found")

type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	// AdjustBalances atomically adds the deltas to coins and gems. Callers
	// validate balances before debiting.
	AdjustBalances(ctx context.Context, id string, coins, gems int64) error
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
}

type InventoryStore interface {
	Get(ctx context.Context, userID string) (*models.PlayerInventory, error)
	Save(ctx context.Context, inv *models.PlayerInventory) error
}

type DailyRewardsStore interface {
	Get(ctx context.Context, userID string) (*models.PlayerDailyRewards, error)
	Save(ctx context.Context, d *models.PlayerDailyRewards) error
}

type SeasonStore interface {
	// Current returns the newest season by season number.
	Current(ctx context.Context) (*models.SeasonPass, error)
	Create(ctx context.Context, s *models.SeasonPass) error
}

type PlayerSeasonStore interface {
	Get(ctx context.Context, userID, seasonID string) (*models.PlayerSeasonPass, error)
	Create(ctx context.Context, p *models.PlayerSeasonPass) error
	Save(ctx context.Context, p *models.PlayerSeasonPass) error
}

type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
}

type PlayerQuestStore interface {
	Get(ctx context.Context, id string) (*models.PlayerQuest, error)
	// ListByPeriod returns the user's instances of one quest type for one
	// period key, in creation order.
	ListByPeriod(ctx context.Context, userID string, t models.QuestType, periodKey string) ([]models.PlayerQuest, error)
	ListByType(ctx context.Context, userID string, t models.QuestType) ([]models.PlayerQuest, error)
	ListActive(ctx context.Context, userID string) ([]models.PlayerQuest, error)
	Create(ctx context.Context, q *models.PlayerQuest) error
	Save(ctx context.Context, q *models.PlayerQuest) error
}

type GuildStore interface {
	Get(ctx context.Context, id string) (*models.Guild, error)
	GetByName(ctx context.Context, name string) (*models.Guild, error)
	GetByTag(ctx context.Context, tag string) (*models.Guild, error)
	Create(ctx context.Context, g *models.Guild) error
	Save(ctx context.Context, g *models.Guild) error
	Search(ctx context.Context, query string, limit int) ([]models.Guild, error)
	List(ctx context.Context, limit int) ([]models.Guild, error)
	ResetWeeklyContributions(ctx context.Context) error
}

type GuildMemberStore interface {
	Get(ctx context.Context, guildID, userID string) (*models.GuildMember, error)
	GetByUser(ctx context.Context, userID string) (*models.GuildMember, error)
	ListByGuild(ctx context.Context, guildID string) ([]models.GuildMember, error)
	Create(ctx context.Context, m *models.GuildMember) error
	Save(ctx context.Context, m *models.GuildMember) error
	Delete(ctx context.Context, id string) error
	ResetWeeklyPoints(ctx context.Context) error
}

type GuildApplicationStore interface {
	Get(ctx context.Context, id string) (*models.GuildApplication, error)
	FindPending(ctx context.Context, guildID, userID string) (*models.GuildApplication, error)
	ListByGuild(ctx context.Context, guildID string, status models.ApplicationStatus) ([]models.GuildApplication, error)
	Create(ctx context.Context, a *models.GuildApplication) error
	Save(ctx context.Context, a *models.GuildApplication) error
}

type GuildChallengeStore interface {
	Get(ctx context.Context, id string) (*models.GuildChallenge, error)
	ListForGuild(ctx context.Context, guildID string) ([]models.GuildChallenge, error)
	Create(ctx context.Context, c *models.GuildChallenge) error
	Save(ctx context.Context, c *models.GuildChallenge) error
}

type TournamentStore interface {
	Get(ctx context.Context, id string) (*models.Tournament, error)
	Create(ctx context.Context, t *models.Tournament) error
	Save(ctx context.Context, t *models.Tournament) error
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error)
	// ExistsTypeSince reports whether a tournament of the given type was
	// created at or after the cutoff. Backs idempotent daily creation.
	ExistsTypeSince(ctx context.Context, t models.TournamentType, since time.Time) (bool, error)
}

type TournamentEntryStore interface {
	Get(ctx context.Context, tournamentID, userID string) (*models.TournamentEntry, error)
	Create(ctx context.Context, e *models.TournamentEntry) error
	// ApplyScore adds the additive fields and keeps the greater of the
	// high-water fields, atomically per entry, returning the updated entry.
	ApplyScore(ctx context.Context, id string, upd models.ScoreUpdate) (*models.TournamentEntry, error)
	ListByTournament(ctx context.Context, tournamentID string) ([]models.TournamentEntry, error)
	CountScoreAbove(ctx context.Context, tournamentID string, score int64) (int64, error)
}

type TournamentResultStore interface {
	CreateBatch(ctx context.Context, results []models.TournamentResult) error
	ListByTournament(ctx context.Context, tournamentID string) ([]models.TournamentResult, error)
}

type FriendRequestStore interface {
	Get(ctx context.Context, id string) (*models.FriendRequest, error)
	// FindPendingBetween matches a pending request in either direction.
	FindPendingBetween(ctx context.Context, a, b string) (*models.FriendRequest, error)
	ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error)
	Create(ctx context.Context, r *models.FriendRequest) error
	Save(ctx context.Context, r *models.FriendRequest) error
}

type FriendshipStore interface {
	FindBetween(ctx context.Context, a, b string) (*models.Friendship, error)
	ListByUser(ctx context.Context, userID string) ([]models.Friendship, error)
	Create(ctx context.Context, f *models.Friendship) error
	Save(ctx context.Context, f *models.Friendship) error
	Delete(ctx context.Context, id string) error
}

type GiftStore interface {
	Get(ctx context.Context, id string) (*models.Gift, error)
	ListPending(ctx context.Context, toID string) ([]models.Gift, error)
	CountSentSince(ctx context.Context, fromID string, since time.Time) (int64, error)
	ListOverdue(ctx context.Context, now time.Time) ([]models.Gift, error)
	Create(ctx context.Context, g *models.Gift) error
	Save(ctx context.Context, g *models.Gift) error
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Clear(ctx context.Context, userID string) error
}

type ActivityStore interface {
	Get(ctx context.Context, id string) (*models.Activity, error)
	List(ctx context.Context, limit int) ([]models.Activity, error)
	Create(ctx context.Context, a *models.Activity) error
	Save(ctx context.Context, a *models.Activity) error
}

// Stores bundles every collection for wiring in main.
type Stores struct {
	Users             UserStore
	Inventories       InventoryStore
	Daily             DailyRewardsStore
	Seasons           SeasonStore
	PlayerSeasons     PlayerSeasonStore
	Purchases         PurchaseStore
	PlayerQuests      PlayerQuestStore
	Guilds            GuildStore
	GuildMembers      GuildMemberStore
	GuildApplications GuildApplicationStore
	GuildChallenges   GuildChallengeStore
	Tournaments       TournamentStore
	TournamentEntries TournamentEntryStore
	TournamentResults TournamentResultStore
	FriendRequests    FriendRequestStore
	Friendships       FriendshipStore
	Gifts             GiftStore
	Notifications     NotificationStore
	Activities        ActivityStore
}
