package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fishing-game-backend/models"
)

// NewGormStores wires every collection to a gorm-backed implementation.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:             &gormUsers{db},
		Inventories:       &gormInventories{db},
		Daily:             &gormDaily{db},
		Seasons:           &gormSeasons{db},
		PlayerSeasons:     &gormPlayerSeasons{db},
		Purchases:         &gormPurchases{db},
		PlayerQuests:      &gormPlayerQuests{db},
		Guilds:            &gormGuilds{db},
		GuildMembers:      &gormGuildMembers{db},
		GuildApplications: &gormGuildApplications{db},
		GuildChallenges:   &gormGuildChallenges{db},
		Tournaments:       &gormTournaments{db},
		TournamentEntries: &gormTournamentEntries{db},
		TournamentResults: &gormTournamentResults{db},
		FriendRequests:    &gormFriendRequests{db},
		Friendships:       &gormFriendships{db},
		Gifts:             &gormGifts{db},
		Notifications:     &gormNotifications{db},
		Activities:        &gormActivities{db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUsers struct{ db *gorm.DB }

func (s *gormUsers) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *gormUsers) Create(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *gormUsers) Save(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *gormUsers) AdjustBalances(ctx context.Context, id string, coins, gems int64) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"coins": gorm.Expr("coins + ?", coins),
		"gems":  gorm.Expr("gems + ?", gems),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormUsers) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("username ILIKE ?", "%"+query+"%").
		Limit(limit).
		Find(&users).Error
	return users, err
}

type gormInventories struct{ db *gorm.DB }

func (s *gormInventories) Get(ctx context.Context, userID string) (*models.PlayerInventory, error) {
	var inv models.PlayerInventory
	if err := s.db.WithContext(ctx).First(&inv, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *gormInventories) Save(ctx context.Context, inv *models.PlayerInventory) error {
	return s.db.WithContext(ctx).Save(inv).Error
}

type gormDaily struct{ db *gorm.DB }

func (s *gormDaily) Get(ctx context.Context, userID string) (*models.PlayerDailyRewards, error) {
	var d models.PlayerDailyRewards
	if err := s.db.WithContext(ctx).First(&d, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *gormDaily) Save(ctx context.Context, d *models.PlayerDailyRewards) error {
	return s.db.WithContext(ctx).Save(d).Error
}

type gormSeasons struct{ db *gorm.DB }

func (s *gormSeasons) Current(ctx context.Context) (*models.SeasonPass, error) {
	var season models.SeasonPass
	if err := s.db.WithContext(ctx).Order("season_number DESC").First(&season).Error; err != nil {
		return nil, translate(err)
	}
	return &season, nil
}

func (s *gormSeasons) Create(ctx context.Context, season *models.SeasonPass) error {
	return s.db.WithContext(ctx).Create(season).Error
}

type gormPlayerSeasons struct{ db *gorm.DB }

func (s *gormPlayerSeasons) Get(ctx context.Context, userID, seasonID string) (*models.PlayerSeasonPass, error) {
	var p models.PlayerSeasonPass
	if err := s.db.WithContext(ctx).First(&p, "user_id = ? AND season_id = ?", userID, seasonID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *gormPlayerSeasons) Create(ctx context.Context, p *models.PlayerSeasonPass) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormPlayerSeasons) Save(ctx context.Context, p *models.PlayerSeasonPass) error {
	return s.db.WithContext(ctx).Save(p).Error
}

type gormPurchases struct{ db *gorm.DB }

func (s *gormPurchases) Create(ctx context.Context, p *models.Purchase) error {
	return s.db.WithContext(ctx).Create(p).Error
}

type gormPlayerQuests struct{ db *gorm.DB }

func (s *gormPlayerQuests) Get(ctx context.Context, id string) (*models.PlayerQuest, error) {
	var q models.PlayerQuest
	if err := s.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (s *gormPlayerQuests) ListByPeriod(ctx context.Context, userID string, t models.QuestType, periodKey string) ([]models.PlayerQuest, error) {
	var quests []models.PlayerQuest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND period_key = ?", userID, t, periodKey).
		Order("created_at ASC").
		Find(&quests).Error
	return quests, err
}

func (s *gormPlayerQuests) ListByType(ctx context.Context, userID string, t models.QuestType) ([]models.PlayerQuest, error) {
	var quests []models.PlayerQuest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, t).
		Order("created_at ASC").
		Find(&quests).Error
	return quests, err
}

func (s *gormPlayerQuests) ListActive(ctx context.Context, userID string) ([]models.PlayerQuest, error) {
	var quests []models.PlayerQuest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.QuestActive).
		Find(&quests).Error
	return quests, err
}

func (s *gormPlayerQuests) Create(ctx context.Context, q *models.PlayerQuest) error {
	return s.db.WithContext(ctx).Create(q).Error
}

func (s *gormPlayerQuests) Save(ctx context.Context, q *models.PlayerQuest) error {
	return s.db.WithContext(ctx).Save(q).Error
}

type gormGuilds struct{ db *gorm.DB }

func (s *gormGuilds) Get(ctx context.Context, id string) (*models.Guild, error) {
	var g models.Guild
	if err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *gormGuilds) GetByName(ctx context.Context, name string) (*models.Guild, error) {
	var g models.Guild
	if err := s.db.WithContext(ctx).First(&g, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *gormGuilds) GetByTag(ctx context.Context, tag string) (*models.Guild, error) {
	var g models.Guild
	if err := s.db.WithContext(ctx).First(&g, "tag = ?", tag).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *gormGuilds) Create(ctx context.Context, g *models.Guild) error {
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *gormGuilds) Save(ctx context.Context, g *models.Guild) error {
	return s.db.WithContext(ctx).Save(g).Error
}

func (s *gormGuilds) Search(ctx context.Context, query string, limit int) ([]models.Guild, error) {
	var guilds []models.Guild
	err := s.db.WithContext(ctx).
		Where("name ILIKE ? OR tag ILIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&guilds).Error
	return guilds, err
}

func (s *gormGuilds) List(ctx context.Context, limit int) ([]models.Guild, error) {
	var guilds []models.Guild
	err := s.db.WithContext(ctx).
		Order("level DESC, experience DESC").
		Limit(limit).
		Find(&guilds).Error
	return guilds, err
}

func (s *gormGuilds) ResetWeeklyContributions(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.Guild{}).
		Where("weekly_contribution > 0").
		Update("weekly_contribution", 0).Error
}

type gormGuildMembers struct{ db *gorm.DB }

func (s *gormGuildMembers) Get(ctx context.Context, guildID, userID string) (*models.GuildMember, error) {
	var m models.GuildMember
	if err := s.db.WithContext(ctx).First(&m, "guild_id = ? AND user_id = ?", guildID, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *gormGuildMembers) GetByUser(ctx context.Context, userID string) (*models.GuildMember, error) {
	var m models.GuildMember
	if err := s.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *gormGuildMembers) ListByGuild(ctx context.Context, guildID string) ([]models.GuildMember, error) {
	var members []models.GuildMember
	err := s.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("contribution_points DESC").
		Find(&members).Error
	return members, err
}

func (s *gormGuildMembers) Create(ctx context.Context, m *models.GuildMember) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *gormGuildMembers) Save(ctx context.Context, m *models.GuildMember) error {
	return s.db.WithContext(ctx).Save(m).Error
}

func (s *gormGuildMembers) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.GuildMember{}, "id = ?", id).Error
}

func (s *gormGuildMembers) ResetWeeklyPoints(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.GuildMember{}).
		Where("weekly_points > 0").
		Update("weekly_points", 0).Error
}

type gormGuildApplications struct{ db *gorm.DB }

func (s *gormGuildApplications) Get(ctx context.Context, id string) (*models.GuildApplication, error) {
	var a models.GuildApplication
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormGuildApplications) FindPending(ctx context.Context, guildID, userID string) (*models.GuildApplication, error) {
	var a models.GuildApplication
	err := s.db.WithContext(ctx).
		First(&a, "guild_id = ? AND user_id = ? AND status = ?", guildID, userID, models.ApplicationPending).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormGuildApplications) ListByGuild(ctx context.Context, guildID string, status models.ApplicationStatus) ([]models.GuildApplication, error) {
	var apps []models.GuildApplication
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND status = ?", guildID, status).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (s *gormGuildApplications) Create(ctx context.Context, a *models.GuildApplication) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormGuildApplications) Save(ctx context.Context, a *models.GuildApplication) error {
	return s.db.WithContext(ctx).Save(a).Error
}

type gormGuildChallenges struct{ db *gorm.DB }

func (s *gormGuildChallenges) Get(ctx context.Context, id string) (*models.GuildChallenge, error) {
	var c models.GuildChallenge
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *gormGuildChallenges) ListForGuild(ctx context.Context, guildID string) ([]models.GuildChallenge, error) {
	var challenges []models.GuildChallenge
	err := s.db.WithContext(ctx).
		Where("challenger_id = ? OR defender_id = ?", guildID, guildID).
		Order("created_at DESC").
		Find(&challenges).Error
	return challenges, err
}

func (s *gormGuildChallenges) Create(ctx context.Context, c *models.GuildChallenge) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormGuildChallenges) Save(ctx context.Context, c *models.GuildChallenge) error {
	return s.db.WithContext(ctx).Save(c).Error
}

type gormTournaments struct{ db *gorm.DB }

func (s *gormTournaments) Get(ctx context.Context, id string) (*models.Tournament, error) {
	var t models.Tournament
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *gormTournaments) Create(ctx context.Context, t *models.Tournament) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *gormTournaments) Save(ctx context.Context, t *models.Tournament) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *gormTournaments) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("end_time ASC").
		Find(&tournaments).Error
	return tournaments, err
}

func (s *gormTournaments) ExistsTypeSince(ctx context.Context, t models.TournamentType, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Tournament{}).
		Where("type = ? AND created_at >= ?", t, since).
		Count(&count).Error
	return count > 0, err
}

type gormTournamentEntries struct{ db *gorm.DB }

func (s *gormTournamentEntries) Get(ctx context.Context, tournamentID, userID string) (*models.TournamentEntry, error) {
	var e models.TournamentEntry
	if err := s.db.WithContext(ctx).First(&e, "tournament_id = ? AND user_id = ?", tournamentID, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *gormTournamentEntries) Create(ctx context.Context, e *models.TournamentEntry) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *gormTournamentEntries) ApplyScore(ctx context.Context, id string, upd models.ScoreUpdate) (*models.TournamentEntry, error) {
	res := s.db.WithContext(ctx).Model(&models.TournamentEntry{}).Where("id = ?", id).Updates(map[string]interface{}{
		"score":           gorm.Expr("score + ?", upd.Score),
		"fish_caught":     gorm.Expr("fish_caught + ?", upd.FishCaught),
		"perfect_catches": gorm.Expr("perfect_catches + ?", upd.PerfectCatches),
		"biggest_fish":    gorm.Expr("GREATEST(biggest_fish, ?)", upd.BiggestFish),
		"combo_max":       gorm.Expr("GREATEST(combo_max, ?)", upd.ComboMax),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var e models.TournamentEntry
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *gormTournamentEntries) ListByTournament(ctx context.Context, tournamentID string) ([]models.TournamentEntry, error) {
	var entries []models.TournamentEntry
	err := s.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("score DESC, biggest_fish DESC").
		Find(&entries).Error
	return entries, err
}

func (s *gormTournamentEntries) CountScoreAbove(ctx context.Context, tournamentID string, score int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.TournamentEntry{}).
		Where("tournament_id = ? AND score > ?", tournamentID, score).
		Count(&count).Error
	return count, err
}

type gormTournamentResults struct{ db *gorm.DB }

func (s *gormTournamentResults) CreateBatch(ctx context.Context, results []models.TournamentResult) error {
	if len(results) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&results).Error
}

func (s *gormTournamentResults) ListByTournament(ctx context.Context, tournamentID string) ([]models.TournamentResult, error) {
	var results []models.TournamentResult
	err := s.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("rank ASC").
		Find(&results).Error
	return results, err
}

type gormFriendRequests struct{ db *gorm.DB }

func (s *gormFriendRequests) Get(ctx context.Context, id string) (*models.FriendRequest, error) {
	var r models.FriendRequest
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormFriendRequests) FindPendingBetween(ctx context.Context, a, b string) (*models.FriendRequest, error) {
	var r models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("status = ?", models.RequestPending).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", a, b, b, a).
		First(&r).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *gormFriendRequests) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := s.db.WithContext(ctx).
		Where("to_id = ? AND status = ?", userID, models.RequestPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (s *gormFriendRequests) Create(ctx context.Context, r *models.FriendRequest) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormFriendRequests) Save(ctx context.Context, r *models.FriendRequest) error {
	return s.db.WithContext(ctx).Save(r).Error
}

type gormFriendships struct{ db *gorm.DB }

func (s *gormFriendships) FindBetween(ctx context.Context, a, b string) (*models.Friendship, error) {
	var f models.Friendship
	err := s.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", a, b, b, a).
		First(&f).Error
	if err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (s *gormFriendships) ListByUser(ctx context.Context, userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := s.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error
	return friendships, err
}

func (s *gormFriendships) Create(ctx context.Context, f *models.Friendship) error {
	return s.db.WithContext(ctx).Create(f).Error
}

func (s *gormFriendships) Save(ctx context.Context, f *models.Friendship) error {
	return s.db.WithContext(ctx).Save(f).Error
}

func (s *gormFriendships) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.Friendship{}, "id = ?", id).Error
}

type gormGifts struct{ db *gorm.DB }

func (s *gormGifts) Get(ctx context.Context, id string) (*models.Gift, error) {
	var g models.Gift
	if err := s.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *gormGifts) ListPending(ctx context.Context, toID string) ([]models.Gift, error) {
	var gifts []models.Gift
	err := s.db.WithContext(ctx).
		Where("to_id = ? AND status = ?", toID, models.GiftPending).
		Order("created_at DESC").
		Find(&gifts).Error
	return gifts, err
}

func (s *gormGifts) CountSentSince(ctx context.Context, fromID string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Gift{}).
		Where("from_id = ? AND created_at >= ?", fromID, since).
		Count(&count).Error
	return count, err
}

func (s *gormGifts) ListOverdue(ctx context.Context, now time.Time) ([]models.Gift, error) {
	var gifts []models.Gift
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", models.GiftPending, now).
		Find(&gifts).Error
	return gifts, err
}

func (s *gormGifts) Create(ctx context.Context, g *models.Gift) error {
	return s.db.WithContext(ctx).Create(g).Error
}

func (s *gormGifts) Save(ctx context.Context, g *models.Gift) error {
	return s.db.WithContext(ctx).Save(g).Error
}

type gormNotifications struct{ db *gorm.DB }

func (s *gormNotifications) Create(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *gormNotifications) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (s *gormNotifications) MarkRead(ctx context.Context, id, userID string) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormNotifications) MarkAllRead(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (s *gormNotifications) Clear(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&models.Notification{}, "user_id = ?", userID).Error
}

type gormActivities struct{ db *gorm.DB }

func (s *gormActivities) Get(ctx context.Context, id string) (*models.Activity, error) {
	var a models.Activity
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *gormActivities) List(ctx context.Context, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (s *gormActivities) Create(ctx context.Context, a *models.Activity) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *gormActivities) Save(ctx context.Context, a *models.Activity) error {
	return s.db.WithContext(ctx).Save(a).Error
}
