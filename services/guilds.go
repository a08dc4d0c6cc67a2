package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

const (
	guildMaxLevel       = 10
	guildBaseMembers    = 30
	guildMembersPerLvl  = 5
	guildXPPerLevelStep = 1000
)

// guildPerks maps guild level to the perk set unlocked at that level.
var guildPerks = map[int][]string{
	1:  {},
	2:  {"bonus_xp_5"},
	3:  {"bonus_xp_5", "bonus_coins_5"},
	4:  {"bonus_xp_10", "bonus_coins_5", "extra_energy_10"},
	5:  {"bonus_xp_10", "bonus_coins_10", "extra_energy_10", "rare_fish_boost_5"},
	6:  {"bonus_xp_15", "bonus_coins_10", "extra_energy_15", "rare_fish_boost_5"},
	7:  {"bonus_xp_15", "bonus_coins_15", "extra_energy_15", "rare_fish_boost_10"},
	8:  {"bonus_xp_20", "bonus_coins_15", "extra_energy_20", "rare_fish_boost_10", "exclusive_badge"},
	9:  {"bonus_xp_20", "bonus_coins_20", "extra_energy_20", "rare_fish_boost_15", "exclusive_badge"},
	10: {"bonus_xp_25", "bonus_coins_25", "extra_energy_25", "rare_fish_boost_20", "exclusive_badge", "legendary_lure"},
}

// GuildService owns guilds: membership and ranks, the contribution ledger
// with guild leveling, and stake-escrow challenges between guilds.
type GuildService struct {
	guilds       store.GuildStore
	members      store.GuildMemberStore
	applications store.GuildApplicationStore
	challenges   store.GuildChallengeStore
	rewards      *RewardService

	Now func() time.Time
}

func NewGuildService(guilds store.GuildStore, members store.GuildMemberStore, applications store.GuildApplicationStore, challenges store.GuildChallengeStore, rewards *RewardService) *GuildService {
	return &GuildService{
		guilds:       guilds,
		members:      members,
		applications: applications,
		challenges:   challenges,
		rewards:      rewards,
		Now:          time.Now,
	}
}

type CreateGuildInput struct {
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Emblem      string `json:"emblem"`
	AutoAccept  bool   `json:"auto_accept"`
	MinLevel    int    `json:"min_level"`
}

// Create founds a guild with the caller as leader. Tags are 3 to 5
// characters and stored uppercased.
func (s *GuildService) Create(ctx context.Context, userID, username string, in CreateGuildInput) (*models.Guild, error) {
	if in.Name == "" {
		return nil, Validationf("guild name is required")
	}
	if len(in.Tag) < 3 || len(in.Tag) > 5 {
		return nil, Validationf("tag must be 3-5 characters")
	}
	tag := strings.ToUpper(in.Tag)

	if _, err := s.members.GetByUser(ctx, userID); err == nil {
		return nil, Conflictf("already in a guild")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if _, err := s.guilds.GetByName(ctx, in.Name); err == nil {
		return nil, Conflictf("guild name already taken")
	} else if err != store.ErrNotFound {
		return nil, err
	}
	if _, err := s.guilds.GetByTag(ctx, tag); err == nil {
		return nil, Conflictf("guild tag already taken")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	now := s.Now().UTC()
	guild := &models.Guild{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Tag:         tag,
		Description: in.Description,
		Emblem:      in.Emblem,
		LeaderID:    userID,
		Level:       1,
		MemberCount: 1,
		MaxMembers:  guildBaseMembers,
		AutoAccept:  in.AutoAccept,
		MinLevel:    in.MinLevel,
		Perks:       guildPerks[1],
	}
	if err := s.guilds.Create(ctx, guild); err != nil {
		return nil, err
	}

	leader := &models.GuildMember{
		ID:       uuid.NewString(),
		GuildID:  guild.ID,
		UserID:   userID,
		Username: username,
		Rank:     models.RankLeader,
		JoinedAt: now,
	}
	if err := s.members.Create(ctx, leader); err != nil {
		return nil, err
	}

	log.Info().Str("guild_id", guild.ID).Str("tag", guild.Tag).Msg("guild created")
	return guild, nil
}

func (s *GuildService) Get(ctx context.Context, guildID string) (*models.Guild, []models.GuildMember, error) {
	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, NotFoundf("guild %s not found", guildID)
		}
		return nil, nil, err
	}
	members, err := s.members.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	return guild, members, nil
}

func (s *GuildService) Search(ctx context.Context, query string, limit int) ([]models.Guild, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if query == "" {
		return s.guilds.List(ctx, limit)
	}
	return s.guilds.Search(ctx, query, limit)
}

// Membership returns the caller's guild and member document, or ErrNotFound
// mapped to a domain error when the user is guildless.
func (s *GuildService) Membership(ctx context.Context, userID string) (*models.Guild, *models.GuildMember, error) {
	member, err := s.members.GetByUser(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, NotFoundf("not in a guild")
		}
		return nil, nil, err
	}
	guild, err := s.guilds.Get(ctx, member.GuildID)
	if err != nil {
		return nil, nil, err
	}
	return guild, member, nil
}

type JoinResult struct {
	AutoAccepted bool                     `json:"auto_accepted"`
	Membership   *models.GuildMember      `json:"membership,omitempty"`
	Application  *models.GuildApplication `json:"application,omitempty"`
}

// Join either admits the user directly (auto-accept guilds) or files a
// pending application.
func (s *GuildService) Join(ctx context.Context, guildID, userID, username, message string) (*JoinResult, error) {
	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("guild %s not found", guildID)
		}
		return nil, err
	}
	if guild.MemberCount >= guild.MaxMembers {
		return nil, InvalidStatef("guild is full")
	}

	if _, err := s.members.GetByUser(ctx, userID); err == nil {
		return nil, Conflictf("already in a guild")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if _, err := s.applications.FindPending(ctx, guildID, userID); err == nil {
		return nil, Conflictf("application already pending")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if guild.AutoAccept {
		member, err := s.admit(ctx, guild, userID, username)
		if err != nil {
			return nil, err
		}
		return &JoinResult{AutoAccepted: true, Membership: member}, nil
	}

	app := &models.GuildApplication{
		ID:       uuid.NewString(),
		GuildID:  guildID,
		UserID:   userID,
		Username: username,
		Message:  message,
		Status:   models.ApplicationPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return &JoinResult{Application: app}, nil
}

func (s *GuildService) admit(ctx context.Context, guild *models.Guild, userID, username string) (*models.GuildMember, error) {
	member := &models.GuildMember{
		ID:       uuid.NewString(),
		GuildID:  guild.ID,
		UserID:   userID,
		Username: username,
		Rank:     models.RankMember,
		JoinedAt: s.Now().UTC(),
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	guild.MemberCount++
	if err := s.guilds.Save(ctx, guild); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *GuildService) Applications(ctx context.Context, guildID string) ([]models.GuildApplication, error) {
	return s.applications.ListByGuild(ctx, guildID, models.ApplicationPending)
}

// requireRank fetches the caller's membership in the guild and checks it
// holds one of the listed ranks.
func (s *GuildService) requireRank(ctx context.Context, guildID, userID string, ranks ...models.GuildRank) (*models.GuildMember, error) {
	member, err := s.members.Get(ctx, guildID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, PermissionDeniedf("not a member of this guild")
		}
		return nil, err
	}
	for _, r := range ranks {
		if member.Rank == r {
			return member, nil
		}
	}
	return nil, PermissionDeniedf("rank %s cannot perform this action", member.Rank)
}

// AcceptApplication admits the applicant. Capacity is re-checked at accept
// time since the guild may have filled since the application.
func (s *GuildService) AcceptApplication(ctx context.Context, guildID, applicationID, approverID string) (*models.GuildMember, error) {
	if _, err := s.requireRank(ctx, guildID, approverID, models.RankLeader, models.RankCoLeader, models.RankElder); err != nil {
		return nil, err
	}

	app, err := s.applications.Get(ctx, applicationID)
	if err != nil || app.GuildID != guildID || app.Status != models.ApplicationPending {
		return nil, NotFoundf("pending application not found")
	}

	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild.MemberCount >= guild.MaxMembers {
		return nil, InvalidStatef("guild is full")
	}

	member, err := s.admit(ctx, guild, app.UserID, app.Username)
	if err != nil {
		return nil, err
	}

	app.Status = models.ApplicationAccepted
	if err := s.applications.Save(ctx, app); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *GuildService) RejectApplication(ctx context.Context, guildID, applicationID, approverID string) error {
	if _, err := s.requireRank(ctx, guildID, approverID, models.RankLeader, models.RankCoLeader, models.RankElder); err != nil {
		return err
	}
	app, err := s.applications.Get(ctx, applicationID)
	if err != nil || app.GuildID != guildID || app.Status != models.ApplicationPending {
		return NotFoundf("pending application not found")
	}
	app.Status = models.ApplicationRejected
	return s.applications.Save(ctx, app)
}

// Leave removes the caller from the guild. The leader must transfer
// leadership first.
func (s *GuildService) Leave(ctx context.Context, guildID, userID string) error {
	member, err := s.members.Get(ctx, guildID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("not a member of this guild")
		}
		return err
	}

	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		return err
	}
	if guild.LeaderID == userID {
		return InvalidStatef("transfer leadership before leaving")
	}

	if err := s.members.Delete(ctx, member.ID); err != nil {
		return err
	}
	guild.MemberCount--
	return s.guilds.Save(ctx, guild)
}

// Kick removes a member. Leaders and co-leaders may kick; the leader cannot
// be kicked.
func (s *GuildService) Kick(ctx context.Context, guildID, kickerID, targetID string) error {
	if _, err := s.requireRank(ctx, guildID, kickerID, models.RankLeader, models.RankCoLeader); err != nil {
		return err
	}

	target, err := s.members.Get(ctx, guildID, targetID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("member not found")
		}
		return err
	}
	if target.Rank == models.RankLeader {
		return InvalidStatef("cannot kick the leader")
	}

	if err := s.members.Delete(ctx, target.ID); err != nil {
		return err
	}
	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		return err
	}
	guild.MemberCount--
	return s.guilds.Save(ctx, guild)
}

// promotionOrder is the member-to-co-leader ladder. Leadership changes hands
// only through TransferLeadership.
var promotionOrder = []models.GuildRank{models.RankMember, models.RankElder, models.RankCoLeader}

// Promote moves a member one step up the rank ladder. Leader only.
func (s *GuildService) Promote(ctx context.Context, guildID, promoterID, targetID string) (models.GuildRank, error) {
	if _, err := s.requireRank(ctx, guildID, promoterID, models.RankLeader); err != nil {
		return "", err
	}

	target, err := s.members.Get(ctx, guildID, targetID)
	if err != nil {
		if err == store.ErrNotFound {
			return "", NotFoundf("member not found")
		}
		return "", err
	}

	idx := -1
	for i, r := range promotionOrder {
		if target.Rank == r {
			idx = i
		}
	}
	if idx == -1 || idx == len(promotionOrder)-1 {
		return "", InvalidStatef("already at highest promotable rank")
	}

	target.Rank = promotionOrder[idx+1]
	if err := s.members.Save(ctx, target); err != nil {
		return "", err
	}
	return target.Rank, nil
}

// TransferLeadership makes target the leader and demotes the old leader to
// co-leader.
func (s *GuildService) TransferLeadership(ctx context.Context, guildID, currentLeaderID, newLeaderID string) error {
	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("guild %s not found", guildID)
		}
		return err
	}
	if guild.LeaderID != currentLeaderID {
		return PermissionDeniedf("only the current leader can transfer leadership")
	}

	newLeader, err := s.members.Get(ctx, guildID, newLeaderID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("new leader must be a guild member")
		}
		return err
	}
	oldLeader, err := s.members.Get(ctx, guildID, currentLeaderID)
	if err != nil {
		return err
	}

	oldLeader.Rank = models.RankCoLeader
	if err := s.members.Save(ctx, oldLeader); err != nil {
		return err
	}
	newLeader.Rank = models.RankLeader
	if err := s.members.Save(ctx, newLeader); err != nil {
		return err
	}

	guild.LeaderID = newLeaderID
	return s.guilds.Save(ctx, guild)
}

type ContributionResult struct {
	Points    int64 `json:"contribution_points"`
	Level     int   `json:"guild_level"`
	LeveledUp bool  `json:"leveled_up"`
}

// Contribute moves currency from the member into the guild treasury. Every
// 10 units contributed earns one contribution point, and points double as
// guild experience. Crossing the level threshold advances the guild one
// level: the threshold is subtracted so surplus experience carries over, and
// perks and member capacity are re-derived from the new level.
func (s *GuildService) Contribute(ctx context.Context, guildID, userID, currency string, amount int64) (*ContributionResult, error) {
	if amount <= 0 {
		return nil, Validationf("contribution amount must be positive")
	}

	member, err := s.members.Get(ctx, guildID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, PermissionDeniedf("not a member of this guild")
		}
		return nil, err
	}

	guild, err := s.guilds.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	// Only coin contributions are balance checked and debited; other types
	// land in the treasury as-is.
	switch currency {
	case "coins":
		if err := s.rewards.Debit(ctx, userID, amount, 0); err != nil {
			return nil, err
		}
		guild.TreasuryCoins += amount
	case "gems":
		guild.TreasuryGems += amount
	default:
		return nil, Validationf("unknown contribution currency %q", currency)
	}

	points := amount / 10
	member.ContributionPoints += points
	member.WeeklyPoints += points
	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}

	guild.WeeklyContribution += amount
	guild.Experience += points

	result := &ContributionResult{Points: points}
	threshold := int64(guild.Level) * guildXPPerLevelStep
	if guild.Experience >= threshold && guild.Level < guildMaxLevel {
		guild.Level++
		guild.Experience -= threshold
		guild.Perks = guildPerks[guild.Level]
		guild.MaxMembers = guildBaseMembers + (guild.Level-1)*guildMembersPerLvl
		result.LeveledUp = true
		log.Info().Str("guild_id", guild.ID).Int("level", guild.Level).Msg("guild level up")
	}
	result.Level = guild.Level

	if err := s.guilds.Save(ctx, guild); err != nil {
		return nil, err
	}
	return result, nil
}

type ChallengeInput struct {
	DefenderGuildID string `json:"defender_guild_id"`
	Type            string `json:"type"`
	TargetValue     int64  `json:"target_value"`
	StakeCoins      int64  `json:"stake_coins"`
	DurationHours   int    `json:"duration_hours"`
}

// CreateChallenge issues a pending challenge from the caller's guild. The
// stake is only verified here; escrow happens at acceptance.
func (s *GuildService) CreateChallenge(ctx context.Context, userID string, in ChallengeInput) (*models.GuildChallenge, error) {
	member, err := s.members.GetByUser(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, PermissionDeniedf("not in a guild")
		}
		return nil, err
	}
	if member.Rank != models.RankLeader && member.Rank != models.RankCoLeader {
		return nil, PermissionDeniedf("must be leader or co-leader to start challenges")
	}
	if in.TargetValue <= 0 {
		return nil, Validationf("target value must be positive")
	}
	if in.StakeCoins < 0 {
		return nil, Validationf("stake must not be negative")
	}
	if in.DurationHours <= 0 {
		in.DurationHours = 24
	}

	defender, err := s.guilds.Get(ctx, in.DefenderGuildID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("defender guild not found")
		}
		return nil, err
	}
	if defender.ID == member.GuildID {
		return nil, Validationf("cannot challenge your own guild")
	}

	challenger, err := s.guilds.Get(ctx, member.GuildID)
	if err != nil {
		return nil, err
	}
	if in.StakeCoins > 0 && challenger.TreasuryCoins < in.StakeCoins {
		return nil, InsufficientFundsf("guild treasury has %d coins, stake needs %d", challenger.TreasuryCoins, in.StakeCoins)
	}

	// EndsAt is the acceptance deadline while pending; accepting restarts
	// the clock with the race duration.
	challenge := &models.GuildChallenge{
		ID:            uuid.NewString(),
		ChallengerID:  challenger.ID,
		DefenderID:    defender.ID,
		Type:          in.Type,
		TargetValue:   in.TargetValue,
		StakeCoins:    in.StakeCoins,
		DurationHours: in.DurationHours,
		Status:        models.ChallengePending,
		EndsAt:        s.Now().UTC().Add(24 * time.Hour),
	}
	if err := s.challenges.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// AcceptChallenge activates a pending challenge and escrows the stake from
// both treasuries.
func (s *GuildService) AcceptChallenge(ctx context.Context, challengeID, accepterID string) error {
	challenge, err := s.challenges.Get(ctx, challengeID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("challenge not found")
		}
		return err
	}
	if challenge.Status != models.ChallengePending {
		return InvalidStatef("challenge is %s, not pending", challenge.Status)
	}

	if _, err := s.requireRank(ctx, challenge.DefenderID, accepterID, models.RankLeader, models.RankCoLeader); err != nil {
		return err
	}

	if challenge.StakeCoins > 0 {
		defender, err := s.guilds.Get(ctx, challenge.DefenderID)
		if err != nil {
			return err
		}
		if defender.TreasuryCoins < challenge.StakeCoins {
			return InsufficientFundsf("guild treasury has %d coins, stake needs %d", defender.TreasuryCoins, challenge.StakeCoins)
		}
		challenger, err := s.guilds.Get(ctx, challenge.ChallengerID)
		if err != nil {
			return err
		}
		if challenger.TreasuryCoins < challenge.StakeCoins {
			return InsufficientFundsf("challenger treasury can no longer cover the stake")
		}

		defender.TreasuryCoins -= challenge.StakeCoins
		if err := s.guilds.Save(ctx, defender); err != nil {
			return err
		}
		challenger.TreasuryCoins -= challenge.StakeCoins
		if err := s.guilds.Save(ctx, challenger); err != nil {
			return err
		}
	}

	challenge.Status = models.ChallengeActive
	challenge.EndsAt = s.Now().UTC().Add(time.Duration(challenge.DurationHours) * time.Hour)
	return s.challenges.Save(ctx, challenge)
}

// DeclineChallenge closes a pending challenge without escrow.
func (s *GuildService) DeclineChallenge(ctx context.Context, challengeID, userID string) error {
	challenge, err := s.challenges.Get(ctx, challengeID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("challenge not found")
		}
		return err
	}
	if challenge.Status != models.ChallengePending {
		return InvalidStatef("challenge is %s, not pending", challenge.Status)
	}
	if _, err := s.requireRank(ctx, challenge.DefenderID, userID, models.RankLeader, models.RankCoLeader); err != nil {
		return err
	}
	challenge.Status = models.ChallengeDeclined
	return s.challenges.Save(ctx, challenge)
}

func (s *GuildService) Challenges(ctx context.Context, guildID string) ([]models.GuildChallenge, error) {
	return s.challenges.ListForGuild(ctx, guildID)
}

// UpdateChallengeProgress adds progress for one side and settles the
// challenge once either side reaches the target. If both sides are at or
// past the target after the update, the challenger wins only with strictly
// more progress; an exact tie goes to the defender. The winner receives both
// stakes.
func (s *GuildService) UpdateChallengeProgress(ctx context.Context, challengeID, guildID string, delta int64) (*models.GuildChallenge, error) {
	if delta <= 0 {
		return nil, Validationf("progress delta must be positive")
	}

	challenge, err := s.challenges.Get(ctx, challengeID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("challenge not found")
		}
		return nil, err
	}
	if challenge.Status != models.ChallengeActive {
		return nil, InvalidStatef("challenge is %s, not active", challenge.Status)
	}

	switch guildID {
	case challenge.ChallengerID:
		challenge.ChallengerProgress += delta
	case challenge.DefenderID:
		challenge.DefenderProgress += delta
	default:
		return nil, Validationf("guild not part of this challenge")
	}

	if challenge.ChallengerProgress >= challenge.TargetValue || challenge.DefenderProgress >= challenge.TargetValue {
		var winnerID string
		switch {
		case challenge.ChallengerProgress >= challenge.TargetValue && challenge.DefenderProgress >= challenge.TargetValue:
			// both crossed in the same update, ties favor the defender
			if challenge.ChallengerProgress > challenge.DefenderProgress {
				winnerID = challenge.ChallengerID
			} else {
				winnerID = challenge.DefenderID
			}
		case challenge.ChallengerProgress >= challenge.TargetValue:
			winnerID = challenge.ChallengerID
		default:
			winnerID = challenge.DefenderID
		}

		challenge.Status = models.ChallengeCompleted
		challenge.WinnerID = winnerID

		if challenge.StakeCoins > 0 {
			winner, err := s.guilds.Get(ctx, winnerID)
			if err != nil {
				return nil, err
			}
			winner.TreasuryCoins += challenge.StakeCoins * 2
			if err := s.guilds.Save(ctx, winner); err != nil {
				return nil, err
			}
		}
		log.Info().Str("challenge_id", challenge.ID).Str("winner", winnerID).Msg("guild challenge settled")
	}

	if err := s.challenges.Save(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}
