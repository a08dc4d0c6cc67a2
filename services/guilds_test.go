package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/models"
)

func createGuild(t testing.TB, env *testEnv, leader *models.User, name, tag string, autoAccept bool) *models.Guild {
	t.Helper()
	guild, err := env.guilds.Create(context.Background(), leader.ID, leader.Username, CreateGuildInput{
		Name:       name,
		Tag:        tag,
		AutoAccept: autoAccept,
	})
	require.NoError(t, err)
	return guild
}

func TestGuildCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)

	_, err := env.guilds.Create(context.Background(), leader.ID, leader.Username, CreateGuildInput{Name: "Reef Raiders", Tag: "ab"})
	assert.Equal(t, KindValidation, KindOf(err))

	guild := createGuild(t, env, leader, "Reef Raiders", "reef", true)
	assert.Equal(t, "REEF", guild.Tag)
	assert.Equal(t, 1, guild.MemberCount)
	assert.Equal(t, 30, guild.MaxMembers)
	assert.Empty(t, guild.Perks)

	// one guild per user
	_, err = env.guilds.Create(context.Background(), leader.ID, leader.Username, CreateGuildInput{Name: "Second", Tag: "SEC"})
	assert.Equal(t, KindConflict, KindOf(err))

	// name and tag are unique
	other := env.createUser(t, "other", 0, 0)
	_, err = env.guilds.Create(context.Background(), other.ID, other.Username, CreateGuildInput{Name: "Reef Raiders", Tag: "XYZ"})
	assert.Equal(t, KindConflict, KindOf(err))
	_, err = env.guilds.Create(context.Background(), other.ID, other.Username, CreateGuildInput{Name: "Other Name", Tag: "reef"})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestGuildJoinAutoAcceptAndApplications(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)
	joiner := env.createUser(t, "joiner", 0, 0)
	applicant := env.createUser(t, "applicant", 0, 0)

	open := createGuild(t, env, leader, "Open Guild", "OPN", true)

	result, err := env.guilds.Join(context.Background(), open.ID, joiner.ID, joiner.Username, "")
	require.NoError(t, err)
	assert.True(t, result.AutoAccepted)
	require.NotNil(t, result.Membership)
	assert.Equal(t, models.RankMember, result.Membership.Rank)

	updated, _, err := env.guilds.Get(context.Background(), open.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MemberCount)

	// joiner is in a guild now
	_, err = env.guilds.Join(context.Background(), open.ID, joiner.ID, joiner.Username, "")
	assert.Equal(t, KindConflict, KindOf(err))

	leader2 := env.createUser(t, "leader2", 0, 0)
	closed := createGuild(t, env, leader2, "Closed Guild", "CLS", false)

	result, err = env.guilds.Join(context.Background(), closed.ID, applicant.ID, applicant.Username, "let me in")
	require.NoError(t, err)
	assert.False(t, result.AutoAccepted)
	require.NotNil(t, result.Application)

	// duplicate application
	_, err = env.guilds.Join(context.Background(), closed.ID, applicant.ID, applicant.Username, "")
	assert.Equal(t, KindConflict, KindOf(err))

	// a plain member of another guild cannot accept
	_, err = env.guilds.AcceptApplication(context.Background(), closed.ID, result.Application.ID, joiner.ID)
	assert.Equal(t, KindPermissionDenied, KindOf(err))

	newMember, err := env.guilds.AcceptApplication(context.Background(), closed.ID, result.Application.ID, leader2.ID)
	require.NoError(t, err)
	assert.Equal(t, applicant.ID, newMember.UserID)

	// accepted application is gone
	_, err = env.guilds.AcceptApplication(context.Background(), closed.ID, result.Application.ID, leader2.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGuildMemberCountAfterJoinsAndKicks(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)
	guild := createGuild(t, env, leader, "Counters", "CNT", true)

	users := make([]*models.User, 4)
	for i := range users {
		users[i] = env.createUser(t, "member"+string(rune('a'+i)), 0, 0)
		_, err := env.guilds.Join(context.Background(), guild.ID, users[i].ID, users[i].Username, "")
		require.NoError(t, err)
	}

	require.NoError(t, env.guilds.Kick(context.Background(), guild.ID, leader.ID, users[0].ID))
	require.NoError(t, env.guilds.Kick(context.Background(), guild.ID, leader.ID, users[1].ID))

	updated, _, err := env.guilds.Get(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, 1+4-2, updated.MemberCount)
}

func TestGuildLeaveAndKickRules(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)
	member := env.createUser(t, "member", 0, 0)
	guild := createGuild(t, env, leader, "Rules", "RUL", true)
	_, err := env.guilds.Join(context.Background(), guild.ID, member.ID, member.Username, "")
	require.NoError(t, err)

	// leader must transfer before leaving
	err = env.guilds.Leave(context.Background(), guild.ID, leader.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// a member cannot kick
	err = env.guilds.Kick(context.Background(), guild.ID, member.ID, leader.ID)
	assert.Equal(t, KindPermissionDenied, KindOf(err))

	// nobody kicks the leader
	require.NoError(t, env.guilds.TransferLeadership(context.Background(), guild.ID, leader.ID, member.ID))
	err = env.guilds.Kick(context.Background(), guild.ID, member.ID, member.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestGuildPromotionLadder(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)
	member := env.createUser(t, "member", 0, 0)
	guild := createGuild(t, env, leader, "Ladder", "LAD", true)
	_, err := env.guilds.Join(context.Background(), guild.ID, member.ID, member.Username, "")
	require.NoError(t, err)

	rank, err := env.guilds.Promote(context.Background(), guild.ID, leader.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RankElder, rank)

	rank, err = env.guilds.Promote(context.Background(), guild.ID, leader.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RankCoLeader, rank)

	// co-leader is the ceiling
	_, err = env.guilds.Promote(context.Background(), guild.ID, leader.ID, member.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// only the leader promotes
	third := env.createUser(t, "third", 0, 0)
	_, err = env.guilds.Join(context.Background(), guild.ID, third.ID, third.Username, "")
	require.NoError(t, err)
	_, err = env.guilds.Promote(context.Background(), guild.ID, member.ID, third.ID)
	assert.Equal(t, KindPermissionDenied, KindOf(err))
}

func TestGuildLeadershipTransfer(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 0, 0)
	member := env.createUser(t, "member", 0, 0)
	guild := createGuild(t, env, leader, "Crown", "CRW", true)
	_, err := env.guilds.Join(context.Background(), guild.ID, member.ID, member.Username, "")
	require.NoError(t, err)

	// only the current leader transfers
	err = env.guilds.TransferLeadership(context.Background(), guild.ID, member.ID, member.ID)
	assert.Equal(t, KindPermissionDenied, KindOf(err))

	require.NoError(t, env.guilds.TransferLeadership(context.Background(), guild.ID, leader.ID, member.ID))

	updated, _, err := env.guilds.Get(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, updated.LeaderID)

	oldLeader, err := env.stores.GuildMembers.Get(context.Background(), guild.ID, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RankCoLeader, oldLeader.Rank)

	newLeader, err := env.stores.GuildMembers.Get(context.Background(), guild.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RankLeader, newLeader.Rank)
}

func TestGuildContributionAccounting(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 5000, 0)
	guild := createGuild(t, env, leader, "Bank", "BNK", true)

	result, err := env.guilds.Contribute(context.Background(), guild.ID, leader.ID, "coins", 500)
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.Points)
	assert.False(t, result.LeveledUp)

	assert.Equal(t, int64(4500), env.user(t, leader.ID).Coins)

	updated, _, err := env.guilds.Get(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.TreasuryCoins)
	assert.Equal(t, int64(500), updated.WeeklyContribution)
	assert.Equal(t, int64(50), updated.Experience)

	member, err := env.stores.GuildMembers.Get(context.Background(), guild.ID, leader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), member.ContributionPoints)
	assert.Equal(t, int64(50), member.WeeklyPoints)

	// insufficient balance
	_, err = env.guilds.Contribute(context.Background(), guild.ID, leader.ID, "coins", 999999)
	assert.Equal(t, KindInsufficientFunds, KindOf(err))

	// gem contributions credit the treasury without touching the balance
	_, err = env.guilds.Contribute(context.Background(), guild.ID, leader.ID, "gems", 30)
	require.NoError(t, err)
	updated, _, err = env.guilds.Get(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), updated.TreasuryGems)
	assert.Equal(t, int64(0), env.user(t, leader.ID).Gems)
}

func TestGuildLevelUpIsSingleStepWithCarryOver(t *testing.T) {
	env := newTestEnv(t)
	leader := env.createUser(t, "leader", 100000, 0)
	guild := createGuild(t, env, leader, "Climb", "CLM", true)

	// 30000 coins -> 3000 points, enough for level 1 (1000) and level 2
	// (2000) thresholds, but only one level may advance per contribution.
	result, err := env.guilds.Contribute(context.Background(), guild.ID, leader.ID, "coins", 30000)
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.Level)

	updated, _, err := env.guilds.Get(context.Background(), guild.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, int64(2000), updated.Experience) // 3000 - 1000 carried
	assert.Equal(t, []string{"bonus_xp_5"}, updated.Perks)
	assert.Equal(t, 35, updated.MaxMembers)

	// the carried XP already covers the level 2 threshold, so the next
	// contribution completes the second level-up
	result, err = env.guilds.Contribute(context.Background(), guild.ID, leader.ID, "coins", 10)
	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 3, result.Level)
}

func TestGuildChallengeEscrowAndSettlement(t *testing.T) {
	env := newTestEnv(t)
	leaderA := env.createUser(t, "leaderA", 50000, 0)
	leaderB := env.createUser(t, "leaderB", 50000, 0)
	guildA := createGuild(t, env, leaderA, "Alpha", "ALP", true)
	guildB := createGuild(t, env, leaderB, "Bravo", "BRV", true)

	// fund both treasuries
	_, err := env.guilds.Contribute(context.Background(), guildA.ID, leaderA.ID, "coins", 5000)
	require.NoError(t, err)
	_, err = env.guilds.Contribute(context.Background(), guildB.ID, leaderB.ID, "coins", 5000)
	require.NoError(t, err)

	challenge, err := env.guilds.CreateChallenge(context.Background(), leaderA.ID, ChallengeInput{
		DefenderGuildID: guildB.ID,
		Type:            "fish_count",
		TargetValue:     100,
		StakeCoins:      1000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChallengePending, challenge.Status)

	// stake is only escrowed at acceptance
	a, _, err := env.guilds.Get(context.Background(), guildA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), a.TreasuryCoins)

	require.NoError(t, env.guilds.AcceptChallenge(context.Background(), challenge.ID, leaderB.ID))

	a, _, err = env.guilds.Get(context.Background(), guildA.ID)
	require.NoError(t, err)
	b, _, err := env.guilds.Get(context.Background(), guildB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), a.TreasuryCoins)
	assert.Equal(t, int64(4000), b.TreasuryCoins)

	// challenger crosses the target first and wins both stakes
	_, err = env.guilds.UpdateChallengeProgress(context.Background(), challenge.ID, guildA.ID, 100)
	require.NoError(t, err)

	settled, err := env.stores.GuildChallenges.Get(context.Background(), challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeCompleted, settled.Status)
	assert.Equal(t, guildA.ID, settled.WinnerID)

	a, _, err = env.guilds.Get(context.Background(), guildA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), a.TreasuryCoins)

	// no progress updates after settlement
	_, err = env.guilds.UpdateChallengeProgress(context.Background(), challenge.ID, guildB.ID, 10)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestGuildChallengeExactTieFavorsDefender(t *testing.T) {
	env := newTestEnv(t)
	leaderA := env.createUser(t, "leaderA", 50000, 0)
	leaderB := env.createUser(t, "leaderB", 50000, 0)
	guildA := createGuild(t, env, leaderA, "Alpha", "ALP", true)
	guildB := createGuild(t, env, leaderB, "Bravo", "BRV", true)

	_, err := env.guilds.Contribute(context.Background(), guildA.ID, leaderA.ID, "coins", 5000)
	require.NoError(t, err)
	_, err = env.guilds.Contribute(context.Background(), guildB.ID, leaderB.ID, "coins", 5000)
	require.NoError(t, err)

	challenge, err := env.guilds.CreateChallenge(context.Background(), leaderA.ID, ChallengeInput{
		DefenderGuildID: guildB.ID,
		Type:            "fish_count",
		TargetValue:     50,
		StakeCoins:      500,
	})
	require.NoError(t, err)
	require.NoError(t, env.guilds.AcceptChallenge(context.Background(), challenge.ID, leaderB.ID))

	// Put the challenger at the target through the store so the settlement
	// check sees both sides cross in the same update.
	active, err := env.stores.GuildChallenges.Get(context.Background(), challenge.ID)
	require.NoError(t, err)
	active.ChallengerProgress = 50
	require.NoError(t, env.stores.GuildChallenges.Save(context.Background(), active))

	_, err = env.guilds.UpdateChallengeProgress(context.Background(), challenge.ID, guildB.ID, 50)
	require.NoError(t, err)

	settled, err := env.stores.GuildChallenges.Get(context.Background(), challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeCompleted, settled.Status)
	assert.Equal(t, guildB.ID, settled.WinnerID)

	// defender pockets both stakes
	b, _, err := env.guilds.Get(context.Background(), guildB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000-500+1000), b.TreasuryCoins)
}

func TestGuildChallengeBothAtTargetHigherWins(t *testing.T) {
	env := newTestEnv(t)
	leaderA := env.createUser(t, "leaderA", 50000, 0)
	leaderB := env.createUser(t, "leaderB", 50000, 0)
	guildA := createGuild(t, env, leaderA, "Alpha", "ALP", true)
	guildB := createGuild(t, env, leaderB, "Bravo", "BRV", true)

	challenge, err := env.guilds.CreateChallenge(context.Background(), leaderA.ID, ChallengeInput{
		DefenderGuildID: guildB.ID,
		Type:            "fish_count",
		TargetValue:     50,
	})
	require.NoError(t, err)
	require.NoError(t, env.guilds.AcceptChallenge(context.Background(), challenge.ID, leaderB.ID))

	// challenger sits past the target when the defender's update lands both
	// sides over the line; strictly more progress breaks the tie
	active, err := env.stores.GuildChallenges.Get(context.Background(), challenge.ID)
	require.NoError(t, err)
	active.ChallengerProgress = 60
	require.NoError(t, env.stores.GuildChallenges.Save(context.Background(), active))

	_, err = env.guilds.UpdateChallengeProgress(context.Background(), challenge.ID, guildB.ID, 50)
	require.NoError(t, err)

	settled, err := env.stores.GuildChallenges.Get(context.Background(), challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChallengeCompleted, settled.Status)
	assert.Equal(t, guildA.ID, settled.WinnerID)
}
