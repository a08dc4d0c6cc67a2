package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

// testEnv wires every service over the in-memory stores with a controllable
// clock. Advance the clock through env.now; all services share it.
type testEnv struct {
	stores *store.Stores
	now    time.Time

	rewards     *RewardService
	daily       *DailyRewardService
	season      *SeasonPassService
	quests      *QuestService
	guilds      *GuildService
	tournaments *TournamentService
	social      *SocialService
}

func newTestEnv(t rapid.TB) *testEnv {
	t.Helper()

	env := &testEnv{
		stores: store.NewMemoryStores(),
		now:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	env.rewards = NewRewardService(env.stores.Users, env.stores.Inventories)

	env.daily = NewDailyRewardService(env.stores.Daily, env.rewards)
	env.daily.Now = clock

	env.season = NewSeasonPassService(env.stores.Seasons, env.stores.PlayerSeasons, env.stores.Purchases, env.rewards)
	env.season.Now = clock

	env.quests = NewQuestService(env.stores.PlayerQuests, env.stores.Users, env.rewards, env.season)
	env.quests.Now = clock
	env.quests.Sample = NewSeededSampler(42)

	env.guilds = NewGuildService(env.stores.Guilds, env.stores.GuildMembers, env.stores.GuildApplications, env.stores.GuildChallenges, env.rewards)
	env.guilds.Now = clock

	env.tournaments = NewTournamentService(env.stores.Tournaments, env.stores.TournamentEntries, env.stores.TournamentResults, env.stores.Users, env.rewards)
	env.tournaments.Now = clock

	env.social = NewSocialService(env.stores.FriendRequests, env.stores.Friendships, env.stores.Gifts, env.stores.Notifications, env.stores.Activities, env.stores.Users, env.rewards)
	env.social.Now = clock

	return env
}

func (env *testEnv) advance(d time.Duration) { env.now = env.now.Add(d) }

func (env *testEnv) advanceDays(days int) { env.now = env.now.AddDate(0, 0, days) }

func (env *testEnv) createUser(t rapid.TB, username string, coins, gems int64) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Coins:    coins,
		Gems:     gems,
		Level:    1,
	}
	require.NoError(t, env.stores.Users.Create(context.Background(), u))
	return u
}

func (env *testEnv) user(t rapid.TB, id string) *models.User {
	t.Helper()
	u, err := env.stores.Users.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}
