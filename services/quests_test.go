package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/models"
)

// seedQuest installs an active quest directly so tests control the
// objectives instead of depending on sampling.
func seedQuest(t testing.TB, env *testEnv, userID string, objectives []models.QuestObjective, rewards []models.Reward) *models.PlayerQuest {
	t.Helper()
	progress := make([]models.ObjectiveProgress, len(objectives))
	for i, o := range objectives {
		progress[i] = models.ObjectiveProgress{QuestObjective: o}
	}
	q := &models.PlayerQuest{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestID:    "test_quest",
		Type:       models.QuestDaily,
		PeriodKey:  env.now.Format("2006-01-02"),
		Title:      "Test Quest",
		Status:     models.QuestActive,
		Objectives: progress,
		Rewards:    rewards,
		AcceptedAt: env.now,
	}
	require.NoError(t, env.stores.PlayerQuests.Create(context.Background(), q))
	return q
}

func TestDailyQuestGenerationIsStablePerDay(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	first, err := env.quests.Daily(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Re-reading the same day returns the same instances, not a re-roll.
	second, err := env.quests.Daily(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	// The next day rolls fresh instances.
	env.advanceDays(1)
	next, err := env.quests.Daily(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, next, 3)
	assert.NotEqual(t, first[0].ID, next[0].ID)
}

func TestWeeklyQuestGenerationCountsTwo(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	quests, err := env.quests.Weekly(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, quests, 2)
}

func TestObjectiveFiltersMatch(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_type", Target: 3, FishType: "Bass"},
	}, nil)

	// wrong fish type: no update
	updates, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_type", FishType: "Trout", Amount: 1})
	require.NoError(t, err)
	assert.Empty(t, updates)

	updates, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_type", FishType: "Bass", Amount: 1})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.False(t, updates[0].Completed)
}

func TestObjectiveThresholdFilters(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	q := seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_rarity", Target: 2, MinRarity: 3},
		{Type: "catch_size", Target: 1, MinSize: 80},
	}, nil)

	// rarity below the floor is ignored
	updates, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_rarity", Rarity: 2})
	require.NoError(t, err)
	assert.Empty(t, updates)

	// rarity at the floor counts
	_, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_rarity", Rarity: 3})
	require.NoError(t, err)

	// a big enough catch completes the size objective
	_, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_size", Size: 92.5})
	require.NoError(t, err)

	stored, err := env.stores.PlayerQuests.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Objectives[0].Progress)
	assert.Equal(t, int64(1), stored.Objectives[1].Progress)
	assert.Equal(t, models.QuestActive, stored.Status)
}

func TestProgressClampsAtTarget(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	q := seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_fish", Target: 10},
	}, nil)

	updates, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_fish", Amount: 25})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Completed)

	stored, err := env.stores.PlayerQuests.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Objectives[0].Progress)
	assert.Equal(t, models.QuestCompleted, stored.Status)
}

func TestCompletionRequiresAllObjectives(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	q := seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_fish", Target: 10},
		{Type: "perfect_catch", Target: 5},
	}, nil)

	_, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_fish", Amount: 10})
	require.NoError(t, err)
	_, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "perfect_catch", Amount: 3})
	require.NoError(t, err)

	stored, err := env.stores.PlayerQuests.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuestActive, stored.Status)

	updates, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "perfect_catch", Amount: 2})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Completed)
}

func TestQuestClaimPaysAndCreditsSeasonXP(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	q := seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_fish", Target: 1},
	}, []models.Reward{models.CoinReward(200), models.XPReward(160)})

	_, err := env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_fish"})
	require.NoError(t, err)

	rewards, err := env.quests.Claim(context.Background(), u.ID, q.ID)
	require.NoError(t, err)
	assert.Len(t, rewards, 2)

	assert.Equal(t, int64(200), env.user(t, u.ID).Coins)

	// 160 xp over the 150 requirement leaves level 2 with 10 carried over
	status, err := env.season.Status(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Progress.Level)
	assert.Equal(t, int64(10), status.Progress.XP)
}

func TestQuestClaimStateErrors(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	other := env.createUser(t, "other", 0, 0)

	q := seedQuest(t, env, u.ID, []models.QuestObjective{
		{Type: "catch_fish", Target: 2},
	}, []models.Reward{models.CoinReward(100)})

	// not completed yet
	_, err := env.quests.Claim(context.Background(), u.ID, q.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_fish", Amount: 2})
	require.NoError(t, err)

	// someone else's quest looks like a miss
	_, err = env.quests.Claim(context.Background(), other.ID, q.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = env.quests.Claim(context.Background(), u.ID, q.ID)
	require.NoError(t, err)

	// idempotent claim
	_, err = env.quests.Claim(context.Background(), u.ID, q.ID)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, int64(100), env.user(t, u.ID).Coins)
}

func TestStoryChainUnlocksInOrder(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	// story_2 requires story_1
	_, err := env.quests.StartStory(context.Background(), u.ID, "story_2")
	assert.Equal(t, KindInvalidState, KindOf(err))

	q, err := env.quests.StartStory(context.Background(), u.ID, "story_1")
	require.NoError(t, err)

	// only one story quest at a time
	_, err = env.quests.StartStory(context.Background(), u.ID, "story_1")
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = env.quests.ReportProgress(context.Background(), u.ID, models.CatchEvent{Type: "catch_fish", Amount: 5})
	require.NoError(t, err)
	_, err = env.quests.Claim(context.Background(), u.ID, q.ID)
	require.NoError(t, err)

	after := env.user(t, u.ID)
	assert.Contains(t, after.CompletedQuests, "story_1")
	assert.Equal(t, 2, after.CurrentChapter)

	// completed quests cannot restart; the next link is open now
	_, err = env.quests.StartStory(context.Background(), u.ID, "story_1")
	assert.Equal(t, KindConflict, KindOf(err))
	_, err = env.quests.StartStory(context.Background(), u.ID, "story_2")
	require.NoError(t, err)

	progress, err := env.quests.Story(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, progress.ActiveQuest)
	assert.Equal(t, "story_2", progress.ActiveQuest.QuestID)
}

func TestAchievementsUnlockOnceAtThreshold(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)

	u.TotalCatches = 150
	require.NoError(t, env.stores.Users.Save(context.Background(), u))

	unlocked, err := env.quests.CheckAchievements(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 2) // first_catch and catch_100

	// gem rewards landed: 5 + 20
	assert.Equal(t, int64(25), env.user(t, u.ID).Gems)

	// a second check grants nothing new
	unlocked, err = env.quests.CheckAchievements(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, unlocked)

	views, err := env.quests.Achievements(context.Background(), u.ID)
	require.NoError(t, err)
	byID := map[string]bool{}
	for _, v := range views {
		byID[v.ID] = v.Unlocked
	}
	assert.True(t, byID["first_catch"])
	assert.True(t, byID["catch_100"])
	assert.False(t, byID["catch_1000"])
}
