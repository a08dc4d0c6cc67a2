package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/models"
)

// seedSeason installs a small hand-built season so XP math is easy to
// follow: level 1 needs 150, level 2 needs 250, cap at level 3.
func seedSeason(t testing.TB, env *testEnv) *models.SeasonPass {
	t.Helper()
	premium1 := models.GemReward(10)
	premium2 := models.GemReward(20)
	season := &models.SeasonPass{
		ID:           uuid.NewString(),
		SeasonNumber: 1,
		Name:         "Test Season",
		StartDate:    env.now,
		EndDate:      env.now.AddDate(0, 0, 30),
		MaxLevel:     3,
		Tiers: []models.SeasonPassTier{
			{Level: 1, RequiredXP: 150, FreeReward: models.CoinReward(50), PremiumReward: &premium1},
			{Level: 2, RequiredXP: 250, FreeReward: models.CoinReward(100), PremiumReward: &premium2},
			{Level: 3, RequiredXP: 400, FreeReward: models.CoinReward(150)},
		},
	}
	require.NoError(t, env.stores.Seasons.Create(context.Background(), season))
	return season
}

func TestSeasonAddXPCarriesOverLevels(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	result, err := env.season.AddXP(context.Background(), u.ID, 400)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Level)
	assert.Equal(t, int64(0), result.XP)
	assert.Equal(t, 2, result.LevelsGained)
}

func TestSeasonAddXPKeepsRemainderBelowRequirement(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	season := seedSeason(t, env)

	result, err := env.season.AddXP(context.Background(), u.ID, 200)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Level)
	assert.Equal(t, int64(50), result.XP)
	assert.Less(t, result.XP, season.TierFor(result.Level).RequiredXP)
}

func TestSeasonAddXPAtMaxLevelIsDiscarded(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	_, err := env.season.AddXP(context.Background(), u.ID, 400)
	require.NoError(t, err)

	result, err := env.season.AddXP(context.Background(), u.ID, 9999)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Level)
	assert.Equal(t, int64(0), result.XP)
	assert.Equal(t, 0, result.LevelsGained)
}

func TestSeasonAddXPRejectsNegative(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	_, err := env.season.AddXP(context.Background(), u.ID, -10)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSeasonDefaultGeneration(t *testing.T) {
	env := newTestEnv(t)

	season, err := env.season.Current(context.Background())
	require.NoError(t, err)

	assert.Len(t, season.Tiers, 50)
	assert.Equal(t, int64(100), season.TierFor(1).RequiredXP)
	assert.Equal(t, int64(250), season.TierFor(2).RequiredXP)

	// Every fifth free tier is a mystery box; the cap tier's premium reward
	// is the season rod.
	assert.Equal(t, "mystery_box", season.TierFor(5).FreeReward.ItemID)
	require.NotNil(t, season.TierFor(50).PremiumReward)
	assert.Equal(t, "season_rod", season.TierFor(50).PremiumReward.ItemID)
}

func TestSeasonClaimTierChecks(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	_, err := env.season.AddXP(context.Background(), u.ID, 200) // level 2
	require.NoError(t, err)

	// unreached level
	_, err = env.season.ClaimTier(context.Background(), u.ID, 3, false)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// premium without the pass
	_, err = env.season.ClaimTier(context.Background(), u.ID, 1, true)
	assert.Equal(t, KindPermissionDenied, KindOf(err))

	// free claim pays out once
	reward, err := env.season.ClaimTier(context.Background(), u.ID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(50), reward.Amount)
	assert.Equal(t, int64(50), env.user(t, u.ID).Coins)

	_, err = env.season.ClaimTier(context.Background(), u.ID, 1, false)
	assert.Equal(t, KindConflict, KindOf(err))

	// out of range level
	_, err = env.season.ClaimTier(context.Background(), u.ID, 99, false)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSeasonPremiumPurchaseAndClaim(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	seedSeason(t, env)

	require.NoError(t, env.season.PurchasePremium(context.Background(), u.ID))
	assert.Equal(t, KindConflict, KindOf(env.season.PurchasePremium(context.Background(), u.ID)))

	reward, err := env.season.ClaimTier(context.Background(), u.ID, 1, true)
	require.NoError(t, err)
	assert.Equal(t, models.RewardGems, reward.Type)
	assert.Equal(t, int64(10), env.user(t, u.ID).Gems)

	// the free track stays claimable independently
	_, err = env.season.ClaimTier(context.Background(), u.ID, 1, false)
	require.NoError(t, err)
}
