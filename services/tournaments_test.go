package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fishing-game-backend/models"
)

func createTournament(t testing.TB, env *testEnv, in CreateTournamentInput) *models.Tournament {
	t.Helper()
	tour, err := env.tournaments.Create(context.Background(), in)
	require.NoError(t, err)
	return tour
}

func TestTournamentJoinCollectsFee(t *testing.T) {
	env := newTestEnv(t)
	rich := env.createUser(t, "rich", 1000, 0)
	broke := env.createUser(t, "broke", 100, 0)

	tour := createTournament(t, env, CreateTournamentInput{Name: "Cup", EntryFee: 500})

	entry, err := env.tournaments.Join(context.Background(), tour.ID, rich.ID, rich.Username)
	require.NoError(t, err)
	assert.Equal(t, rich.ID, entry.UserID)
	assert.Equal(t, int64(500), env.user(t, rich.ID).Coins)

	// double join
	_, err = env.tournaments.Join(context.Background(), tour.ID, rich.ID, rich.Username)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, int64(500), env.user(t, rich.ID).Coins)

	// cannot afford the fee
	_, err = env.tournaments.Join(context.Background(), tour.ID, broke.ID, broke.Username)
	assert.Equal(t, KindInsufficientFunds, KindOf(err))

	updated, err := env.tournaments.Get(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentParticipants)
}

func TestTournamentJoinGemFee(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 50)

	tour := createTournament(t, env, CreateTournamentInput{Name: "Gem Cup", EntryFee: 20, FeeCurrency: "gems"})

	_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
	require.NoError(t, err)
	assert.Equal(t, int64(30), env.user(t, u.ID).Gems)
}

func TestTournamentJoinCapacity(t *testing.T) {
	env := newTestEnv(t)
	tour := createTournament(t, env, CreateTournamentInput{Name: "Tiny", MaxParticipants: 2})

	for i := 0; i < 2; i++ {
		u := env.createUser(t, "angler"+string(rune('a'+i)), 0, 0)
		_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
		require.NoError(t, err)
	}

	late := env.createUser(t, "late", 0, 0)
	_, err := env.tournaments.Join(context.Background(), tour.ID, late.ID, late.Username)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestTournamentScoreAccumulation(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	tour := createTournament(t, env, CreateTournamentInput{Name: "Cup"})

	_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
	require.NoError(t, err)

	_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, u.ID, models.ScoreUpdate{
		Score: 100, FishCaught: 3, BiggestFish: 42.5, PerfectCatches: 1, ComboMax: 4,
	})
	require.NoError(t, err)

	// additive counters add, max counters keep the high-water mark
	ranked, err := env.tournaments.SubmitScore(context.Background(), tour.ID, u.ID, models.ScoreUpdate{
		Score: 50, FishCaught: 2, BiggestFish: 30.0, PerfectCatches: 2, ComboMax: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150), ranked.Score)
	assert.Equal(t, int64(5), ranked.FishCaught)
	assert.Equal(t, 42.5, ranked.BiggestFish)
	assert.Equal(t, int64(3), ranked.PerfectCatches)
	assert.Equal(t, int64(9), ranked.ComboMax)
	assert.Equal(t, int64(1), ranked.Rank)
}

func TestTournamentScoreAfterEndRejected(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	tour := createTournament(t, env, CreateTournamentInput{Name: "Short", DurationHours: 1})

	_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
	require.NoError(t, err)

	env.advance(2 * time.Hour)

	_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, u.ID, models.ScoreUpdate{Score: 10})
	assert.Equal(t, KindInvalidState, KindOf(err))
}

// Live rank shares a rank across ties; finalized ranks are sequential. Two
// players on the same score both see live rank 1, but finalize splits them.
func TestTournamentLiveRankSharesTies(t *testing.T) {
	env := newTestEnv(t)
	a := env.createUser(t, "alice", 0, 0)
	b := env.createUser(t, "bob", 0, 0)
	c := env.createUser(t, "carol", 0, 0)
	tour := createTournament(t, env, CreateTournamentInput{Name: "Cup"})

	for _, u := range []*models.User{a, b, c} {
		_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
		require.NoError(t, err)
	}

	_, err := env.tournaments.SubmitScore(context.Background(), tour.ID, a.ID, models.ScoreUpdate{Score: 100, BiggestFish: 10})
	require.NoError(t, err)
	_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, b.ID, models.ScoreUpdate{Score: 100, BiggestFish: 25})
	require.NoError(t, err)
	_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, c.ID, models.ScoreUpdate{Score: 40})
	require.NoError(t, err)

	// both leaders share live rank 1, carol is third
	entryA, err := env.tournaments.Entry(context.Background(), tour.ID, a.ID)
	require.NoError(t, err)
	entryB, err := env.tournaments.Entry(context.Background(), tour.ID, b.ID)
	require.NoError(t, err)
	entryC, err := env.tournaments.Entry(context.Background(), tour.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), entryA.Rank)
	assert.Equal(t, int64(1), entryB.Rank)
	assert.Equal(t, int64(3), entryC.Rank)

	// finalize breaks the tie on biggest fish and assigns sequential ranks
	results, err := env.tournaments.Finalize(context.Background(), tour.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, b.ID, results[0].UserID)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, a.ID, results[1].UserID)
	assert.Equal(t, 2, results[1].Rank)
	assert.Equal(t, 3, results[2].Rank)
}

func TestTournamentFinalizePaysTiers(t *testing.T) {
	env := newTestEnv(t)
	first := env.createUser(t, "first", 0, 0)
	second := env.createUser(t, "second", 0, 0)
	third := env.createUser(t, "third", 0, 0)
	tour := createTournament(t, env, CreateTournamentInput{
		Name: "Cup",
		RewardTiers: []models.TournamentRewardTier{
			{RankMin: 1, RankMax: 1, Coins: 1000, Gems: 10, Title: "gold"},
			{RankMin: 2, RankMax: 2, Coins: 400, Title: "silver"},
		},
	})

	scores := map[string]int64{first.ID: 300, second.ID: 200, third.ID: 100}
	for _, u := range []*models.User{first, second, third} {
		_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
		require.NoError(t, err)
		_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, u.ID, models.ScoreUpdate{Score: scores[u.ID]})
		require.NoError(t, err)
	}

	results, err := env.tournaments.Finalize(context.Background(), tour.ID)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(1000), env.user(t, first.ID).Coins)
	assert.Equal(t, int64(10), env.user(t, first.ID).Gems)
	assert.Equal(t, int64(400), env.user(t, second.ID).Coins)

	// rank 3 falls outside every tier: no reward, participation trophy
	assert.Equal(t, int64(0), env.user(t, third.ID).Coins)
	assert.Equal(t, "participation", results[2].Title)

	// per-player lookup works after finalize
	mine, err := env.tournaments.Results(context.Background(), tour.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Rank)
	assert.Equal(t, "silver", mine.Title)
}

func TestTournamentFinalizeIsOneShot(t *testing.T) {
	env := newTestEnv(t)
	u := env.createUser(t, "angler", 0, 0)
	tour := createTournament(t, env, CreateTournamentInput{Name: "Cup"})

	_, err := env.tournaments.Join(context.Background(), tour.ID, u.ID, u.Username)
	require.NoError(t, err)
	_, err = env.tournaments.SubmitScore(context.Background(), tour.ID, u.ID, models.ScoreUpdate{Score: 10})
	require.NoError(t, err)

	_, err = env.tournaments.Finalize(context.Background(), tour.ID)
	require.NoError(t, err)
	coinsAfter := env.user(t, u.ID).Coins

	// second finalize fails before paying anything again
	_, err = env.tournaments.Finalize(context.Background(), tour.ID)
	assert.Equal(t, KindInvalidState, KindOf(err))
	assert.Equal(t, coinsAfter, env.user(t, u.ID).Coins)

	stored, err := env.tournaments.Get(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TournamentEnded, stored.Status)
	require.Len(t, stored.FinalLeaderboard, 1)
	assert.Equal(t, u.ID, stored.FinalLeaderboard[0].UserID)
}

func TestTournamentActiveExcludesElapsed(t *testing.T) {
	env := newTestEnv(t)
	createTournament(t, env, CreateTournamentInput{Name: "Long", DurationHours: 48})
	createTournament(t, env, CreateTournamentInput{Name: "Short", DurationHours: 1})

	env.advance(2 * time.Hour)

	active, err := env.tournaments.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Long", active[0].Name)
}

func TestDailyTournamentsCreatedOncePerDay(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.tournaments.CreateDailyTournaments(context.Background()))

	active, err := env.tournaments.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)

	var free, premium *models.Tournament
	for i := range active {
		switch active[i].Type {
		case models.TournamentDaily:
			free = &active[i]
		case models.TournamentPremium:
			premium = &active[i]
		}
	}
	require.NotNil(t, free)
	require.NotNil(t, premium)
	assert.Equal(t, int64(0), free.EntryFee)
	assert.Equal(t, 10000, free.MaxParticipants)
	assert.Equal(t, int64(500), premium.EntryFee)
	assert.Equal(t, 500, premium.MaxParticipants)

	// a second run the same day is a no-op
	require.NoError(t, env.tournaments.CreateDailyTournaments(context.Background()))
	active, err = env.tournaments.Active(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// the next day rolls a fresh pair
	env.advanceDays(1)
	require.NoError(t, env.tournaments.CreateDailyTournaments(context.Background()))
	active, err = env.tournaments.Active(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 2) // yesterday's boards have elapsed
}
