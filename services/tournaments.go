package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

// TournamentService owns the competition boards: entry with fee collection,
// running score accumulation, live ranking, and one-shot finalization that
// freezes the leaderboard and pays the reward tiers.
type TournamentService struct {
	tournaments store.TournamentStore
	entries     store.TournamentEntryStore
	results     store.TournamentResultStore
	users       store.UserStore
	rewards     *RewardService

	Now func() time.Time
}

func NewTournamentService(tournaments store.TournamentStore, entries store.TournamentEntryStore, results store.TournamentResultStore, users store.UserStore, rewards *RewardService) *TournamentService {
	return &TournamentService{
		tournaments: tournaments,
		entries:     entries,
		results:     results,
		users:       users,
		rewards:     rewards,
		Now:         time.Now,
	}
}

type CreateTournamentInput struct {
	Name            string                        `json:"name"`
	Type            models.TournamentType         `json:"type"`
	DurationHours   int                           `json:"duration_hours"`
	EntryFee        int64                         `json:"entry_fee"`
	FeeCurrency     string                        `json:"fee_currency"`
	MaxParticipants int                           `json:"max_participants"`
	RewardTiers     []models.TournamentRewardTier `json:"reward_tiers"`
}

func (s *TournamentService) Create(ctx context.Context, in CreateTournamentInput) (*models.Tournament, error) {
	if in.Name == "" {
		return nil, Validationf("tournament name is required")
	}
	if in.DurationHours <= 0 {
		in.DurationHours = 24
	}
	if in.MaxParticipants <= 0 {
		in.MaxParticipants = 1000
	}
	if in.FeeCurrency == "" {
		in.FeeCurrency = "coins"
	}
	if in.FeeCurrency != "coins" && in.FeeCurrency != "gems" {
		return nil, Validationf("unknown fee currency %q", in.FeeCurrency)
	}
	if len(in.RewardTiers) == 0 {
		in.RewardTiers = defaultRewardTiers
	}

	now := s.Now().UTC()
	t := &models.Tournament{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Type:            in.Type,
		Status:          models.TournamentActive,
		StartTime:       now,
		EndTime:         now.Add(time.Duration(in.DurationHours) * time.Hour),
		EntryFee:        in.EntryFee,
		FeeCurrency:     in.FeeCurrency,
		MaxParticipants: in.MaxParticipants,
		RewardTiers:     in.RewardTiers,
	}
	t.CreatedAt = now
	if err := s.tournaments.Create(ctx, t); err != nil {
		return nil, err
	}
	log.Info().Str("tournament_id", t.ID).Str("type", string(t.Type)).Msg("tournament created")
	return t, nil
}

var defaultRewardTiers = []models.TournamentRewardTier{
	{RankMin: 1, RankMax: 1, Coins: 10000, Gems: 100, Title: "gold"},
	{RankMin: 2, RankMax: 3, Coins: 5000, Gems: 50, Title: "silver"},
	{RankMin: 4, RankMax: 10, Coins: 2500, Gems: 25, Title: "bronze"},
	{RankMin: 11, RankMax: 50, Coins: 1000, Gems: 10},
	{RankMin: 51, RankMax: 100, Coins: 500},
}

func (s *TournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournaments.Get(ctx, id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("tournament %s not found", id)
		}
		return nil, err
	}
	return t, nil
}

// Active lists tournaments that are open and whose window has not elapsed.
func (s *TournamentService) Active(ctx context.Context) ([]models.Tournament, error) {
	all, err := s.tournaments.ListByStatus(ctx, models.TournamentActive)
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	open := all[:0]
	for _, t := range all {
		if t.EndTime.After(now) {
			open = append(open, t)
		}
	}
	return open, nil
}

// Join creates the caller's entry, collecting the entry fee first. A fee
// debit followed by a failed entry insert loses the fee; the two writes are
// not atomic.
func (s *TournamentService) Join(ctx context.Context, tournamentID, userID, username string) (*models.TournamentEntry, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentActive {
		return nil, InvalidStatef("tournament is %s, not active", t.Status)
	}
	if t.CurrentParticipants >= t.MaxParticipants {
		return nil, InvalidStatef("tournament is full")
	}

	if _, err := s.entries.Get(ctx, tournamentID, userID); err == nil {
		return nil, Conflictf("already joined this tournament")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if t.EntryFee > 0 {
		var coins, gems int64
		if t.FeeCurrency == "gems" {
			gems = t.EntryFee
		} else {
			coins = t.EntryFee
		}
		if err := s.rewards.Debit(ctx, userID, coins, gems); err != nil {
			return nil, err
		}
	}

	now := s.Now().UTC()
	entry := &models.TournamentEntry{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		UserID:       userID,
		Username:     username,
		JoinedAt:     now,
	}
	entry.CreatedAt = now
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	t.CurrentParticipants++
	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return entry, nil
}

type RankedEntry struct {
	models.TournamentEntry
	Rank int64 `json:"rank"`
}

// SubmitScore applies a score report to the caller's entry and returns it
// with the live rank. Live rank is one plus the count of strictly higher
// scores, so tied entries share a rank.
func (s *TournamentService) SubmitScore(ctx context.Context, tournamentID, userID string, upd models.ScoreUpdate) (*RankedEntry, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentActive {
		return nil, InvalidStatef("tournament is %s, not active", t.Status)
	}
	if !t.EndTime.After(s.Now().UTC()) {
		return nil, InvalidStatef("tournament has ended")
	}

	entry, err := s.entries.Get(ctx, tournamentID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("not participating in this tournament")
		}
		return nil, err
	}

	updated, err := s.entries.ApplyScore(ctx, entry.ID, upd)
	if err != nil {
		return nil, err
	}

	above, err := s.entries.CountScoreAbove(ctx, tournamentID, updated.Score)
	if err != nil {
		return nil, err
	}
	return &RankedEntry{TournamentEntry: *updated, Rank: above + 1}, nil
}

// Leaderboard returns entries ordered by score then biggest fish, with
// sequential ranks attached.
func (s *TournamentService) Leaderboard(ctx context.Context, tournamentID string, limit int) ([]RankedEntry, error) {
	if _, err := s.Get(ctx, tournamentID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{TournamentEntry: e, Rank: int64(i + 1)}
	}
	return ranked, nil
}

// Entry returns the caller's entry with its live rank.
func (s *TournamentService) Entry(ctx context.Context, tournamentID, userID string) (*RankedEntry, error) {
	entry, err := s.entries.Get(ctx, tournamentID, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("not participating in this tournament")
		}
		return nil, err
	}
	above, err := s.entries.CountScoreAbove(ctx, tournamentID, entry.Score)
	if err != nil {
		return nil, err
	}
	return &RankedEntry{TournamentEntry: *entry, Rank: above + 1}, nil
}

// Finalize closes the tournament: entries are ranked by score descending
// with biggest fish as tiebreaker, every participant receives sequential
// final ranks, reward tiers pay by rank range, and the top 100 are frozen
// onto the tournament document. A second finalize fails before any payout.
func (s *TournamentService) Finalize(ctx context.Context, tournamentID string) ([]models.TournamentResult, error) {
	t, err := s.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TournamentEnded {
		return nil, InvalidStatef("tournament already finalized")
	}

	entries, err := s.entries.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	results := make([]models.TournamentResult, 0, len(entries))
	for i, entry := range entries {
		rank := i + 1
		result := models.TournamentResult{
			ID:           uuid.NewString(),
			TournamentID: tournamentID,
			UserID:       entry.UserID,
			Rank:         rank,
			Score:        entry.Score,
		}
		matched := false
		for _, tier := range t.RewardTiers {
			if rank >= tier.RankMin && rank <= tier.RankMax {
				result.RewardCoins = tier.Coins
				result.RewardGems = tier.Gems
				result.Title = tier.Title
				matched = true
				break
			}
		}
		if !matched {
			result.Title = "participation"
		}

		if result.RewardCoins > 0 || result.RewardGems > 0 {
			if err := s.users.AdjustBalances(ctx, entry.UserID, result.RewardCoins, result.RewardGems); err != nil {
				return nil, fmt.Errorf("failed to pay rank %d: %w", rank, err)
			}
		}
		results = append(results, result)
	}

	if len(results) > 0 {
		if err := s.results.CreateBatch(ctx, results); err != nil {
			return nil, err
		}
	}

	snapshot := entries
	if len(snapshot) > 100 {
		snapshot = snapshot[:100]
	}
	t.Status = models.TournamentEnded
	t.FinalLeaderboard = snapshot
	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}

	log.Info().Str("tournament_id", tournamentID).Int("participants", len(results)).Msg("tournament finalized")
	return results, nil
}

// Results returns the caller's finalized outcome, if any.
func (s *TournamentService) Results(ctx context.Context, tournamentID, userID string) (*models.TournamentResult, error) {
	results, err := s.results.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].UserID == userID {
			return &results[i], nil
		}
	}
	return nil, NotFoundf("no result for this tournament")
}

// CreateDailyTournaments creates the paired free and premium boards for the
// current UTC day. Idempotent per day via the type/created-at existence
// check; the scheduler calls this hourly.
func (s *TournamentService) CreateDailyTournaments(ctx context.Context) error {
	now := s.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	exists, err := s.tournaments.ExistsTypeSince(ctx, models.TournamentDaily, midnight)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	today := now.Format("2006-01-02")
	if _, err := s.Create(ctx, CreateTournamentInput{
		Name:            fmt.Sprintf("Daily Catch Challenge - %s", today),
		Type:            models.TournamentDaily,
		DurationHours:   24,
		MaxParticipants: 10000,
		RewardTiers: []models.TournamentRewardTier{
			{RankMin: 1, RankMax: 1, Coins: 5000, Gems: 50, Title: "gold"},
			{RankMin: 2, RankMax: 5, Coins: 2000, Gems: 20, Title: "silver"},
			{RankMin: 6, RankMax: 20, Coins: 1000, Gems: 10, Title: "bronze"},
			{RankMin: 21, RankMax: 100, Coins: 500},
		},
	}); err != nil {
		return err
	}

	if _, err := s.Create(ctx, CreateTournamentInput{
		Name:            fmt.Sprintf("Premium Fisher's Cup - %s", today),
		Type:            models.TournamentPremium,
		DurationHours:   24,
		EntryFee:        500,
		FeeCurrency:     "coins",
		MaxParticipants: 500,
		RewardTiers: []models.TournamentRewardTier{
			{RankMin: 1, RankMax: 1, Coins: 25000, Gems: 200, Title: "gold"},
			{RankMin: 2, RankMax: 3, Coins: 15000, Gems: 100, Title: "silver"},
			{RankMin: 4, RankMax: 10, Coins: 7500, Gems: 50, Title: "bronze"},
			{RankMin: 11, RankMax: 50, Coins: 3000, Gems: 20},
		},
	}); err != nil {
		return err
	}

	log.Info().Str("day", today).Msg("daily tournaments created")
	return nil
}
