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

const (
	seasonMaxLevel     = 50
	seasonLengthDays   = 30
	seasonPremiumPrice = 9.99
)

// SeasonPassService owns the season track: tier generation, XP accrual with
// multi-level carry-over, and tier claims on the free and premium tracks.
type SeasonPassService struct {
	seasons   store.SeasonStore
	players   store.PlayerSeasonStore
	purchases store.PurchaseStore
	rewards   *RewardService

	Now func() time.Time
}

func NewSeasonPassService(seasons store.SeasonStore, players store.PlayerSeasonStore, purchases store.PurchaseStore, rewards *RewardService) *SeasonPassService {
	return &SeasonPassService{
		seasons:   seasons,
		players:   players,
		purchases: purchases,
		rewards:   rewards,
		Now:       time.Now,
	}
}

// generateTiers builds the 50-tier track. RequiredXP on tier L is the XP
// needed to advance from level L to L+1.
func generateTiers(maxLevel int) []models.SeasonPassTier {
	tiers := make([]models.SeasonPassTier, 0, maxLevel)
	for level := 1; level <= maxLevel; level++ {
		var free models.Reward
		switch {
		case level%5 == 0:
			free = models.ItemReward("mystery_box", 1)
		case level%3 == 0:
			free = models.BaitReward("common_bait", 5)
		default:
			free = models.CoinReward(int64(level) * 50)
		}

		var premium models.Reward
		switch {
		case level == maxLevel:
			premium = models.ItemReward("season_rod", 1)
		case level%10 == 0:
			premium = models.ItemReward(fmt.Sprintf("season_cosmetic_%d", level), 1)
		case level%5 == 0:
			premium = models.GemReward(int64(50 + level))
		default:
			premium = models.CoinReward(int64(level) * 100)
		}

		tiers = append(tiers, models.SeasonPassTier{
			Level:         level,
			RequiredXP:    int64(level)*100 + int64(level-1)*50,
			FreeReward:    free,
			PremiumReward: &premium,
		})
	}
	return tiers
}

// Current returns the active season, creating the first one on demand.
func (s *SeasonPassService) Current(ctx context.Context) (*models.SeasonPass, error) {
	season, err := s.seasons.Current(ctx)
	if err == nil {
		return season, nil
	}
	if err != store.ErrNotFound {
		return nil, err
	}

	now := s.Now().UTC()
	season = &models.SeasonPass{
		ID:           uuid.NewString(),
		SeasonNumber: 1,
		Name:         "Season 1: Ocean Explorer",
		StartDate:    now,
		EndDate:      now.AddDate(0, 0, seasonLengthDays),
		MaxLevel:     seasonMaxLevel,
		Tiers:        generateTiers(seasonMaxLevel),
	}
	if err := s.seasons.Create(ctx, season); err != nil {
		return nil, err
	}
	log.Info().Int("season", season.SeasonNumber).Msg("season pass created")
	return season, nil
}

func (s *SeasonPassService) progress(ctx context.Context, userID string, season *models.SeasonPass) (*models.PlayerSeasonPass, error) {
	p, err := s.players.Get(ctx, userID, season.ID)
	if err == store.ErrNotFound {
		p = &models.PlayerSeasonPass{
			ID:       uuid.NewString(),
			UserID:   userID,
			SeasonID: season.ID,
			Level:    1,
		}
		if err := s.players.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return p, err
}

type SeasonStatus struct {
	Season      *models.SeasonPass       `json:"season"`
	Progress    *models.PlayerSeasonPass `json:"progress"`
	XPToNext    int64                    `json:"xp_to_next_level"`
	XPRequired  int64                    `json:"xp_required"`
}

func (s *SeasonPassService) Status(ctx context.Context, userID string) (*SeasonStatus, error) {
	season, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, userID, season)
	if err != nil {
		return nil, err
	}

	status := &SeasonStatus{Season: season, Progress: p}
	if p.Level < season.MaxLevel {
		tier := season.TierFor(p.Level)
		status.XPRequired = tier.RequiredXP
		if remaining := tier.RequiredXP - p.XP; remaining > 0 {
			status.XPToNext = remaining
		}
	}
	return status, nil
}

type SeasonXPResult struct {
	Level        int   `json:"level"`
	XP           int64 `json:"xp"`
	LevelsGained int   `json:"levels_gained"`
}

// AddXP credits season XP, advancing as many levels as the amount covers.
// Each level-up subtracts that level's requirement so the remainder carries
// over. XP reported at max level is accepted but cannot advance further.
func (s *SeasonPassService) AddXP(ctx context.Context, userID string, amount int64) (*SeasonXPResult, error) {
	if amount < 0 {
		return nil, Validationf("xp amount must not be negative")
	}
	season, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.progress(ctx, userID, season)
	if err != nil {
		return nil, err
	}

	if p.Level >= season.MaxLevel {
		return &SeasonXPResult{Level: p.Level, XP: p.XP}, nil
	}

	p.XP += amount
	gained := 0
	for p.Level < season.MaxLevel {
		tier := season.TierFor(p.Level)
		if tier == nil || p.XP < tier.RequiredXP {
			break
		}
		p.XP -= tier.RequiredXP
		p.Level++
		gained++
	}

	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}

	if gained > 0 {
		log.Info().Str("user_id", userID).Int("level", p.Level).Int("levels_gained", gained).Msg("season level up")
	}
	return &SeasonXPResult{Level: p.Level, XP: p.XP, LevelsGained: gained}, nil
}

// ClaimTier pays out one tier reward on one track.
func (s *SeasonPassService) ClaimTier(ctx context.Context, userID string, level int, premium bool) (*models.Reward, error) {
	season, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	tier := season.TierFor(level)
	if tier == nil {
		return nil, Validationf("no tier at level %d", level)
	}

	p, err := s.progress(ctx, userID, season)
	if err != nil {
		return nil, err
	}

	if level > p.Level {
		return nil, InvalidStatef("level %d not reached yet", level)
	}
	if premium && !p.IsPremium {
		return nil, PermissionDeniedf("premium pass required")
	}

	claimed := p.ClaimedFree
	if premium {
		claimed = p.ClaimedPremium
	}
	if containsInt(claimed, level) {
		return nil, Conflictf("tier %d reward already claimed", level)
	}

	reward := tier.FreeReward
	if premium {
		if tier.PremiumReward == nil {
			return nil, InvalidStatef("no premium reward at level %d", level)
		}
		reward = *tier.PremiumReward
	}

	if err := s.rewards.Apply(ctx, userID, []models.Reward{reward}); err != nil {
		return nil, err
	}

	if premium {
		p.ClaimedPremium = append(p.ClaimedPremium, level)
	} else {
		p.ClaimedFree = append(p.ClaimedFree, level)
	}
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Int("level", level).Bool("premium", premium).Msg("season tier claimed")
	return &reward, nil
}

// PurchasePremium activates the premium track. Payment clears upstream; this
// records the unlock and the audit line.
func (s *SeasonPassService) PurchasePremium(ctx context.Context, userID string) error {
	season, err := s.Current(ctx)
	if err != nil {
		return err
	}
	p, err := s.progress(ctx, userID, season)
	if err != nil {
		return err
	}
	if p.IsPremium {
		return Conflictf("premium pass already active")
	}

	p.IsPremium = true
	if err := s.players.Save(ctx, p); err != nil {
		return err
	}

	return s.purchases.Create(ctx, &models.Purchase{
		ID:       uuid.NewString(),
		UserID:   userID,
		ItemType: "season_pass",
		ItemID:   season.ID,
		ItemName: season.Name,
		Price:    seasonPremiumPrice,
		Currency: "usd",
	})
}
