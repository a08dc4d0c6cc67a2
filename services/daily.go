package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

const dateLayout = "2006-01-02"

// dailyRewardCalendar is the frozen 30-day login calendar. The streak wraps
// back to day 1 after day 30; milestone days carry a special item.
var dailyRewardCalendar = []models.DailyRewardEntry{
	{Day: 1, Type: models.RewardCoins, Amount: 100, PremiumAmount: 200},
	{Day: 2, Type: models.RewardEnergy, Amount: 20, PremiumAmount: 50},
	{Day: 3, Type: models.RewardCoins, Amount: 200, PremiumAmount: 400},
	{Day: 4, Type: models.RewardBait, ItemID: "common_bait", Amount: 5, PremiumAmount: 15},
	{Day: 5, Type: models.RewardCoins, Amount: 300, PremiumAmount: 600},
	{Day: 6, Type: models.RewardGems, Amount: 10, PremiumAmount: 25},
	{Day: 7, Type: models.RewardItem, ItemID: "mystery_box", Amount: 1, PremiumAmount: 2},
	{Day: 8, Type: models.RewardCoins, Amount: 150, PremiumAmount: 300},
	{Day: 9, Type: models.RewardEnergy, Amount: 30, PremiumAmount: 60},
	{Day: 10, Type: models.RewardCoins, Amount: 250, PremiumAmount: 500},
	{Day: 11, Type: models.RewardBait, ItemID: "common_bait", Amount: 10, PremiumAmount: 25},
	{Day: 12, Type: models.RewardCoins, Amount: 350, PremiumAmount: 700},
	{Day: 13, Type: models.RewardGems, Amount: 15, PremiumAmount: 40},
	{Day: 14, Type: models.RewardItem, ItemID: "lucky_ticket", Amount: 1, PremiumAmount: 3},
	{Day: 15, Type: models.RewardCoins, Amount: 200, PremiumAmount: 400},
	{Day: 16, Type: models.RewardEnergy, Amount: 40, PremiumAmount: 80},
	{Day: 17, Type: models.RewardCoins, Amount: 300, PremiumAmount: 600},
	{Day: 18, Type: models.RewardBait, ItemID: "common_bait", Amount: 15, PremiumAmount: 35},
	{Day: 19, Type: models.RewardCoins, Amount: 400, PremiumAmount: 800},
	{Day: 20, Type: models.RewardGems, Amount: 20, PremiumAmount: 50},
	{Day: 21, Type: models.RewardItem, ItemID: "rare_lure", Amount: 1, PremiumAmount: 1},
	{Day: 22, Type: models.RewardCoins, Amount: 250, PremiumAmount: 500},
	{Day: 23, Type: models.RewardEnergy, Amount: 50, PremiumAmount: 100},
	{Day: 24, Type: models.RewardCoins, Amount: 350, PremiumAmount: 700},
	{Day: 25, Type: models.RewardBait, ItemID: "common_bait", Amount: 20, PremiumAmount: 50},
	{Day: 26, Type: models.RewardCoins, Amount: 450, PremiumAmount: 900},
	{Day: 27, Type: models.RewardGems, Amount: 30, PremiumAmount: 75},
	{Day: 28, Type: models.RewardItem, ItemID: "legendary_box", Amount: 1, PremiumAmount: 2},
	{Day: 29, Type: models.RewardCoins, Amount: 500, PremiumAmount: 1000},
	{Day: 30, Type: models.RewardGems, Amount: 50, PremiumAmount: 150},
}

// streakMilestones pay once ever per streak value, even across streak resets.
var streakMilestones = map[int]struct {
	Name    string
	Rewards []models.Reward
}{
	7:  {Name: "Weekly Warrior", Rewards: []models.Reward{models.CoinReward(500), models.GemReward(25)}},
	14: {Name: "Dedicated Fisher", Rewards: []models.Reward{models.CoinReward(1000), models.GemReward(50), models.ItemReward("silver_spoon", 1)}},
	21: {Name: "True Angler", Rewards: []models.Reward{models.CoinReward(2000), models.GemReward(100), models.ItemReward("rod_upgrade", 1)}},
	28: {Name: "Fishing Legend", Rewards: []models.Reward{models.CoinReward(5000), models.GemReward(200), models.ItemReward("golden_badge", 1)}},
}

// DailyRewardService tracks login streaks and pays the daily calendar.
type DailyRewardService struct {
	daily   store.DailyRewardsStore
	rewards *RewardService

	Now func() time.Time
}

func NewDailyRewardService(daily store.DailyRewardsStore, rewards *RewardService) *DailyRewardService {
	return &DailyRewardService{daily: daily, rewards: rewards, Now: time.Now}
}

type DailyClaimResult struct {
	Streak          int                     `json:"streak"`
	Day             int                     `json:"day"`
	Reward          models.Reward           `json:"reward"`
	MilestoneName   string                  `json:"milestone_name,omitempty"`
	MilestoneReward []models.Reward         `json:"milestone_reward,omitempty"`
	Status          *models.PlayerDailyRewards `json:"status"`
}

func (s *DailyRewardService) record(ctx context.Context, userID string) (*models.PlayerDailyRewards, error) {
	d, err := s.daily.Get(ctx, userID)
	if err == store.ErrNotFound {
		return &models.PlayerDailyRewards{UserID: userID}, nil
	}
	return d, err
}

// Claim pays today's calendar reward. One claim per UTC calendar day; the
// streak continues only when yesterday was claimed.
func (s *DailyRewardService) Claim(ctx context.Context, userID string) (*DailyClaimResult, error) {
	now := s.Now().UTC()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	d, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	if d.LastLogin == today {
		return nil, Conflictf("daily reward already claimed today")
	}

	streak := 1
	if d.LastLogin == yesterday {
		streak = d.CurrentStreak + 1
	}

	day := ((streak - 1) % 30) + 1
	entry := dailyRewardCalendar[day-1]

	amount := entry.Amount
	if d.IsPremium {
		amount = entry.PremiumAmount
	}
	reward := models.Reward{Type: entry.Type, Amount: amount, ItemID: entry.ItemID}
	if err := s.rewards.Apply(ctx, userID, []models.Reward{reward}); err != nil {
		return nil, err
	}

	result := &DailyClaimResult{Streak: streak, Day: day, Reward: reward}

	if milestone, ok := streakMilestones[streak]; ok && !containsInt(d.MilestoneClaimed, streak) {
		if err := s.rewards.Apply(ctx, userID, milestone.Rewards); err != nil {
			return nil, err
		}
		d.MilestoneClaimed = append(d.MilestoneClaimed, streak)
		result.MilestoneName = milestone.Name
		result.MilestoneReward = milestone.Rewards
	}

	d.CurrentStreak = streak
	if streak > d.MaxStreak {
		d.MaxStreak = streak
	}
	d.LastLogin = today
	d.TotalLogins++
	d.ClaimedDays = append(d.ClaimedDays, today)

	if err := s.daily.Save(ctx, d); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID).Int("streak", streak).Int("day", day).Msg("daily reward claimed")
	result.Status = d
	return result, nil
}

type DailyStatus struct {
	Status     *models.PlayerDailyRewards `json:"status"`
	CanClaim   bool                       `json:"can_claim"`
	CurrentDay int                        `json:"current_day"`
	NextReward models.DailyRewardEntry    `json:"next_reward"`
	Calendar   []models.DailyRewardEntry  `json:"calendar"`
}

// Status reports the streak state and the reward the next claim would pay.
func (s *DailyRewardService) Status(ctx context.Context, userID string) (*DailyStatus, error) {
	now := s.Now().UTC()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	d, err := s.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	nextStreak := 1
	if d.LastLogin == yesterday {
		nextStreak = d.CurrentStreak + 1
	} else if d.LastLogin == today {
		nextStreak = d.CurrentStreak
	}
	day := ((nextStreak - 1) % 30) + 1

	return &DailyStatus{
		Status:     d,
		CanClaim:   d.LastLogin != today,
		CurrentDay: day,
		NextReward: dailyRewardCalendar[day-1],
		Calendar:   dailyRewardCalendar,
	}, nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
