package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fishing-game-backend/models"
	"fishing-game-backend/store"
)

// RewardService is the shared ledger: every module that grants or charges
// currency and inventory goes through it. Application is additive and routed
// by reward type; xp rewards are skipped here because the owning module
// credits them against the season pass itself.
type RewardService struct {
	users       store.UserStore
	inventories store.InventoryStore
}

func NewRewardService(users store.UserStore, inventories store.InventoryStore) *RewardService {
	return &RewardService{users: users, inventories: inventories}
}

// Apply credits a reward bundle to the user. Coin and gem amounts are folded
// into a single balance adjustment.
func (s *RewardService) Apply(ctx context.Context, userID string, rewards []models.Reward) error {
	var coins, gems int64
	var inventoryRewards []models.Reward

	for _, r := range rewards {
		switch r.Type {
		case models.RewardCoins:
			coins += r.Amount
		case models.RewardGems:
			gems += r.Amount
		case models.RewardEnergy, models.RewardBait, models.RewardItem:
			inventoryRewards = append(inventoryRewards, r)
		case models.RewardXP:
			// credited by the caller against the season pass
		default:
			return Validationf("unknown reward type %q", r.Type)
		}
	}

	if coins != 0 || gems != 0 {
		if err := s.users.AdjustBalances(ctx, userID, coins, gems); err != nil {
			return fmt.Errorf("failed to credit balances: %w", err)
		}
	}

	if len(inventoryRewards) > 0 {
		inv, err := s.Inventory(ctx, userID)
		if err != nil {
			return err
		}
		for _, r := range inventoryRewards {
			switch r.Type {
			case models.RewardEnergy:
				inv.Energy += r.Amount
			case models.RewardBait:
				id := r.ItemID
				if id == "" {
					id = "common_bait"
				}
				inv.Baits[id] += r.Amount
			case models.RewardItem:
				inv.Items[r.ItemID] += r.Amount
			}
		}
		if err := s.inventories.Save(ctx, inv); err != nil {
			return fmt.Errorf("failed to save inventory: %w", err)
		}
	}

	log.Debug().Str("user_id", userID).Int("rewards", len(rewards)).Msg("rewards applied")
	return nil
}

// Debit charges the user after validating the balance. Balances never go
// negative.
func (s *RewardService) Debit(ctx context.Context, userID string, coins, gems int64) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("user %s not found", userID)
		}
		return err
	}
	if u.Coins < coins {
		return InsufficientFundsf("not enough coins: have %d, need %d", u.Coins, coins)
	}
	if u.Gems < gems {
		return InsufficientFundsf("not enough gems: have %d, need %d", u.Gems, gems)
	}
	return s.users.AdjustBalances(ctx, userID, -coins, -gems)
}

// Inventory returns the user's inventory, creating the default document on
// first touch.
func (s *RewardService) Inventory(ctx context.Context, userID string) (*models.PlayerInventory, error) {
	inv, err := s.inventories.Get(ctx, userID)
	if err == store.ErrNotFound {
		inv = &models.PlayerInventory{
			UserID:    userID,
			MaxEnergy: 100,
			Baits:     map[string]int64{},
			Items:     map[string]int64{},
		}
		return inv, nil
	}
	if err != nil {
		return nil, err
	}
	if inv.Baits == nil {
		inv.Baits = map[string]int64{}
	}
	if inv.Items == nil {
		inv.Items = map[string]int64{}
	}
	return inv, nil
}
