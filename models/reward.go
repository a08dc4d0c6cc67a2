package models

type RewardType string

const (
	RewardCoins  RewardType = "coins"
	RewardGems   RewardType = "gems"
	RewardEnergy RewardType = "energy"
	RewardBait   RewardType = "bait"
	RewardItem   RewardType = "item"
	RewardXP     RewardType = "xp"
)

// Reward is a tagged reward variant. Amount is the quantity for currency,
// energy and xp rewards and the stack size for bait/item grants; ItemID names
// the bait or item being granted and is empty otherwise.
type Reward struct {
	Type   RewardType `json:"type"`
	Amount int64      `json:"amount"`
	ItemID string     `json:"item_id,omitempty"`
}

func CoinReward(amount int64) Reward  { return Reward{Type: RewardCoins, Amount: amount} }
func GemReward(amount int64) Reward   { return Reward{Type: RewardGems, Amount: amount} }
func XPReward(amount int64) Reward    { return Reward{Type: RewardXP, Amount: amount} }
func EnergyReward(amount int64) Reward { return Reward{Type: RewardEnergy, Amount: amount} }

func BaitReward(id string, qty int64) Reward {
	return Reward{Type: RewardBait, Amount: qty, ItemID: id}
}

func ItemReward(id string, qty int64) Reward {
	return Reward{Type: RewardItem, Amount: qty, ItemID: id}
}
