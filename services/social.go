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
	dailyGiftLimit  = 5
	giftExpiryDays  = 7
	minSearchLength = 2
)

// giftCatalog is the fixed set of sendable gifts. Cost is charged to the
// sender in coins; the reward lands on the recipient at claim time.
var giftCatalog = map[string]models.GiftType{
	"coins_small":  {ID: "coins_small", Name: "Small Coin Pouch", Cost: 0, Reward: models.CoinReward(100)},
	"coins_medium": {ID: "coins_medium", Name: "Coin Bag", Cost: 50, Reward: models.CoinReward(500)},
	"coins_large":  {ID: "coins_large", Name: "Treasure Chest", Cost: 200, Reward: models.CoinReward(2000)},
	"energy_small": {ID: "energy_small", Name: "Energy Drink", Cost: 0, Reward: models.EnergyReward(10)},
	"energy_large": {ID: "energy_large", Name: "Energy Tank", Cost: 100, Reward: models.EnergyReward(50)},
	"bait_common":  {ID: "bait_common", Name: "Common Bait Pack", Cost: 50, Reward: models.BaitReward("common_bait", 10)},
	"bait_rare":    {ID: "bait_rare", Name: "Rare Bait Pack", Cost: 150, Reward: models.BaitReward("rare_bait", 5)},
	"lucky_ticket": {ID: "lucky_ticket", Name: "Lucky Wheel Ticket", Cost: 200, Reward: models.ItemReward("lucky_ticket", 1)},
}

// SocialService owns friendships, the gift pipeline with its daily send
// limit and expiry, notifications, and the activity feed.
type SocialService struct {
	requests      store.FriendRequestStore
	friendships   store.FriendshipStore
	gifts         store.GiftStore
	notifications store.NotificationStore
	activities    store.ActivityStore
	users         store.UserStore
	rewards       *RewardService

	Now func() time.Time
}

func NewSocialService(requests store.FriendRequestStore, friendships store.FriendshipStore, gifts store.GiftStore, notifications store.NotificationStore, activities store.ActivityStore, users store.UserStore, rewards *RewardService) *SocialService {
	return &SocialService{
		requests:      requests,
		friendships:   friendships,
		gifts:         gifts,
		notifications: notifications,
		activities:    activities,
		users:         users,
		rewards:       rewards,
		Now:           time.Now,
	}
}

func (s *SocialService) notify(ctx context.Context, userID, notifType, title, message string) {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("failed to create notification")
	}
}

// SendFriendRequest files a pending request. Duplicate pending requests in
// either direction and existing friendships are rejected.
func (s *SocialService) SendFriendRequest(ctx context.Context, fromID, fromUsername, toID string) (*models.FriendRequest, error) {
	if fromID == toID {
		return nil, Validationf("cannot friend yourself")
	}

	if _, err := s.friendships.FindBetween(ctx, fromID, toID); err == nil {
		return nil, Conflictf("already friends")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	if _, err := s.requests.FindPendingBetween(ctx, fromID, toID); err == nil {
		return nil, Conflictf("friend request already exists")
	} else if err != store.ErrNotFound {
		return nil, err
	}

	req := &models.FriendRequest{
		ID:           uuid.NewString(),
		FromID:       fromID,
		FromUsername: fromUsername,
		ToID:         toID,
		Status:       models.RequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, toID, "friend_request", "New Friend Request", fmt.Sprintf("%s wants to be your friend!", fromUsername))
	return req, nil
}

func (s *SocialService) FriendRequests(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.requests.ListIncoming(ctx, userID)
}

// AcceptFriendRequest creates the friendship and notifies the sender.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, requestID, userID string) (*models.Friendship, error) {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil || req.ToID != userID || req.Status != models.RequestPending {
		return nil, NotFoundf("friend request not found")
	}

	friendship := &models.Friendship{
		ID:      uuid.NewString(),
		User1ID: req.FromID,
		User2ID: req.ToID,
	}
	if err := s.friendships.Create(ctx, friendship); err != nil {
		return nil, err
	}

	req.Status = models.RequestAccepted
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, err
	}

	accepter, err := s.users.Get(ctx, userID)
	name := "A player"
	if err == nil {
		name = accepter.Username
	}
	s.notify(ctx, req.FromID, "friend_accepted", "Friend Request Accepted!", fmt.Sprintf("%s accepted your friend request!", name))
	return friendship, nil
}

func (s *SocialService) RejectFriendRequest(ctx context.Context, requestID, userID string) error {
	req, err := s.requests.Get(ctx, requestID)
	if err != nil || req.ToID != userID || req.Status != models.RequestPending {
		return NotFoundf("friend request not found")
	}
	req.Status = models.RequestRejected
	return s.requests.Save(ctx, req)
}

type FriendView struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Level        int    `json:"level"`
	TotalCatches int64  `json:"total_catches"`
	FriendshipID string `json:"friendship_id"`
	GiftsSent    int64  `json:"gifts_sent"`
}

func (s *SocialService) Friends(ctx context.Context, userID string) ([]FriendView, error) {
	friendships, err := s.friendships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]FriendView, 0, len(friendships))
	for _, fs := range friendships {
		friend, err := s.users.Get(ctx, fs.Other(userID))
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return nil, err
		}
		friends = append(friends, FriendView{
			UserID:       friend.ID,
			Username:     friend.Username,
			Level:        friend.Level,
			TotalCatches: friend.TotalCatches,
			FriendshipID: fs.ID,
			GiftsSent:    fs.GiftsSent,
		})
	}
	return friends, nil
}

func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	fs, err := s.friendships.FindBetween(ctx, userID, friendID)
	if err != nil {
		if err == store.ErrNotFound {
			return NotFoundf("friendship not found")
		}
		return err
	}
	return s.friendships.Delete(ctx, fs.ID)
}

// GiftTypes returns the sendable gift catalog.
func (s *SocialService) GiftTypes() []models.GiftType {
	types := make([]models.GiftType, 0, len(giftCatalog))
	for _, id := range []string{"coins_small", "coins_medium", "coins_large", "energy_small", "energy_large", "bait_common", "bait_rare", "lucky_ticket"} {
		types = append(types, giftCatalog[id])
	}
	return types
}

// SendGift charges the sender and queues a pending gift for the recipient.
// Only friends may exchange gifts and each sender is capped per UTC day.
func (s *SocialService) SendGift(ctx context.Context, fromID, fromUsername, toID, giftTypeID string) (*models.Gift, error) {
	giftType, ok := giftCatalog[giftTypeID]
	if !ok {
		return nil, Validationf("invalid gift type %q", giftTypeID)
	}

	fs, err := s.friendships.FindBetween(ctx, fromID, toID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, PermissionDeniedf("must be friends to send gifts")
		}
		return nil, err
	}

	now := s.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sentToday, err := s.gifts.CountSentSince(ctx, fromID, dayStart)
	if err != nil {
		return nil, err
	}
	if sentToday >= dailyGiftLimit {
		return nil, InvalidStatef("daily gift limit of %d reached", dailyGiftLimit)
	}

	if giftType.Cost > 0 {
		if err := s.rewards.Debit(ctx, fromID, giftType.Cost, 0); err != nil {
			return nil, err
		}
	}

	gift := &models.Gift{
		ID:           uuid.NewString(),
		FromID:       fromID,
		FromUsername: fromUsername,
		ToID:         toID,
		Type:         giftTypeID,
		Status:       models.GiftPending,
		ExpiresAt:    now.AddDate(0, 0, giftExpiryDays),
	}
	gift.CreatedAt = now
	if err := s.gifts.Create(ctx, gift); err != nil {
		return nil, err
	}

	fs.GiftsSent++
	if err := s.friendships.Save(ctx, fs); err != nil {
		return nil, err
	}

	s.notify(ctx, toID, "gift_received", "You received a gift!", fmt.Sprintf("%s sent you a %s!", fromUsername, giftType.Name))
	return gift, nil
}

// Inbox returns the recipient's pending, unexpired gifts.
func (s *SocialService) Inbox(ctx context.Context, userID string) ([]models.Gift, error) {
	gifts, err := s.gifts.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	unexpired := gifts[:0]
	for _, g := range gifts {
		if g.ExpiresAt.After(now) {
			unexpired = append(unexpired, g)
		}
	}
	return unexpired, nil
}

// ClaimGift pays the gift reward out to the recipient. Claiming an expired
// gift fails and flips the gift to expired as a side effect.
func (s *SocialService) ClaimGift(ctx context.Context, giftID, userID string) (*models.Reward, error) {
	gift, err := s.gifts.Get(ctx, giftID)
	if err != nil || gift.ToID != userID || gift.Status != models.GiftPending {
		return nil, NotFoundf("gift not found")
	}

	if !gift.ExpiresAt.After(s.Now().UTC()) {
		gift.Status = models.GiftExpired
		if err := s.gifts.Save(ctx, gift); err != nil {
			return nil, err
		}
		return nil, InvalidStatef("gift has expired")
	}

	giftType, ok := giftCatalog[gift.Type]
	if !ok {
		return nil, InvalidStatef("gift type %q no longer exists", gift.Type)
	}

	if err := s.rewards.Apply(ctx, userID, []models.Reward{giftType.Reward}); err != nil {
		return nil, err
	}

	gift.Status = models.GiftClaimed
	if err := s.gifts.Save(ctx, gift); err != nil {
		return nil, err
	}
	return &giftType.Reward, nil
}

// ClaimAllGifts claims every pending unexpired gift, returning the count.
func (s *SocialService) ClaimAllGifts(ctx context.Context, userID string) (int, error) {
	gifts, err := s.Inbox(ctx, userID)
	if err != nil {
		return 0, err
	}

	claimed := 0
	for i := range gifts {
		if _, err := s.ClaimGift(ctx, gifts[i].ID, userID); err != nil {
			if KindOf(err) == KindInvalidState {
				continue
			}
			return claimed, err
		}
		claimed++
	}
	return claimed, nil
}

// SearchPlayers finds users by username fragment.
func (s *SocialService) SearchPlayers(ctx context.Context, query string, limit int) ([]models.User, error) {
	if len(query) < minSearchLength {
		return nil, Validationf("query too short")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.users.Search(ctx, query, limit)
}

// PostActivity appends a line to the public feed.
func (s *SocialService) PostActivity(ctx context.Context, userID, username, activityType, message string) (*models.Activity, error) {
	if message == "" {
		return nil, Validationf("activity message is required")
	}
	a := &models.Activity{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Type:      activityType,
		Message:   message,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SocialService) ActivityFeed(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.activities.List(ctx, limit)
}

// LikeActivity toggles the caller's like on a feed entry.
func (s *SocialService) LikeActivity(ctx context.Context, activityID, userID string) (*models.Activity, error) {
	a, err := s.activities.Get(ctx, activityID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, NotFoundf("activity not found")
		}
		return nil, err
	}

	if containsString(a.Likes, userID) {
		likes := a.Likes[:0]
		for _, id := range a.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		a.Likes = likes
	} else {
		a.Likes = append(a.Likes, userID)
	}

	if err := s.activities.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SocialService) Notifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *SocialService) MarkNotificationRead(ctx context.Context, id, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *SocialService) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *SocialService) ClearNotifications(ctx context.Context, userID string) error {
	return s.notifications.Clear(ctx, userID)
}

// ExpireOverdueGifts flips pending gifts past their expiry. Called by the
// background worker.
func (s *SocialService) ExpireOverdueGifts(ctx context.Context) (int, error) {
	overdue, err := s.gifts.ListOverdue(ctx, s.Now().UTC())
	if err != nil {
		return 0, err
	}
	for i := range overdue {
		overdue[i].Status = models.GiftExpired
		if err := s.gifts.Save(ctx, &overdue[i]); err != nil {
			return i, err
		}
	}
	return len(overdue), nil
}
