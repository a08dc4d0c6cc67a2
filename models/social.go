package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type FriendRequest struct {
	ID           string        `gorm:"primaryKey;type:uuid" json:"id"`
	FromID       string        `gorm:"index" json:"from_id"`
	FromUsername string        `json:"from_username"`
	ToID         string        `gorm:"index" json:"to_id"`
	Status       RequestStatus `json:"status"`

	Timestamps
}

// Friendship is stored once per pair; the pair is unordered.
type Friendship struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	User1ID   string `gorm:"index" json:"user1_id"`
	User2ID   string `gorm:"index" json:"user2_id"`
	GiftsSent int64  `json:"gifts_sent" gorm:"default:0"`

	Timestamps
}

// Other returns the friend of userID in this pair.
func (f *Friendship) Other(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

type GiftStatus string

const (
	GiftPending GiftStatus = "pending"
	GiftClaimed GiftStatus = "claimed"
	GiftExpired GiftStatus = "expired"
)

type Gift struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	FromID       string     `gorm:"index" json:"from_id"`
	FromUsername string     `json:"from_username"`
	ToID         string     `gorm:"index" json:"to_id"`
	Type         string     `json:"type"`
	Status       GiftStatus `gorm:"index" json:"status"`
	ExpiresAt    time.Time  `json:"expires_at"`

	Timestamps
}

// GiftType is a catalog row: what sending costs and what claiming grants.
type GiftType struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Cost   int64  `json:"cost"`
	Reward Reward `json:"reward"`
}

type Notification struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"index" json:"user_id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Read    bool   `json:"read" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type Activity struct {
	ID       string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string   `gorm:"index" json:"user_id"`
	Username string   `json:"username"`
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Likes    []string `json:"likes" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
