package models

import "time"

// GuestSession identifies a guest cart. The ID is an opaque token handed
// to the client once and presented on every cart call.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
