package models

import (
	"time"
)

// ShortenedURL maps a short code to its destination. The unique index on
// short_code is the source of truth for code uniqueness; insertion races
// surface as duplicate key errors rather than read-then-write checks.
type ShortenedURL struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	OriginalURL string     `gorm:"type:text;not null" json:"original_url"`
	ShortCode   string     `gorm:"uniqueIndex;size:20;not null" json:"short_code"`
	Title       *string    `gorm:"size:255" json:"title,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Clicks      int64      `gorm:"not null;default:0" json:"clicks"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShortenedURL) TableName() string {
	return "shortened_urls"
}

// IsExpired reports whether the expiry instant is strictly before now.
// Links with no expiry never expire.
func (u *ShortenedURL) IsExpired(now time.Time) bool {
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}

// ShortenedURLFilter represents filter criteria for shortened URL queries
type ShortenedURLFilter struct {
	ID        *uint   `json:"id,omitempty"`
	UserID    *uint   `json:"user_id,omitempty"`
	ShortCode *string `json:"short_code,omitempty"`
}
