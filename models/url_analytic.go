package models

import (
	"time"
)

// URLAnalytic records a single visit to a shortened URL.
type URLAnalytic struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	URLID     uint      `gorm:"not null;index" json:"url_id"`
	UserAgent *string   `gorm:"type:text" json:"user_agent,omitempty"`
	Referer   *string   `gorm:"type:text" json:"referer,omitempty"`
	IPAddress *string   `gorm:"size:45" json:"ip_address,omitempty"`
	Country   *string   `gorm:"size:64" json:"country,omitempty"`
	ClickedAt time.Time `gorm:"autoCreateTime;index" json:"clicked_at"`

	// Relations
	URL ShortenedURL `gorm:"foreignKey:URLID;constraint:OnDelete:CASCADE" json:"-"`
}

func (URLAnalytic) TableName() string {
	return "url_analytics"
}

// URLAnalyticFilter represents filter criteria for analytics queries
type URLAnalyticFilter struct {
	ID    *uint `json:"id,omitempty"`
	URLID *uint `json:"url_id,omitempty"`
}
