package dto

import "time"

// CreateURLRequest represents the shorten payload
type CreateURLRequest struct {
	OriginalURL string     `json:"originalUrl"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CustomCode  *string    `json:"customCode,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// UpdateURLRequest represents a partial update. Absent fields are left
// untouched; fields sent as null are cleared.
type UpdateURLRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	ExpiresAt   Optional[time.Time] `json:"expiresAt"`
}

// URLResponse is the canonical representation of a shortened URL
type URLResponse struct {
	ID              uint          `json:"id"`
	OriginalURL     string        `json:"originalUrl"`
	ShortCode       string        `json:"shortCode"`
	ShortURL        string        `json:"shortUrl"`
	Title           *string       `json:"title"`
	Description     *string       `json:"description"`
	Clicks          int64         `json:"clicks"`
	AnalyticsCount  *int64        `json:"analyticsCount,omitempty"`
	ExpiresAt       *time.Time    `json:"expiresAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
	RecentAnalytics []AnalyticDTO `json:"recentAnalytics,omitempty"`
}

// ListURLsResponse is a page of the owner's URLs
type ListURLsResponse struct {
	URLs       []URLResponse  `json:"urls"`
	Pagination PaginationInfo `json:"pagination"`
}

// AnalyticDTO is a single recorded visit
type AnalyticDTO struct {
	ID        uint      `json:"id"`
	UserAgent *string   `json:"userAgent"`
	Referer   *string   `json:"referer"`
	IPAddress *string   `json:"ipAddress"`
	Country   *string   `json:"country"`
	ClickedAt time.Time `json:"clickedAt"`
}

// AnalyticsResponse is a page of visits for one URL
type AnalyticsResponse struct {
	Analytics  []AnalyticDTO  `json:"analytics"`
	Pagination PaginationInfo `json:"pagination"`
}
