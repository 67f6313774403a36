// Package businessflow contains the business logic for the application.
package businessflow

import (
	"fmt"
	"strings"

	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information captured per request
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Referer   string `json:"referer,omitempty"`
	Country   string `json:"country,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ShortURLFor joins the public base URL with a short code.
func ShortURLFor(baseURL, code string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), code)
}

// ToURLResponse converts a shortened URL model to its API representation
func ToURLResponse(url models.ShortenedURL, baseURL string) dto.URLResponse {
	updatedAt := url.UpdatedAt
	return dto.URLResponse{
		ID:          url.ID,
		OriginalURL: url.OriginalURL,
		ShortCode:   url.ShortCode,
		ShortURL:    ShortURLFor(baseURL, url.ShortCode),
		Title:       url.Title,
		Description: url.Description,
		Clicks:      url.Clicks,
		ExpiresAt:   url.ExpiresAt,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}

// ToAnalyticDTO converts a visit record to its API representation
func ToAnalyticDTO(a models.URLAnalytic) dto.AnalyticDTO {
	return dto.AnalyticDTO{
		ID:        a.ID,
		UserAgent: a.UserAgent,
		Referer:   a.Referer,
		IPAddress: a.IPAddress,
		Country:   a.Country,
		ClickedAt: a.ClickedAt,
	}
}

// ToAuthUserDTO converts a user model to the registration response shape
func ToAuthUserDTO(user models.User) dto.RegisterResponse {
	return dto.RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
