// Package testing provides test utilities and database setup for testing the URL shortening service
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/snipr-io/snipr/models"
	"github.com/snipr-io/snipr/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a user with a random unique email and a known password ("TestPass123!")
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        fmt.Sprintf("john.doe.%d@example.com", rand.Intn(100000000)),
		PasswordHash: string(hashedPassword),
		Name:         utils.ToPtr("John Doe"),
	}

	err = tf.DB.DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestShortenedURL creates a shortened URL owned by the given user
func (tf *TestFixtures) CreateTestShortenedURL(userID uint, shortCode string) (*models.ShortenedURL, error) {
	if shortCode == "" {
		shortCode = fmt.Sprintf("code%04d", rand.Intn(10000))
	}

	url := &models.ShortenedURL{
		UserID:      userID,
		OriginalURL: "https://example.com/some/long/path",
		ShortCode:   shortCode,
		Title:       utils.ToPtr("Example Page"),
	}

	err := tf.DB.DB.Create(url).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test shortened URL: %w", err)
	}

	return url, nil
}

// CreateExpiredShortenedURL creates a shortened URL whose expiry is in the past
func (tf *TestFixtures) CreateExpiredShortenedURL(userID uint, shortCode string) (*models.ShortenedURL, error) {
	if shortCode == "" {
		shortCode = fmt.Sprintf("gone%04d", rand.Intn(10000))
	}

	url := &models.ShortenedURL{
		UserID:      userID,
		OriginalURL: "https://example.com/expired",
		ShortCode:   shortCode,
		ExpiresAt:   utils.ToPtr(utils.UTCNow().Add(-1 * time.Hour)),
	}

	err := tf.DB.DB.Create(url).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create expired shortened URL: %w", err)
	}

	return url, nil
}

// CreateTestAnalytic creates a visit record for the given URL
func (tf *TestFixtures) CreateTestAnalytic(urlID uint) (*models.URLAnalytic, error) {
	analytic := &models.URLAnalytic{
		URLID:     urlID,
		UserAgent: utils.ToPtr("Test User Agent"),
		Referer:   utils.ToPtr("https://referrer.example.com"),
		IPAddress: utils.ToPtr("127.0.0.1"),
	}

	err := tf.DB.DB.Create(analytic).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create test analytic: %w", err)
	}

	return analytic, nil
}
