// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/snipr-io/snipr/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

// ShortenedURLRepository defines operations for shortened URLs
type ShortenedURLRepository interface {
	Repository[models.ShortenedURL, models.ShortenedURLFilter]
	ByShortCode(ctx context.Context, code string) (*models.ShortenedURL, error)
	ListByUser(ctx context.Context, userID uint, orderBy string, limit, offset int) ([]*models.ShortenedURL, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	IncrementClicks(ctx context.Context, id uint) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// URLAnalyticRepository defines operations for per-visit analytics rows
type URLAnalyticRepository interface {
	Repository[models.URLAnalytic, models.URLAnalyticFilter]
	ListByURL(ctx context.Context, urlID uint, limit, offset int) ([]*models.URLAnalytic, error)
	CountByURL(ctx context.Context, urlID uint) (int64, error)
	RecentByURL(ctx context.Context, urlID uint, limit int) ([]*models.URLAnalytic, error)
}
