package repository

import (
	"context"
	"fmt"

	"github.com/snipr-io/snipr/models"
	"gorm.io/gorm"
)

// ShortenedURLRepositoryImpl implements ShortenedURLRepository
type ShortenedURLRepositoryImpl struct {
	*BaseRepository[models.ShortenedURL, models.ShortenedURLFilter]
}

func NewShortenedURLRepository(db *gorm.DB) ShortenedURLRepository {
	return &ShortenedURLRepositoryImpl{BaseRepository: NewBaseRepository[models.ShortenedURL, models.ShortenedURLFilter](db)}
}

func (r *ShortenedURLRepositoryImpl) applyFilter(db *gorm.DB, f models.ShortenedURLFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.ShortCode != nil {
		db = db.Where("short_code = ?", *f.ShortCode)
	}
	return db
}

func (r *ShortenedURLRepositoryImpl) ByFilter(ctx context.Context, filter models.ShortenedURLFilter, orderBy string, limit, offset int) ([]*models.ShortenedURL, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortenedURL{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.ShortenedURL
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ShortenedURLRepositoryImpl) Count(ctx context.Context, filter models.ShortenedURLFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.ShortenedURL{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ShortenedURLRepositoryImpl) Exists(ctx context.Context, filter models.ShortenedURLFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *ShortenedURLRepositoryImpl) ByShortCode(ctx context.Context, code string) (*models.ShortenedURL, error) {
	filter := models.ShortenedURLFilter{ShortCode: &code}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ShortenedURLRepositoryImpl) ListByUser(ctx context.Context, userID uint, orderBy string, limit, offset int) ([]*models.ShortenedURL, error) {
	filter := models.ShortenedURLFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, orderBy, limit, offset)
}

func (r *ShortenedURLRepositoryImpl) CountByUser(ctx context.Context, userID uint) (int64, error) {
	filter := models.ShortenedURLFilter{UserID: &userID}
	return r.Count(ctx, filter)
}

// IncrementClicks bumps the denormalized click counter atomically.
func (r *ShortenedURLRepositoryImpl) IncrementClicks(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.ShortenedURL{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1")).Error
}

// UpdateFields applies a partial update. Keys are column names; nil values
// clear the column.
func (r *ShortenedURLRepositoryImpl) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db := r.getDB(ctx)
	result := db.Model(&models.ShortenedURL{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ShortenedURLRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	result := db.Delete(&models.ShortenedURL{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shortened url %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

