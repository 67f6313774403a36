package repository

import (
	"context"

	"github.com/snipr-io/snipr/models"
	"gorm.io/gorm"
)

// URLAnalyticRepositoryImpl implements URLAnalyticRepository
type URLAnalyticRepositoryImpl struct {
	*BaseRepository[models.URLAnalytic, models.URLAnalyticFilter]
}

func NewURLAnalyticRepository(db *gorm.DB) URLAnalyticRepository {
	return &URLAnalyticRepositoryImpl{BaseRepository: NewBaseRepository[models.URLAnalytic, models.URLAnalyticFilter](db)}
}

func (r *URLAnalyticRepositoryImpl) applyFilter(db *gorm.DB, f models.URLAnalyticFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.URLID != nil {
		db = db.Where("url_id = ?", *f.URLID)
	}
	return db
}

func (r *URLAnalyticRepositoryImpl) ByFilter(ctx context.Context, filter models.URLAnalyticFilter, orderBy string, limit, offset int) ([]*models.URLAnalytic, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.URLAnalytic{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.URLAnalytic
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *URLAnalyticRepositoryImpl) Count(ctx context.Context, filter models.URLAnalyticFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.URLAnalytic{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *URLAnalyticRepositoryImpl) Exists(ctx context.Context, filter models.URLAnalyticFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *URLAnalyticRepositoryImpl) ListByURL(ctx context.Context, urlID uint, limit, offset int) ([]*models.URLAnalytic, error) {
	filter := models.URLAnalyticFilter{URLID: &urlID}
	return r.ByFilter(ctx, filter, "clicked_at DESC", limit, offset)
}

func (r *URLAnalyticRepositoryImpl) CountByURL(ctx context.Context, urlID uint) (int64, error) {
	filter := models.URLAnalyticFilter{URLID: &urlID}
	return r.Count(ctx, filter)
}

func (r *URLAnalyticRepositoryImpl) RecentByURL(ctx context.Context, urlID uint, limit int) ([]*models.URLAnalytic, error) {
	return r.ListByURL(ctx, urlID, limit, 0)
}
