package businessflow

import (
	"context"
	"fmt"

	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/models"
	"github.com/snipr-io/snipr/repository"
	"github.com/snipr-io/snipr/utils"
	"gorm.io/gorm"
)

// ListURLsQuery carries normalized list parameters
type ListURLsQuery struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// ListAnalyticsQuery carries normalized analytics page parameters
type ListAnalyticsQuery struct {
	Page  int
	Limit int
}

// sortFields maps accepted sortBy values to database columns. Anything
// outside this set is rejected instead of being passed into ORDER BY.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"clicks":    "clicks",
	"title":     "title",
	"shortCode": "short_code",
}

// URLManagementFlow covers the owner-facing operations on shortened URLs
type URLManagementFlow interface {
	ListURLs(ctx context.Context, userID uint, query ListURLsQuery) (*dto.ListURLsResponse, error)
	GetURL(ctx context.Context, userID, urlID uint) (*dto.URLResponse, error)
	UpdateURL(ctx context.Context, userID, urlID uint, request *dto.UpdateURLRequest) (*dto.URLResponse, error)
	DeleteURL(ctx context.Context, userID, urlID uint) error
	ListAnalytics(ctx context.Context, userID, urlID uint, query ListAnalyticsQuery) (*dto.AnalyticsResponse, error)
}

// URLManagementFlowImpl implements the URL management business flow
type URLManagementFlowImpl struct {
	urlRepo      repository.ShortenedURLRepository
	analyticRepo repository.URLAnalyticRepository
	redirectFlow RedirectFlow
	baseURL      string
	db           *gorm.DB
}

// NewURLManagementFlow creates a new URL management flow instance
func NewURLManagementFlow(
	urlRepo repository.ShortenedURLRepository,
	analyticRepo repository.URLAnalyticRepository,
	redirectFlow RedirectFlow,
	baseURL string,
	db *gorm.DB,
) URLManagementFlow {
	return &URLManagementFlowImpl{
		urlRepo:      urlRepo,
		analyticRepo: analyticRepo,
		redirectFlow: redirectFlow,
		baseURL:      baseURL,
		db:           db,
	}
}

// ListURLs returns one page of the user's URLs with per-row analytics counts
func (uf *URLManagementFlowImpl) ListURLs(ctx context.Context, userID uint, query ListURLsQuery) (*dto.ListURLsResponse, error) {
	if err := validatePageQuery(query.Page, query.Limit); err != nil {
		return nil, err
	}

	column, ok := sortFields[query.SortBy]
	if !ok {
		return nil, ErrInvalidSort
	}
	direction := "DESC"
	if query.Order == "asc" {
		direction = "ASC"
	}
	orderBy := fmt.Sprintf("%s %s", column, direction)

	offset := (query.Page - 1) * query.Limit
	rows, err := uf.urlRepo.ListByUser(ctx, userID, orderBy, query.Limit, offset)
	if err != nil {
		return nil, NewBusinessError("URL_LIST_FAILED", "Failed to fetch URLs", err)
	}

	total, err := uf.urlRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("URL_LIST_FAILED", "Failed to fetch URLs", err)
	}

	urls := make([]dto.URLResponse, 0, len(rows))
	for _, row := range rows {
		item := ToURLResponse(*row, uf.baseURL)
		count, err := uf.analyticRepo.CountByURL(ctx, row.ID)
		if err != nil {
			return nil, NewBusinessError("URL_LIST_FAILED", "Failed to fetch URLs", err)
		}
		item.AnalyticsCount = &count
		urls = append(urls, item)
	}

	return &dto.ListURLsResponse{
		URLs:       urls,
		Pagination: dto.NewPaginationInfo(query.Page, query.Limit, total),
	}, nil
}

// GetURL returns one URL with its ten most recent visits
func (uf *URLManagementFlowImpl) GetURL(ctx context.Context, userID, urlID uint) (*dto.URLResponse, error) {
	row, err := uf.ownedURL(ctx, userID, urlID)
	if err != nil {
		return nil, err
	}

	recent, err := uf.analyticRepo.RecentByURL(ctx, row.ID, utils.RecentAnalyticsLimit)
	if err != nil {
		return nil, NewBusinessError("URL_FETCH_FAILED", "Failed to fetch URL", err)
	}

	resp := ToURLResponse(*row, uf.baseURL)
	resp.RecentAnalytics = make([]dto.AnalyticDTO, 0, len(recent))
	for _, a := range recent {
		resp.RecentAnalytics = append(resp.RecentAnalytics, ToAnalyticDTO(*a))
	}
	return &resp, nil
}

// UpdateURL applies a partial update. Fields absent from the request are
// left as they are, fields sent as null are cleared.
func (uf *URLManagementFlowImpl) UpdateURL(ctx context.Context, userID, urlID uint, request *dto.UpdateURLRequest) (*dto.URLResponse, error) {
	row, err := uf.ownedURL(ctx, userID, urlID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if request.Title.Set {
		fields["title"] = request.Title.Ptr()
	}
	if request.Description.Set {
		fields["description"] = request.Description.Ptr()
	}
	if request.ExpiresAt.Set {
		fields["expires_at"] = utils.TimeToUTCPtr(request.ExpiresAt.Ptr())
	}

	if len(fields) > 0 {
		if err := uf.urlRepo.UpdateFields(ctx, urlID, fields); err != nil {
			return nil, NewBusinessError("URL_UPDATE_FAILED", "Failed to update URL", err)
		}
		uf.redirectFlow.InvalidateCode(ctx, row.ShortCode)
	}

	updated, err := uf.urlRepo.ByID(ctx, urlID)
	if err != nil || updated == nil {
		return nil, NewBusinessError("URL_UPDATE_FAILED", "Failed to update URL", err)
	}

	resp := ToURLResponse(*updated, uf.baseURL)
	return &resp, nil
}

// DeleteURL removes a URL. Cascades take its analytics rows with it.
func (uf *URLManagementFlowImpl) DeleteURL(ctx context.Context, userID, urlID uint) error {
	row, err := uf.ownedURL(ctx, userID, urlID)
	if err != nil {
		return err
	}

	if err := uf.urlRepo.Delete(ctx, urlID); err != nil {
		return NewBusinessError("URL_DELETE_FAILED", "Failed to delete URL", err)
	}
	uf.redirectFlow.InvalidateCode(ctx, row.ShortCode)
	return nil
}

// ListAnalytics returns one page of visit records for an owned URL
func (uf *URLManagementFlowImpl) ListAnalytics(ctx context.Context, userID, urlID uint, query ListAnalyticsQuery) (*dto.AnalyticsResponse, error) {
	if err := validatePageQuery(query.Page, query.Limit); err != nil {
		return nil, err
	}

	if _, err := uf.ownedURL(ctx, userID, urlID); err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.Limit
	rows, err := uf.analyticRepo.ListByURL(ctx, urlID, query.Limit, offset)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FETCH_FAILED", "Failed to fetch analytics", err)
	}

	total, err := uf.analyticRepo.CountByURL(ctx, urlID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FETCH_FAILED", "Failed to fetch analytics", err)
	}

	analytics := make([]dto.AnalyticDTO, 0, len(rows))
	for _, a := range rows {
		analytics = append(analytics, ToAnalyticDTO(*a))
	}

	return &dto.AnalyticsResponse{
		Analytics:  analytics,
		Pagination: dto.NewPaginationInfo(query.Page, query.Limit, total),
	}, nil
}

// ownedURL loads a URL and enforces ownership. Existence is reported
// before ownership so a foreign ID yields Forbidden, not NotFound.
func (uf *URLManagementFlowImpl) ownedURL(ctx context.Context, userID, urlID uint) (*models.ShortenedURL, error) {
	row, err := uf.urlRepo.ByID(ctx, urlID)
	if err != nil {
		return nil, NewBusinessError("URL_FETCH_FAILED", "Failed to fetch URL", err)
	}
	if row == nil {
		return nil, ErrURLNotFound
	}
	if row.UserID != userID {
		return nil, ErrForbidden
	}
	return row, nil
}

func validatePageQuery(page, limit int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	if limit < 1 || limit > utils.MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}
