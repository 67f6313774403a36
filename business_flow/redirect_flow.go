package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/snipr-io/snipr/models"
	"github.com/snipr-io/snipr/repository"
	"github.com/snipr-io/snipr/utils"
)

// RedirectFlow resolves a short code and records the visit.
// Public flow, no authentication required.
type RedirectFlow interface {
	Resolve(ctx context.Context, code string, metadata *ClientMetadata) (string, error)
	InvalidateCode(ctx context.Context, code string)
}

// cachedURL is the redis representation of a resolvable link.
type cachedURL struct {
	ID          uint       `json:"id"`
	OriginalURL string     `json:"original_url"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// RedirectFlowImpl implements the redirect business flow
type RedirectFlowImpl struct {
	urlRepo      repository.ShortenedURLRepository
	analyticRepo repository.URLAnalyticRepository
	rc           *redis.Client
	cachePrefix  string
	cacheTTL     time.Duration
}

// NewRedirectFlow creates a new redirect flow instance. rc may be nil;
// the resolver then goes straight to the database.
func NewRedirectFlow(
	urlRepo repository.ShortenedURLRepository,
	analyticRepo repository.URLAnalyticRepository,
	rc *redis.Client,
	cachePrefix string,
	cacheTTL time.Duration,
) RedirectFlow {
	return &RedirectFlowImpl{
		urlRepo:      urlRepo,
		analyticRepo: analyticRepo,
		rc:           rc,
		cachePrefix:  cachePrefix,
		cacheTTL:     cacheTTL,
	}
}

// Resolve looks up the destination for a short code. Expiry is evaluated
// lazily at lookup time. Visit recording is best-effort: a failed analytics
// write never fails the redirect.
func (rf *RedirectFlowImpl) Resolve(ctx context.Context, code string, metadata *ClientMetadata) (string, error) {
	if cached, ok := rf.cacheGet(ctx, code); ok {
		if utils.IsExpiredPtr(cached.ExpiresAt) {
			return "", ErrURLExpired
		}
		rf.recordVisit(ctx, cached.ID, metadata)
		return cached.OriginalURL, nil
	}

	row, err := rf.urlRepo.ByShortCode(ctx, code)
	if err != nil {
		return "", NewBusinessError("REDIRECT_LOOKUP_FAILED", "Failed to lookup short code", err)
	}
	if row == nil {
		return "", ErrURLNotFound
	}
	if row.IsExpired(utils.UTCNow()) {
		return "", ErrURLExpired
	}

	rf.cacheSet(ctx, code, cachedURL{ID: row.ID, OriginalURL: row.OriginalURL, ExpiresAt: row.ExpiresAt})
	rf.recordVisit(ctx, row.ID, metadata)

	return row.OriginalURL, nil
}

// recordVisit inserts an analytics row and bumps the click counter.
// Errors are logged and swallowed so the redirect still goes through.
func (rf *RedirectFlowImpl) recordVisit(ctx context.Context, urlID uint, metadata *ClientMetadata) {
	analytic := &models.URLAnalytic{URLID: urlID}
	if metadata != nil {
		if metadata.UserAgent != "" {
			analytic.UserAgent = utils.ToPtr(metadata.UserAgent)
		}
		if metadata.Referer != "" {
			analytic.Referer = utils.ToPtr(metadata.Referer)
		}
		if metadata.IPAddress != "" {
			analytic.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.Country != "" {
			analytic.Country = utils.ToPtr(metadata.Country)
		}
	}

	// The two writes are independent: a failed analytics insert must not
	// stop the click counter from advancing.
	if err := rf.analyticRepo.Save(ctx, analytic); err != nil {
		log.Printf("failed to record visit for url %d: %v", urlID, err)
	}
	if err := rf.urlRepo.IncrementClicks(ctx, urlID); err != nil {
		log.Printf("failed to increment clicks for url %d: %v", urlID, err)
	}
}

func (rf *RedirectFlowImpl) cacheKey(code string) string {
	return fmt.Sprintf("%surl:%s", rf.cachePrefix, code)
}

func (rf *RedirectFlowImpl) cacheGet(ctx context.Context, code string) (*cachedURL, bool) {
	if rf.rc == nil {
		return nil, false
	}
	bs, err := rf.rc.Get(ctx, rf.cacheKey(code)).Bytes()
	if err != nil || len(bs) == 0 {
		return nil, false
	}
	var out cachedURL
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, false
	}
	return &out, true
}

func (rf *RedirectFlowImpl) cacheSet(ctx context.Context, code string, entry cachedURL) {
	if rf.rc == nil {
		return
	}
	if bs, err := json.Marshal(entry); err == nil {
		_ = rf.rc.Set(ctx, rf.cacheKey(code), bs, rf.cacheTTL).Err()
	}
}

// InvalidateCode drops a short code from the redirect cache. Used by the
// management flow after updates and deletes.
func (rf *RedirectFlowImpl) InvalidateCode(ctx context.Context, code string) {
	if rf.rc == nil {
		return
	}
	_ = rf.rc.Del(ctx, rf.cacheKey(code)).Err()
}
