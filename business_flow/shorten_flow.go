package businessflow

import (
	"context"
	"crypto/rand"
	"net/url"

	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/models"
	"github.com/snipr-io/snipr/repository"
	"github.com/snipr-io/snipr/utils"
	"gorm.io/gorm"
)

// shortCodeAlphabet is the URL-safe alphabet generated codes are drawn from.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// ShortenFlow creates shortened URLs
type ShortenFlow interface {
	CreateURL(ctx context.Context, userID uint, request *dto.CreateURLRequest, metadata *ClientMetadata) (*dto.URLResponse, error)
}

// ShortenFlowImpl implements the shorten business flow
type ShortenFlowImpl struct {
	urlRepo         repository.ShortenedURLRepository
	baseURL         string
	codeLength      int
	maxCodeAttempts int
	db              *gorm.DB
}

// NewShortenFlow creates a new shorten flow instance
func NewShortenFlow(
	urlRepo repository.ShortenedURLRepository,
	baseURL string,
	codeLength int,
	maxCodeAttempts int,
	db *gorm.DB,
) ShortenFlow {
	if codeLength <= 0 {
		codeLength = 6
	}
	if maxCodeAttempts <= 0 {
		maxCodeAttempts = 10
	}
	return &ShortenFlowImpl{
		urlRepo:         urlRepo,
		baseURL:         baseURL,
		codeLength:      codeLength,
		maxCodeAttempts: maxCodeAttempts,
		db:              db,
	}
}

// CreateURL validates the request and persists a new shortened URL.
// The unique index on short_code is the source of truth for collisions:
// custom codes surface the violation as a conflict, generated codes retry
// with a fresh draw up to the attempt cap.
func (sf *ShortenFlowImpl) CreateURL(ctx context.Context, userID uint, request *dto.CreateURLRequest, metadata *ClientMetadata) (*dto.URLResponse, error) {
	if request.OriginalURL == "" {
		return nil, ErrOriginalURLRequired
	}
	if !isValidURL(request.OriginalURL) {
		return nil, ErrInvalidURL
	}

	if request.CustomCode != nil {
		code := *request.CustomCode
		if len(code) < 3 || len(code) > 20 {
			return nil, ErrInvalidCustomCode
		}

		row := sf.newRow(userID, code, request)
		if err := sf.urlRepo.Save(ctx, row); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, ErrShortCodeTaken
			}
			return nil, NewBusinessError("URL_CREATE_FAILED", "Failed to create shortened URL", err)
		}
		resp := ToURLResponse(*row, sf.baseURL)
		return &resp, nil
	}

	for attempt := 0; attempt < sf.maxCodeAttempts; attempt++ {
		code, err := GenerateShortCode(sf.codeLength)
		if err != nil {
			return nil, NewBusinessError("URL_CREATE_FAILED", "Failed to create shortened URL", err)
		}

		row := sf.newRow(userID, code, request)
		err = sf.urlRepo.Save(ctx, row)
		if err == nil {
			resp := ToURLResponse(*row, sf.baseURL)
			return &resp, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, NewBusinessError("URL_CREATE_FAILED", "Failed to create shortened URL", err)
		}
	}

	return nil, ErrCodeGenerationExhausted
}

func (sf *ShortenFlowImpl) newRow(userID uint, code string, request *dto.CreateURLRequest) *models.ShortenedURL {
	return &models.ShortenedURL{
		UserID:      userID,
		OriginalURL: request.OriginalURL,
		ShortCode:   code,
		Title:       request.Title,
		Description: request.Description,
		ExpiresAt:   utils.TimeToUTCPtr(request.ExpiresAt),
	}
}

// GenerateShortCode draws n characters from the URL-safe alphabet using
// crypto/rand with rejection sampling to keep the draw unbiased.
func GenerateShortCode(n int) (string, error) {
	const maxByte = 255 - (256 % len(shortCodeAlphabet))

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) > maxByte {
				continue
			}
			out = append(out, shortCodeAlphabet[int(b)%len(shortCodeAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// isValidURL accepts absolute http(s)-style URLs only.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
