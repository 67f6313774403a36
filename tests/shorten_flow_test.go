package tests

import (
	"strings"
	"testing"
	"time"

	businessflow "github.com/snipr-io/snipr/business_flow"
	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/repository"
	testingutil "github.com/snipr-io/snipr/testing"
	"github.com/snipr-io/snipr/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

func TestShortenFlowCreateURL(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		urlRepo := repository.NewShortenedURLRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := businessflow.NewShortenFlow(urlRepo, testBaseURL, 6, 10, testDB.DB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("GeneratedCode", func(t *testing.T) {
			resp, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/some/page",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.ShortCode, 6)
			assert.Equal(t, testBaseURL+"/"+resp.ShortCode, resp.ShortURL)
			assert.Equal(t, "https://example.com/some/page", resp.OriginalURL)
			assert.Zero(t, resp.Clicks)
		})

		t.Run("CustomCode", func(t *testing.T) {
			resp, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/custom",
				CustomCode:  utils.ToPtr("my-link"),
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "my-link", resp.ShortCode)
		})

		t.Run("CustomCodeTaken", func(t *testing.T) {
			_, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/another",
				CustomCode:  utils.ToPtr("my-link"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsShortCodeTaken(err))
		})

		t.Run("CustomCodeTooShort", func(t *testing.T) {
			_, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/x",
				CustomCode:  utils.ToPtr("ab"),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCustomCode(err))
		})

		t.Run("CustomCodeTooLong", func(t *testing.T) {
			_, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/x",
				CustomCode:  utils.ToPtr(strings.Repeat("a", 21)),
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCustomCode(err))
		})

		t.Run("MissingOriginalURL", func(t *testing.T) {
			_, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsOriginalURLRequired(err))
		})

		t.Run("MalformedOriginalURL", func(t *testing.T) {
			_, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "not a url",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidURL(err))
		})

		t.Run("ExpiryStored", func(t *testing.T) {
			expires := utils.UTCNow().Add(48 * time.Hour)
			resp, err := flow.CreateURL(ctx, user.ID, &dto.CreateURLRequest{
				OriginalURL: "https://example.com/timed",
				ExpiresAt:   &expires,
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp.ExpiresAt)
			assert.WithinDuration(t, expires, *resp.ExpiresAt, time.Second)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestGenerateShortCode(t *testing.T) {
	t.Run("Length", func(t *testing.T) {
		for _, n := range []int{3, 6, 20} {
			code, err := businessflow.GenerateShortCode(n)
			require.NoError(t, err)
			assert.Len(t, code, n)
		}
	})

	t.Run("Alphabet", func(t *testing.T) {
		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
		for i := 0; i < 50; i++ {
			code, err := businessflow.GenerateShortCode(6)
			require.NoError(t, err)
			for _, r := range code {
				assert.Contains(t, alphabet, string(r))
			}
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			code, err := businessflow.GenerateShortCode(8)
			require.NoError(t, err)
			seen[code] = true
		}
		// 100 draws from a 64^8 space should not collide
		assert.Len(t, seen, 100)
	})
}
