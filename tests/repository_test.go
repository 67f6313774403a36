// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/snipr-io/snipr/models"
	"github.com/snipr-io/snipr/repository"
	testingutil "github.com/snipr-io/snipr/testing"
	"github.com/snipr-io/snipr/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewUserRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByID", func(t *testing.T) {
			user := &models.User{
				Email:        "alice@example.com",
				PasswordHash: "not-a-real-hash",
				Name:         utils.ToPtr("Alice"),
			}
			require.NoError(t, repo.Save(ctx, user))
			assert.NotZero(t, user.ID)

			found, err := repo.ByID(ctx, user.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "alice@example.com", found.Email)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			user, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, user)
		})

		t.Run("ByEmail", func(t *testing.T) {
			created, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			found, err := repo.ByEmail(ctx, created.Email)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, created.ID, found.ID)
		})

		t.Run("ByEmailNotFound", func(t *testing.T) {
			found, err := repo.ByEmail(ctx, "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			created, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			dup := &models.User{
				Email:        created.Email,
				PasswordHash: "another-hash",
			}
			err = repo.Save(ctx, dup)
			require.Error(t, err)
			assert.True(t, repository.IsDuplicateKey(err))
		})

		t.Run("Exists", func(t *testing.T) {
			created, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			exists, err := repo.Exists(ctx, models.UserFilter{Email: &created.Email})
			require.NoError(t, err)
			assert.True(t, exists)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestShortenedURLRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewShortenedURLRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("SaveAndByShortCode", func(t *testing.T) {
			url := &models.ShortenedURL{
				UserID:      user.ID,
				OriginalURL: "https://example.com/article",
				ShortCode:   "abc123",
			}
			require.NoError(t, repo.Save(ctx, url))

			found, err := repo.ByShortCode(ctx, "abc123")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, url.ID, found.ID)
			assert.Equal(t, "https://example.com/article", found.OriginalURL)
		})

		t.Run("ByShortCodeNotFound", func(t *testing.T) {
			found, err := repo.ByShortCode(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("DuplicateShortCode", func(t *testing.T) {
			dup := &models.ShortenedURL{
				UserID:      user.ID,
				OriginalURL: "https://example.com/other",
				ShortCode:   "abc123",
			}
			err := repo.Save(ctx, dup)
			require.Error(t, err)
			assert.True(t, repository.IsDuplicateKey(err))
		})

		t.Run("ListByUserAndCount", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			for _, code := range []string{"lst001", "lst002", "lst003"} {
				_, err := fixtures.CreateTestShortenedURL(owner.ID, code)
				require.NoError(t, err)
			}

			urls, err := repo.ListByUser(ctx, owner.ID, "id DESC", 2, 0)
			require.NoError(t, err)
			require.Len(t, urls, 2)
			assert.Equal(t, "lst003", urls[0].ShortCode)
			assert.Equal(t, "lst002", urls[1].ShortCode)

			count, err := repo.CountByUser(ctx, owner.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})

		t.Run("IncrementClicks", func(t *testing.T) {
			url, err := fixtures.CreateTestShortenedURL(user.ID, "clk001")
			require.NoError(t, err)

			require.NoError(t, repo.IncrementClicks(ctx, url.ID))
			require.NoError(t, repo.IncrementClicks(ctx, url.ID))

			found, err := repo.ByID(ctx, url.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, int64(2), found.Clicks)
		})

		t.Run("UpdateFields", func(t *testing.T) {
			url, err := fixtures.CreateTestShortenedURL(user.ID, "upd001")
			require.NoError(t, err)

			fields := map[string]any{
				"title":       "New Title",
				"description": nil,
			}
			require.NoError(t, repo.UpdateFields(ctx, url.ID, fields))

			found, err := repo.ByID(ctx, url.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.Title)
			assert.Equal(t, "New Title", *found.Title)
			assert.Nil(t, found.Description)
		})

		t.Run("UpdateFieldsNotFound", func(t *testing.T) {
			err := repo.UpdateFields(ctx, 999999, map[string]any{"title": "x"})
			assert.Error(t, err)
		})

		t.Run("Delete", func(t *testing.T) {
			url, err := fixtures.CreateTestShortenedURL(user.ID, "del001")
			require.NoError(t, err)

			require.NoError(t, repo.Delete(ctx, url.ID))

			found, err := repo.ByID(ctx, url.ID)
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("DeleteNotFound", func(t *testing.T) {
			err := repo.Delete(ctx, 999999)
			assert.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestURLAnalyticRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewURLAnalyticRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		url, err := fixtures.CreateTestShortenedURL(user.ID, "ana001")
		require.NoError(t, err)

		t.Run("SaveAndList", func(t *testing.T) {
			for i := 0; i < 3; i++ {
				_, err := fixtures.CreateTestAnalytic(url.ID)
				require.NoError(t, err)
			}

			rows, err := repo.ListByURL(ctx, url.ID, 10, 0)
			require.NoError(t, err)
			assert.Len(t, rows, 3)

			count, err := repo.CountByURL(ctx, url.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})

		t.Run("RecentByURL", func(t *testing.T) {
			rows, err := repo.RecentByURL(ctx, url.ID, 2)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("EmptyForUnknownURL", func(t *testing.T) {
			rows, err := repo.ListByURL(ctx, 999999, 10, 0)
			require.NoError(t, err)
			assert.Empty(t, rows)

			count, err := repo.CountByURL(ctx, 999999)
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		return nil
	})
	require.NoError(t, err)
}
