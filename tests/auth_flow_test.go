package tests

import (
	"testing"
	"time"

	businessflow "github.com/snipr-io/snipr/business_flow"
	"github.com/snipr-io/snipr/app/dto"
	"github.com/snipr-io/snipr/app/services"
	"github.com/snipr-io/snipr/repository"
	testingutil "github.com/snipr-io/snipr/testing"
	"github.com/snipr-io/snipr/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	svc, err := services.NewTokenService(
		time.Hour,
		"snipr-test",
		"snipr-test-clients",
		false,
		"",
		"",
		"test-secret-key-that-is-long-enough",
	)
	require.NoError(t, err)
	return svc
}

func TestAuthFlowRegister(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		userRepo := repository.NewUserRepository(testDB.DB)
		flow := businessflow.NewAuthFlow(userRepo, newTestTokenService(t), bcrypt.MinCost, testDB.DB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.Register(ctx, &dto.RegisterRequest{
				Email:    "new.user@example.com",
				Password: "secret123",
				Name:     utils.ToPtr("New User"),
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotZero(t, resp.ID)
			assert.Equal(t, "new.user@example.com", resp.Email)
			require.NotNil(t, resp.Name)
			assert.Equal(t, "New User", *resp.Name)
		})

		t.Run("EmailStoredVerbatim", func(t *testing.T) {
			resp, err := flow.Register(ctx, &dto.RegisterRequest{
				Email:    "Mixed.Case@Example.COM",
				Password: "secret123",
			}, metadata)
			require.NoError(t, err)
			assert.Equal(t, "Mixed.Case@Example.COM", resp.Email)

			// A different casing is a different account, not a duplicate.
			other, err := flow.Register(ctx, &dto.RegisterRequest{
				Email:    "mixed.case@example.com",
				Password: "secret123",
			}, metadata)
			require.NoError(t, err)
			assert.NotEqual(t, resp.ID, other.ID)
		})

		t.Run("PasswordStoredHashed", func(t *testing.T) {
			_, err := flow.Register(ctx, &dto.RegisterRequest{
				Email:    "hashed@example.com",
				Password: "secret123",
			}, metadata)
			require.NoError(t, err)

			stored, err := userRepo.ByEmail(ctx, "hashed@example.com")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.NotEqual(t, "secret123", stored.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			req := &dto.RegisterRequest{Email: "dup@example.com", Password: "secret123"}
			_, err := flow.Register(ctx, req, metadata)
			require.NoError(t, err)

			_, err = flow.Register(ctx, req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAuthFlowLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		userRepo := repository.NewUserRepository(testDB.DB)
		tokenService := newTestTokenService(t)
		flow := businessflow.NewAuthFlow(userRepo, tokenService, bcrypt.MinCost, testDB.DB)
		ctx := testingutil.CreateTestContext()
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		_, err := flow.Register(ctx, &dto.RegisterRequest{
			Email:    "login@example.com",
			Password: "secret123",
		}, metadata)
		require.NoError(t, err)

		t.Run("Success", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "login@example.com",
				Password: "secret123",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotEmpty(t, resp.Token)

			claims, err := tokenService.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.NotZero(t, claims.UserID)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "login@example.com",
				Password: "wrong-password",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		t.Run("CaseMismatchedEmail", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "LOGIN@example.com",
				Password: "secret123",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		t.Run("UnknownEmail", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "secret123",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		return nil
	})
	require.NoError(t, err)
}
