package service

import (
	"context"
	"testing"
	"time"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager() security.TokenManager {
	return security.NewTokenManager("test-secret", time.Minute, time.Hour)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager(), nil)

		repo.On("ExistsByEmailOrName", ctx, "jo@farm.example", "jo").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "jo", "jo@farm.example", "hunter22", "farmer")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, "hunter22", user.PasswordHash, "password must be stored hashed")
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateAccount", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager(), nil)

		repo.On("ExistsByEmailOrName", ctx, "jo@farm.example", "jo").Return(true, nil)

		_, _, _, err := svc.Signup(ctx, "jo", "jo@farm.example", "hunter22", "farmer")
		assert.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), testTokenManager(), nil)

		_, _, _, err := svc.Signup(ctx, "", "jo@farm.example", "hunter22", "farmer")
		assert.True(t, domain.IsValidation(err))

		_, _, _, err = svc.Signup(ctx, "jo", "jo@farm.example", "", "farmer")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Name: "jo", Email: "jo@farm.example", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager(), nil)

		repo.On("GetByEmail", ctx, "jo@farm.example").Return(user, nil)

		access, refresh, err := svc.Login(ctx, "jo@farm.example", "hunter22")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager(), nil)

		repo.On("GetByEmail", ctx, "jo@farm.example").Return(user, nil)

		_, _, err := svc.Login(ctx, "jo@farm.example", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager(), nil)

		repo.On("GetByEmail", ctx, "nobody@farm.example").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@farm.example", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_LoginWithGoogle_Disabled(t *testing.T) {
	svc := NewAuthService(new(MockUserRepo), testTokenManager(), nil)

	_, _, err := svc.LoginWithGoogle(context.Background(), "some-google-token")
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	tokens := testTokenManager()
	user := &domain.User{ID: "u1", Email: "jo@farm.example"}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, tokens, nil)

		refresh, err := tokens.GenerateRefreshToken(user.ID, user.Email)
		require.NoError(t, err)
		repo.On("GetByID", ctx, "u1").Return(user, nil)

		access, newRefresh, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})

	t.Run("RejectsAccessToken", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, nil)

		access, err := tokens.GenerateAccessToken(user.ID, user.Email)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, nil)

		_, _, err := svc.RefreshToken(ctx, "not-a-token")
		assert.Error(t, err)
	})
}
