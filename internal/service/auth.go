package service

import (
	"context"
	"errors"
	"fmt"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"farmsight-backend/internal/domain"
	"farmsight-backend/internal/repository"
	"farmsight-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrAccountExists      = errors.New("email or username already exists")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	firebase *firebaseauth.Client // nil when Google sign-in is disabled
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, firebase *firebaseauth.Client) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		firebase: firebase,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password, occupation string) (*domain.User, string, string, error) {
	if name == "" {
		return nil, "", "", domain.NewValidationError("name", "is required")
	}
	if email == "" {
		return nil, "", "", domain.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, "", "", domain.NewValidationError("password", "is required")
	}
	if occupation == "" {
		return nil, "", "", domain.NewValidationError("occupation", "is required")
	}

	taken, err := s.userRepo.ExistsByEmailOrName(ctx, email, name)
	if err != nil {
		return nil, "", "", err
	}
	if taken {
		return nil, "", "", ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Occupation:   occupation,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.generateTokens(user)
	return user, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.generateTokens(user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (string, string, error) {
	if s.firebase == nil {
		return "", "", ErrGoogleDisabled
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", fmt.Errorf("verify google id token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		name, _ := token.Claims["name"].(string)
		if name == "" {
			name = email
		}
		user = &domain.User{
			ID:         uuid.NewString(),
			Name:       name,
			Email:      email,
			Occupation: "farmer",
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", "", err
		}
	} else if err != nil {
		return "", "", err
	}

	return s.generateTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}
	return s.generateTokens(user)
}

func (s *authService) Logout(ctx context.Context, refresh string) error {
	// Tokens are stateless; nothing to revoke server-side.
	return nil
}

func (s *authService) generateTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
