package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"memories-server/dto"
	"memories-server/internal/models"
	"memories-server/internal/repository"
	"memories-server/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("name, email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = repository.ErrEmailTaken
)

type AuthService struct {
	Users  repository.UserStore
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

func NewAuthService(users repository.UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (s *AuthService) SignUp(ctx context.Context, in dto.SignUpInput) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return s.respond(user)
}

func (s *AuthService) SignIn(ctx context.Context, in dto.SignInInput) (*dto.AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

func (s *AuthService) respond(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Result: user, Token: token}, nil
}

// IssueToken signs an HS256 token carrying the user id as uid and sub.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.Now()
	return utils.SignToken(s.Secret, utils.TokenClaims{
		UID:   user.ID.Hex(),
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	})
}
