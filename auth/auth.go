package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ankitshukla6121/pizzapal/models"
	"github.com/Ankitshukla6121/pizzapal/stores"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

// Domain errors for auth flows.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
)

// Claims is the payload embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Service handles password hashing and session-token issuance.
type Service struct {
	users      stores.UserStore
	signingKey []byte
}

// NewService creates an auth service backed by the given user store.
func NewService(users stores.UserStore, signingKey []byte) *Service {
	return &Service{users: users, signingKey: signingKey}
}

// SignUp hashes the password and creates a new user, returning the
// generated id as a hex string. Returns stores.ErrDuplicateEmail if
// the email is already registered.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	})
	if err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// Authenticate validates credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// bcrypt comparison is constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// IssueToken signs a session token carrying the user's id and name.
func (s *Service) IssueToken(userID, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		UserID: userID,
		Name:   name,
	})
	return token.SignedString(s.signingKey)
}

// ParseToken verifies a session token and returns its claims. Every
// verification failure (malformed, expired, bad signature, wrong
// algorithm) collapses into ErrInvalidToken; callers get no
// diagnostic beyond "not valid".
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
