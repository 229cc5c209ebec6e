// Package authapi is the mock authentication backend the panel logs in
// against: accounts with bcrypt password hashes, and HS256 JWTs.
package authapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// AccountStore is the account persistence used by Service.
type AccountStore interface {
	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service registers accounts and issues tokens.
type Service struct {
	accounts AccountStore
	secret   []byte
	cost     int
	now      func() time.Time
}

// NewService creates a Service signing tokens with secret.
func NewService(accounts AccountStore, secret []byte) *Service {
	return &Service{
		accounts: accounts,
		secret:   secret,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// Register creates an account and returns a token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acct, err := s.accounts.CreateAccount(ctx, model.Account{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Role:         "user",
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	return s.respond(acct)
}

// Login checks credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	return s.respond(*acct)
}

// Me returns the profile of the account id.
func (s *Service) Me(ctx context.Context, id int64) (model.User, error) {
	acct, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	return acct.Profile(), nil
}

// ValidateToken checks a token and returns the account id it was issued to.
func (s *Service) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrUnauthorized
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrUnauthorized
	}
	return int64(sub), nil
}

func (s *Service) respond(acct model.Account) (*AuthResponse, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   acct.ID,
		"email": acct.Email,
		"role":  acct.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &AuthResponse{
		Token: signed,
		ID:    acct.ID,
		Name:  acct.Name,
		Email: acct.Email,
		Role:  acct.Role,
	}, nil
}
