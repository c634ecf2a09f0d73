// Package auth implements password hashing and bearer token handling for
// API accounts.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/manapixels/stock-screener/internal/config"
	"github.com/manapixels/stock-screener/internal/errors"
	"github.com/manapixels/stock-screener/internal/models"
)

// ErrInvalidCredentials is returned for every login failure. Unknown email
// and wrong password are deliberately indistinguishable so callers cannot
// probe which emails are registered.
var ErrInvalidCredentials = errors.NewAuthError("Incorrect username or password")

// ErrInvalidToken is returned for every token resolution failure: bad
// signature, wrong algorithm, expiry, malformed claims or unknown subject.
var ErrInvalidToken = errors.NewAuthError("Could not validate credentials")

// UserLookup is the user store subset the service needs.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service verifies passwords and issues and resolves bearer tokens.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	users  UserLookup
}

// NewService creates an auth service from configuration.
func NewService(cfg config.AuthConfig, users UserLookup) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", cfg.Algorithm)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &Service{
		secret: []byte(cfg.SecretKey),
		method: method,
		ttl:    ttl,
		users:  users,
	}, nil
}

// HashPassword hashes a plaintext password with bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash
func (s *Service) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticate verifies an email/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken creates a signed bearer token whose subject is the email.
func (s *Service) IssueToken(email string) (string, error) {
	return s.issueTokenWithTTL(email, s.ttl)
}

func (s *Service) issueTokenWithTTL(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": jwt.NewNumericDate(time.Now().Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ResolveToken verifies a bearer token and loads the subject's account. The
// accepted signing method is pinned to the configured algorithm.
func (s *Service) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, err := claims.GetSubject()
	if err != nil || email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
