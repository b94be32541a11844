package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/splitnest/internal/domain"
)

// Auth attempt results recorded by AuthUseCase.
const (
	AuthResultSuccess         = "success"
	AuthResultUnknownUser     = "unknown_user"
	AuthResultInvalidPassword = "invalid_password"
)

// AuthUseCase checks configured credentials and issues session tokens.
// There is no lockout: a failed attempt can simply be retried.
type AuthUseCase struct {
	credentials CredentialStore
	tokens      TokenIssuer
	metrics     MetricsRecorder
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(credentials CredentialStore, tokens TokenIssuer, metrics MetricsRecorder) *AuthUseCase {
	return &AuthUseCase{
		credentials: credentials,
		tokens:      tokens,
		metrics:     metrics,
	}
}

// Authenticate verifies username and password against the configured
// credentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	cred, ok := uc.credentials.Lookup(strings.TrimSpace(username))
	if !ok {
		uc.metrics.AuthAttempt(AuthResultUnknownUser)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrUnknownUser)
	}

	if !verifyPassword(cred.Password, password) {
		uc.metrics.AuthAttempt(AuthResultInvalidPassword)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrInvalidPassword)
	}

	uc.metrics.AuthAttempt(AuthResultSuccess)
	return &domain.User{Username: cred.Username}, nil
}

// Login authenticates and returns a signed session token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := uc.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// IsPasswordHash reports whether stored is a bcrypt hash rather than a
// plain text password.
func IsPasswordHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

// verifyPassword compares password with a stored bcrypt hash or plain text
// password.
func verifyPassword(stored, password string) bool {
	if IsPasswordHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
