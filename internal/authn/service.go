package authn

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates login failure. The cause (unknown
// email, wrong password, disabled account) is deliberately collapsed.
var ErrInvalidCredentials = errors.New("authn: invalid credentials")

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	issuer *TokenIssuer
}

// NewService constructs a new Service.
func NewService(repo Repository, issuer *TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Authenticate validates email/password credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken authenticates and returns a signed access token.
func (s *Service) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.issuer.Issue(user)
}

// TokenTTL reports the lifetime of issued tokens.
func (s *Service) TokenTTL() int64 {
	return int64(s.issuer.TTL().Seconds())
}
