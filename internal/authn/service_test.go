package authn

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rollcall-app/rollcall/internal/authz"
	"github.com/rollcall-app/rollcall/internal/platform/httpx"
)

type stubUserRepo struct {
	users map[string]*User
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return user, nil
}

func newTestService(t *testing.T) (*Service, *TokenIssuer) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &stubUserRepo{users: map[string]*User{
		"teacher@school.test": {ID: 3, Email: "teacher@school.test", PasswordHash: string(hash), Role: authz.RoleTeacher, IsActive: true},
		"gone@school.test":    {ID: 4, Email: "gone@school.test", PasswordHash: string(hash), Role: authz.RoleTeacher, IsActive: false},
	}}
	issuer := NewTokenIssuer("test-secret", time.Hour)
	return NewService(repo, issuer), issuer
}

func TestAuthenticate(t *testing.T) {
	service, _ := newTestService(t)

	user, err := service.Authenticate(context.Background(), "teacher@school.test", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, authz.RoleTeacher, user.Role)
}

func TestAuthenticateFailuresCollapse(t *testing.T) {
	service, _ := newTestService(t)

	cases := map[string]struct {
		email, password string
	}{
		"unknown email":    {"nobody@school.test", "correct-horse"},
		"wrong password":   {"teacher@school.test", "wrong"},
		"disabled account": {"gone@school.test", "correct-horse"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.Authenticate(context.Background(), tc.email, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestIssueTokenVerifiable(t *testing.T) {
	service, issuer := newTestService(t)

	raw, err := service.IssueToken(context.Background(), "teacher@school.test", "correct-horse")
	require.NoError(t, err)

	identity, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(3), identity.UserID)
	assert.Equal(t, authz.RoleTeacher, identity.Role)
}
