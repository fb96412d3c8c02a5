package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo/repotest"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	pkg_hash "github.com/Skotchmaster/pharmacy/pkg/hash"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

func newTestAuthService(t *testing.T) (*AuthService, *fakePublisher) {
	t.Helper()
	pub := &fakePublisher{}
	return &AuthService{
		Repo:      repotest.New(t),
		Events:    pub,
		JWTSecret: testSecret,
		Now:       func() time.Time { return time.Now() },
	}, pub
}

func TestAuthService_CustomerScenario(t *testing.T) {
	t.Parallel()
	svc, pub := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, tokens.RoleCustomer, transport.RegisterRequest{
		Name: "Ann", Email: "a@b.com", Password: "pw123",
	}))

	res, err := svc.Login(ctx, tokens.RoleCustomer, "a@b.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.Name)
	assert.Equal(t, "a@b.com", res.Email)

	claims, err := tokens.AccessClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleCustomer, claims.Role)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	_, err = svc.Login(ctx, tokens.RoleCustomer, "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, []string{"account_registered", "account_logged_in"}, pub.types())
}

func TestAuthService_UnknownEmailIsUnauthorized(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, tokens.RoleAdmin, "ghost@x.io", "pw")
	require.NoError(t, svc.Register(ctx, tokens.RoleAdmin, transport.RegisterRequest{Email: "real@x.io", Password: "pw"}))
	_, errWrong := svc.Login(ctx, tokens.RoleAdmin, "real@x.io", "nope")

	assert.ErrorIs(t, errUnknown, ErrUnauthorized)
	assert.ErrorIs(t, errWrong, ErrUnauthorized)
	assert.NotErrorIs(t, errUnknown, ErrNotFound)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		kind string
		req  transport.RegisterRequest
	}{
		{"empty email", tokens.RoleAdmin, transport.RegisterRequest{Password: "pw"}},
		{"empty password", tokens.RoleCustomer, transport.RegisterRequest{Email: "a@x.io"}},
		{"unknown kind", "pharmacist", transport.RegisterRequest{Email: "a@x.io", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.kind, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	req := transport.RegisterRequest{Email: "dup@x.io", Password: "pw"}
	require.NoError(t, svc.Register(ctx, tokens.RoleAdmin, req))
	assert.ErrorIs(t, svc.Register(ctx, tokens.RoleAdmin, req), ErrConflict)

	// separate stores per kind
	assert.NoError(t, svc.Register(ctx, tokens.RoleCustomer, req))
}

func TestAuthService_AdminLoginCarriesProfile(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, tokens.RoleAdmin, transport.RegisterRequest{Email: "boss@x.io", Password: "pw"}))
	res, err := svc.Login(ctx, tokens.RoleAdmin, "boss@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Admin", res.Name)
	assert.Equal(t, "Super Admin", res.Role)

	claims, err := tokens.AccessClaimsFromToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, claims.Role)
}

func TestAuthService_LoginUpgradesWeakHash(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	weak, err := pkg_hash.HashPasswordCost("pw123", bcrypt.MinCost)
	require.NoError(t, err)
	c := &models.Customer{Name: "Old", Email: "old@x.io", PasswordHash: weak}
	require.NoError(t, svc.Repo.CreateCustomerIfNotExists(ctx, c))

	_, err = svc.Login(ctx, tokens.RoleCustomer, "old@x.io", "pw123")
	require.NoError(t, err)

	got, err := svc.Repo.CustomerByEmail(ctx, "old@x.io")
	require.NoError(t, err)
	assert.False(t, pkg_hash.NeedsRehash(got.PasswordHash))
	assert.True(t, pkg_hash.CheckPassword(got.PasswordHash, "pw123"))
}
