package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"meditation-backend/core/auth"
	"meditation-backend/internal/testdb"
	"meditation-backend/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.PasswordCost = bcrypt.MinCost
}

func TestPasswordHash(t *testing.T) {
	hash, err := auth.HashPassword("breathe-in")
	require.NoError(t, err)
	assert.NotEqual(t, "breathe-in", hash)
	assert.True(t, auth.CheckPasswordHash("breathe-in", hash))
	assert.False(t, auth.CheckPasswordHash("breathe-out", hash))

	again, err := auth.HashPassword("breathe-in")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes are salted")

	_, err = auth.HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
}

func TestNewTokenServiceConfig(t *testing.T) {
	_, err := auth.NewTokenService("", "HS256", time.Hour)
	assert.Error(t, err)

	_, err = auth.NewTokenService("secret", "RS256", time.Hour)
	assert.Error(t, err)

	for _, alg := range []string{"", "HS256", "HS384", "HS512"} {
		_, err := auth.NewTokenService("secret", alg, time.Hour)
		assert.NoError(t, err, alg)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := auth.NewTokenService("secret", "HS256", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue("admin@example.com", true)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email())
	assert.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejects(t *testing.T) {
	svc, err := auth.NewTokenService("secret", "HS256", time.Hour)
	require.NoError(t, err)

	other, err := auth.NewTokenService("other-secret", "HS256", time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue("admin@example.com", true)
	require.NoError(t, err)

	hs512, err := auth.NewTokenService("secret", "HS512", time.Hour)
	require.NoError(t, err)
	wrongAlg, err := hs512.Issue("admin@example.com", true)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin@example.com"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":   "not.a.token",
		"empty":     "",
		"forged":    forged,
		"algorithm": wrongAlg,
		"expired":   expired,
		"no expiry": noExpiry,
	} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, name)
	}
}

func TestRequireAdmin(t *testing.T) {
	_, err := auth.RequireAdmin(&auth.Claims{IsAdmin: false})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = auth.RequireAdmin(nil)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	admin := &auth.Claims{IsAdmin: true}
	got, err := auth.RequireAdmin(admin)
	require.NoError(t, err)
	assert.Same(t, admin, got)
}

func newAccounts(t *testing.T) (*auth.Accounts, *auth.TokenService) {
	tokens, err := auth.NewTokenService("secret", "HS256", time.Hour)
	require.NoError(t, err)
	users := repository.NewUserRepository(testdb.Open(t))
	return auth.NewAccounts(users, tokens), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	accounts, tokens := newAccounts(t)
	ctx := context.Background()

	user, err := accounts.Register(ctx, "calm@example.com", "pw")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "pw", user.PasswordHash)

	_, err = accounts.Register(ctx, "calm@example.com", "other")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	token, err := accounts.Login(ctx, "calm@example.com", "pw")
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "calm@example.com", claims.Email())
	assert.False(t, claims.IsAdmin)

	me, err := accounts.Me(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestLoginFailures(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()
	_, err := accounts.Register(ctx, "calm@example.com", "pw")
	require.NoError(t, err)

	_, err = accounts.Login(ctx, "calm@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = accounts.Login(ctx, "missing@example.com", "pw")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestMeUnknownSubject(t *testing.T) {
	accounts, tokens := newAccounts(t)
	token, err := tokens.Issue("ghost@example.com", false)
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)

	_, err = accounts.Me(context.Background(), claims)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
