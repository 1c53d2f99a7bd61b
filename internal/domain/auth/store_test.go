package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/kvcache"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/repository/mocks"
	"github.com/rpggio/pmdash/internal/store"
)

func cached(t *testing.T, c kvcache.Cache, key string) (string, bool) {
	t.Helper()
	v, ok, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func TestLogin_DemoAccountsWhenUnreachable(t *testing.T) {
	cases := []struct {
		email, password string
		role            access.Role
	}{
		{"admin@dost.gov.ph", "admin123", access.RoleAdmin},
		{"manager@dost.gov.ph", "manager123", access.RoleProjectManager},
		{"staff@dost.gov.ph", "staff123", access.RoleStaff},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			remote := &mocks.AuthRemote{}
			remote.On("Login", mock.Anything, tc.email, tc.password).Return(auth.Session{}, repository.ErrUnavailable)
			cache := kvcache.NewMemory()

			s := auth.NewStore(remote, cache, nil)
			res := s.Login(context.Background(), tc.email, tc.password)
			require.True(t, res.Success, res.Error)
			require.Equal(t, store.SourceFallback, res.Source)
			require.True(t, s.IsAuthenticated())
			require.Equal(t, tc.role, s.Role())
			require.Equal(t, auth.DemoTokenPrefix+res.Data.ID, s.Token())

			tok, ok := cached(t, cache, kvcache.KeyAuthToken)
			require.True(t, ok)
			require.Equal(t, s.Token(), tok)
			_, ok = cached(t, cache, kvcache.KeyAuthUser)
			require.True(t, ok)
		})
	}
}

func TestLogin_OfflineAdmin(t *testing.T) {
	s := auth.NewStore(nil, kvcache.NewMemory(), nil)
	res := s.Login(context.Background(), "admin@dost.gov.ph", "admin123")
	require.True(t, res.Success)
	require.True(t, s.IsAdmin())
	require.True(t, s.IsProjectManager())
}

func TestLogin_RemoteSuccess(t *testing.T) {
	remote := &mocks.AuthRemote{}
	remote.On("Login", mock.Anything, "jane@dost.gov.ph", "pw").Return(auth.Session{
		Token: "tok-123",
		User:  auth.UserRecord{ID: "42", Email: "jane@dost.gov.ph", Username: "jane", Role: "project_manager"},
	}, nil)

	s := auth.NewStore(remote, kvcache.NewMemory(), nil)
	res := s.Login(context.Background(), "jane@dost.gov.ph", "pw")
	require.True(t, res.Success)
	require.Equal(t, store.SourceRemote, res.Source)
	require.Equal(t, "tok-123", s.Token())
	require.Equal(t, "42", s.User().ID)
	require.True(t, s.IsProjectManager())
	require.False(t, s.IsAdmin())
}

func TestLogin_FailureMessages(t *testing.T) {
	remote := &mocks.AuthRemote{}
	remote.On("Login", mock.Anything, "a@b.c", "bad").Return(auth.Session{}, serverErr{"Account locked"})
	remote.On("Login", mock.Anything, "admin@dost.gov.ph", "wrong").Return(auth.Session{}, repository.ErrTimeout)

	s := auth.NewStore(remote, kvcache.NewMemory(), nil)
	res := s.Login(context.Background(), "a@b.c", "bad")
	require.False(t, res.Success)
	require.Equal(t, "Account locked", res.Error)

	res = s.Login(context.Background(), "admin@dost.gov.ph", "wrong")
	require.False(t, res.Success)
	require.Equal(t, "invalid email or password", res.Error)
	require.ErrorIs(t, res.Err, repository.ErrTimeout)
	require.ErrorIs(t, res.Err, repository.ErrUnauthorized)
	require.False(t, s.IsAuthenticated())
	require.False(t, s.Loading())
}

func TestLogin_DemoAccountsDisabled(t *testing.T) {
	s := auth.NewStore(nil, kvcache.NewMemory(), nil, auth.WithoutDemoAccounts())
	res := s.Login(context.Background(), "admin@dost.gov.ph", "admin123")
	require.False(t, res.Success)

	res = s.Register(context.Background(), "neo", "neo@dost.gov.ph", "pw")
	require.False(t, res.Success)
	require.Equal(t, "registration failed", res.Error)
}

func TestRegister(t *testing.T) {
	remote := &mocks.AuthRemote{}
	remote.On("Register", mock.Anything, auth.RegistrationPayload("neo", "neo@dost.gov.ph", "pw")).
		Return(auth.Session{}, repository.ErrUnavailable)

	s := auth.NewStore(remote, kvcache.NewMemory(), nil)
	res := s.Register(context.Background(), "neo", "neo@dost.gov.ph", "pw")
	require.True(t, res.Success)
	require.Equal(t, access.RoleStaff, res.Data.Role)
	require.Equal(t, auth.DefaultDepartment, res.Data.Department)
	require.NotEmpty(t, res.Data.ID)
	require.True(t, s.IsAuthenticated())
	remote.AssertExpectations(t)
}

func TestRegistrationPayload(t *testing.T) {
	p := auth.RegistrationPayload("neo", "neo@dost.gov.ph", "pw")
	require.Equal(t, "neo", p["full_name"])
	require.Equal(t, "Staff", p["position"])
	require.Equal(t, "DOST Surigao del Norte", p["department"])
}

func TestLogout_Idempotent(t *testing.T) {
	cache := kvcache.NewMemory()
	s := auth.NewStore(nil, cache, nil)
	require.True(t, s.Login(context.Background(), "staff@dost.gov.ph", "staff123").Success)

	for i := 0; i < 2; i++ {
		s.Logout(context.Background())
		require.False(t, s.IsAuthenticated())
		require.Nil(t, s.User())
		require.Empty(t, s.Token())
		require.Equal(t, 0, cache.Len())
	}
}

func TestInitAuth_Restores(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemory()
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthToken, "demo_token_1"))
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthUser, `{"id":"1","email":"admin@dost.gov.ph","username":"admin","role":"admin"}`))

	s := auth.NewStore(nil, cache, nil)
	require.True(t, s.InitAuth(ctx))
	require.True(t, s.IsAuthenticated())
	require.Equal(t, access.RoleAdmin, s.Role())
}

func TestInitAuth_CorruptedUserClearsCache(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemory()
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthToken, "tok"))
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthUser, `{"id": "1", broken`))

	s := auth.NewStore(nil, cache, nil)
	require.False(t, s.InitAuth(ctx))
	require.False(t, s.IsAuthenticated())
	_, ok := cached(t, cache, kvcache.KeyAuthToken)
	require.False(t, ok)
	_, ok = cached(t, cache, kvcache.KeyAuthUser)
	require.False(t, ok)
}

func TestInitAuth_TokenWithoutUserIsNotRestored(t *testing.T) {
	ctx := context.Background()
	cache := kvcache.NewMemory()
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthToken, "tok"))

	s := auth.NewStore(nil, cache, nil)
	require.False(t, s.InitAuth(ctx))
	require.Equal(t, 0, cache.Len())
}

func TestInitAuth_ExpiredJWT(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signed := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()}).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return tok
	}

	cache := kvcache.NewMemory()
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthToken, signed(now.Add(-time.Hour))))
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthUser, `{"id":"1","role":"staff"}`))

	s := auth.NewStore(nil, cache, nil, auth.WithClock(func() time.Time { return now }))
	require.False(t, s.InitAuth(ctx))
	require.Equal(t, 0, cache.Len())

	fresh := signed(now.Add(time.Hour))
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthToken, fresh))
	require.NoError(t, cache.Set(ctx, kvcache.KeyAuthUser, `{"id":"1","role":"staff"}`))
	require.True(t, s.InitAuth(ctx))
	exp, ok := s.TokenExpiry()
	require.True(t, ok)
	require.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())
}

type serverErr struct{ msg string }

func (e serverErr) Error() string         { return e.msg }
func (e serverErr) ServerMessage() string { return e.msg }
