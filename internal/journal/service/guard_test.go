package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/hearbackapp/hearback/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	hs256, err := jwtx.NewHS256([]byte("test-secret"), "hearback-test")
	require.NoError(t, err)

	return &TokenService{
		Signer:   hs256,
		Verifier: hs256,
		Issuer:   "hearback-test",
		TTL:      time.Hour,
	}
}

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	tokens := newTestTokenService(t)
	user := createTestUser(t, st, "alice")

	token, err := tokens.Issue(user)
	require.NoError(t, err)

	userID, claims, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
	require.Equal(t, "alice", claims.Username)
}

func TestTokenServiceRejectsNonNumericSubject(t *testing.T) {
	t.Parallel()

	hs256, err := jwtx.NewHS256([]byte("test-secret"), "hearback-test")
	require.NoError(t, err)
	tokens := newTestTokenService(t)

	claims := jwtx.NewSessionClaims("not-a-number", "alice", "hearback-test", time.Hour, time.Now().UTC())
	token, err := hs256.Sign(claims)
	require.NoError(t, err)

	_, _, err = tokens.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessGuardAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestTokenService(t)
	guard := &AccessGuard{Tokens: tokens, Store: st}

	user := createTestUser(t, st, "alice")
	token, err := tokens.Issue(user)
	require.NoError(t, err)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		got, err := guard.Authenticate(ctx, "Bearer "+token)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.Equal(t, "alice", got.Username)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		got, err := guard.Authenticate(ctx, "bearer "+token)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := guard.Authenticate(ctx, "")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := guard.Authenticate(ctx, "Basic "+token)
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("scheme without token", func(t *testing.T) {
		_, err := guard.Authenticate(ctx, "Bearer ")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := guard.Authenticate(ctx, "Bearer not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		hs256, err := jwtx.NewHS256([]byte("test-secret"), "hearback-test")
		require.NoError(t, err)

		issued := time.Now().UTC().Add(-2 * time.Hour)
		subject := strconv.FormatInt(user.ID, 10)
		stale, err := hs256.Sign(jwtx.NewSessionClaims(subject, user.Username, "hearback-test", time.Hour, issued))
		require.NoError(t, err)

		_, err = guard.Authenticate(ctx, "Bearer "+stale)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		doomed := createTestUser(t, st, "shortlived")
		token, err := tokens.Issue(doomed)
		require.NoError(t, err)

		require.NoError(t, st.Users().DeleteUser(ctx, doomed.ID))

		_, err = guard.Authenticate(ctx, "Bearer "+token)
		require.ErrorIs(t, err, ErrTokenUserGone)
	})
}
