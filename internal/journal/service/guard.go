package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

var (
	ErrMissingToken = errors.New("missing token")

	// ErrTokenUserGone means the token verified but its subject no longer
	// exists. Surfaced to the caller as 404, distinct from 401.
	ErrTokenUserGone = errors.New("token subject no longer exists")
)

// AccessGuard is the single authentication check for protected routes:
// extract the bearer token, verify it, resolve the subject against the
// store, and hand back the user. The router's middleware gate and any
// handler needing the current user both go through this one method.
type AccessGuard struct {
	Tokens *TokenService
	Store  store.Store
}

// Authenticate runs the three-step check against a raw Authorization
// header value.
func (g *AccessGuard) Authenticate(ctx context.Context, authorization string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// Step 1: Bearer scheme, case-insensitive on the scheme token.
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return domain.User{}, ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, ErrMissingToken
	}

	// Step 2: signature, shape, expiry.
	userID, _, err := g.Tokens.Verify(token)
	if err != nil {
		return domain.User{}, ErrInvalidToken
	}

	// Step 3: the subject must still resolve to an account.
	user, err := g.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("valid token for deleted user", slog.Int64("user_id", userID))
			return domain.User{}, ErrTokenUserGone
		}
		log.Error("failed to resolve token subject", slog.Any("error", err))
		return domain.User{}, err
	}

	return user, nil
}
