package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/pkg/jwtx"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and verifies session tokens. Whether the subject
// still exists is deliberately not checked here; that is the access
// guard's job.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

// Issue produces a signed token with subject = user id and an expiry of
// now + TTL.
func (s *TokenService) Issue(user domain.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		strconv.FormatInt(user.ID, 10),
		user.Username,
		s.Issuer,
		ttl,
		time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

// Verify validates the token and returns the subject user id and claims.
func (s *TokenService) Verify(token string) (int64, jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return 0, jwtx.Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, jwtx.Claims{}, ErrInvalidToken
	}

	return userID, claims, nil
}
