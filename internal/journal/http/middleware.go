package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/service"
	"github.com/hearbackapp/hearback/pkg/httpx"
)

// withUser is the authentication gate for protected routes. All of the
// token work lives in the access guard; this just translates failures into
// responses and attaches the resolved user to the request context.
func (rt *Router) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := rt.Guard.Authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "Missing token")
			case errors.Is(err, service.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			case errors.Is(err, service.ErrTokenUserGone):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				writeUnexpected(ctx, w, err)
			}
			return
		}

		ctx = context.WithValue(ctx, httpx.CtxKeyUser, user)
		ctx = context.WithValue(ctx, httpx.CtxKeyUserID, strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the user the gate attached. The bool is false only
// when a handler was wired without withUser, which is a routing bug.
func currentUser(r *http.Request) (domain.User, bool) {
	user, ok := r.Context().Value(httpx.CtxKeyUser).(domain.User)
	return user, ok
}
