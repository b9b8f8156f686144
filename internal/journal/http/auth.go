package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearbackapp/hearback/internal/journal/service"
	"github.com/hearbackapp/hearback/pkg/httpx"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

type AuthHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// HandleRegister creates a new account. 409 on a duplicate username, 422 on
// validation failures.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username already present")
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeUnexpected(ctx, w, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// HandleLogin verifies credentials and issues a session token. Unknown
// username and wrong password get the identical 401.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.UserService.VerifyLogin(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	token, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "error", err)
		writeUnexpected(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		TokenType: "bearer",
	})
}

// HandleMe returns the authenticated user's identity.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
