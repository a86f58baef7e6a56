// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JJansen36/plan/auth"
	"github.com/JJansen36/plan/middleware"
	"github.com/JJansen36/plan/models"
)

type SessionHandler struct {
	auth *auth.Client
}

func NewSessionHandler(c *auth.Client) *SessionHandler {
	return &SessionHandler{auth: c}
}

// SignIn handles POST /session: the password grant, proxied to the auth
// provider. Credentials never touch the store.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	sess, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.Error("sign in failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "auth provider unavailable")
		return
	}

	slog.Info("signed in", "email", req.Email)
	middleware.JSONResponse(w, http.StatusOK, models.SignInResponse{
		AccessToken: sess.AccessToken,
		Email:       req.Email,
	})
}

// Me handles GET /session: reports the verified user behind the bearer
// token. Runs behind RequireSession.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionUser(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "no session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		UserID: user.ID,
		Email:  user.Email,
	})
}

// SignOut handles DELETE /session. Tokens are held client-side; sign-out is
// an acknowledged discard.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
