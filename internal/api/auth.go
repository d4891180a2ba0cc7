package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sh4d0w/ios-mobile-designer/internal/security"
)

const sessionCookie = "higlint_session"

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		s.err(w, http.StatusBadRequest, "username and password required")
		return
	}

	user, hash, err := s.UserStore.GetUserByUsername(req.Username)
	if err != nil || !security.CheckPassword(hash, req.Password) {
		// same answer for unknown user and bad password
		s.err(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := security.NewSessionToken()
	if err != nil {
		s.err(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	expires := time.Now().UTC().Add(s.sessionDuration())
	if err := s.UserStore.CreateSession(user.ID, token, expires); err != nil {
		s.err(w, http.StatusInternalServerError, "session creation failed")
		return
	}
	_ = s.UserStore.LogAudit(user.Username, "login", "session", nil)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"user": user, "expires_at": expires,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		_ = s.UserStore.DeleteSession(c.Value)
	}
	u := userFrom(r.Context())
	_ = s.UserStore.LogAudit(u.Username, "logout", "session", nil)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}

func (s *Server) sessionDuration() time.Duration {
	if s.SessionDuration > 0 {
		return s.SessionDuration
	}
	return 12 * time.Hour
}
