package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

type ctxKey int

const userKey ctxKey = iota

func userFrom(ctx context.Context) storage.User {
	u, _ := ctx.Value(userKey).(storage.User)
	return u
}

// withAuth resolves the session (cookie or bearer token) and rejects
// the request when no valid session exists. The audited action name is
// attached so handlers don't repeat it.
func withAuth(s *Server, h http.HandlerFunc, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(sessionCookie); err == nil {
			token = c.Value
		}
		if token == "" {
			if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
				token = strings.TrimPrefix(ah, "Bearer ")
			}
		}
		if token == "" {
			s.err(w, http.StatusUnauthorized, "authentication required")
			return
		}
		user, err := s.UserStore.GetSession(token)
		if err != nil {
			s.err(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		if s.Logger != nil {
			s.Logger.WithField("user", user.Username).WithField("action", action).Debug("authenticated request")
		}
		h(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// withAdmin wraps withAuth and additionally requires the admin role.
func withAdmin(s *Server, h http.HandlerFunc, action string) http.HandlerFunc {
	return withAuth(s, func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()).Role != "admin" {
			s.err(w, http.StatusForbidden, "admin role required")
			return
		}
		h(w, r)
	}, action)
}
