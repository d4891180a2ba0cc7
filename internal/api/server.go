package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

// Store is the minimal contract the API needs.
type Store interface {
	ListRuns(limit, offset int) ([]storage.RunRow, error)
	LoadRun(id string) (ir.Run, error)
	LoadLatestRun() (ir.Run, error)
	ListVerdicts(runID, minSeverity string) ([]ir.Verdict, error)

	ListWaivers(activeOnly bool) ([]storage.Waiver, error)
	CreateWaiver(ruleID, scene, elementID, pattern, reason, createdBy string, expires time.Time) (int64, error)
	RevokeWaiver(id int64, by string) error
}

// UserStore is the auth/audit contract the API uses.
type UserStore interface {
	GetUserByUsername(string) (storage.User, string, error)
	CreateSession(int64, string, time.Time) error
	GetSession(string) (storage.User, error)
	DeleteSession(string) error
	LogAudit(username, action, resource string, meta map[string]any) error
}

type Server struct {
	DB              Store
	UserStore       UserStore
	Registry        *rules.Registry
	Logger          *logrus.Logger
	SessionDuration time.Duration
	// AllowedOrigins restricts CORS; empty means any origin.
	AllowedOrigins []string
}

func (s *Server) allowOrigin(origin string) string {
	if len(s.AllowedOrigins) == 0 {
		return "*"
	}
	for _, o := range s.AllowedOrigins {
		if o == origin || o == "*" {
			return origin
		}
	}
	return ""
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	withCORS := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS, POST")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h(w, r)
		}
	}

	// Health
	mux.HandleFunc("GET /api/v1/health", withCORS(s.handleHealth))

	// Stateless validation
	mux.HandleFunc("POST /api/v1/validate", withCORS(s.handleValidate))

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", withCORS(s.handleLogin))
	mux.HandleFunc("POST /api/v1/auth/logout", withCORS(withAuth(s, s.handleLogout, "auth:logout")))
	mux.HandleFunc("GET /api/v1/me", withCORS(withAuth(s, s.handleMe, "me")))

	// Runs
	mux.HandleFunc("GET /api/v1/runs", withCORS(s.handleListRuns))
	mux.HandleFunc("GET /api/v1/runs/latest", withCORS(s.handleGetLatest))
	mux.HandleFunc("GET /api/v1/runs/{id}", withCORS(s.handleGetRun))
	mux.HandleFunc("GET /api/v1/runs/{id}/verdicts", withCORS(s.handleListVerdicts))

	// Rules inventory
	mux.HandleFunc("GET /api/v1/rules", withCORS(s.handleRules))

	// Waivers
	mux.HandleFunc("GET /api/v1/waivers", withCORS(withAuth(s, s.handleListWaivers, "waivers:list")))
	mux.HandleFunc("POST /api/v1/waivers", withCORS(withAdmin(s, s.handleCreateWaiver, "waivers:create")))
	mux.HandleFunc("POST /api/v1/waivers/{id}/revoke", withCORS(withAdmin(s, s.handleRevokeWaiver, "waivers:revoke")))

	mux.HandleFunc("/", withCORS(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"rules":     s.Registry.Len(),
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := clamp(parseInt(q.Get("limit"), 20), 1, 200)
	offset := parseInt(q.Get("offset"), 0)

	rows, err := s.DB.ListRuns(limit, offset)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": rows, "limit": limit, "offset": offset,
	})
}

func (s *Server) handleGetLatest(w http.ResponseWriter, r *http.Request) {
	run, err := s.DB.LoadLatestRun()
	if err != nil {
		s.err(w, http.StatusNotFound, "no runs")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.DB.LoadRun(r.PathValue("id"))
	if err != nil {
		s.err(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListVerdicts(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	min := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("min_severity")))
	if min == "" {
		min = "INFO"
	}
	items, err := s.DB.ListVerdicts(id, min)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": id, "min_severity": min, "items": items,
	})
}

// GET /api/v1/rules (IDs + metadata; no auth needed for read-only)
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	type R struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Severity string `json:"severity"`
		Summary  string `json:"summary"`
	}
	var out []R
	for _, rr := range s.Registry.All() {
		out = append(out, R{
			ID:       rr.ID,
			Category: string(rr.Category),
			Severity: string(rr.Severity),
			Summary:  rr.Summary,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

func (s *Server) err(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
