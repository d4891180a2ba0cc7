package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func (s *Server) handleListWaivers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "1"
	items, err := s.DB.ListWaivers(activeOnly)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "active_only": activeOnly})
}

func (s *Server) handleCreateWaiver(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RuleID     string `json:"rule_id"`
		Scene      string `json:"scene"`
		ElementID  string `json:"element_id"`
		PatternSub string `json:"pattern_sub"`
		Reason     string `json:"reason"`
		ExpiresAt  string `json:"expires_at"` // RFC3339
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.err(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.RuleID = strings.ToUpper(strings.TrimSpace(req.RuleID))
	if req.RuleID == "" {
		s.err(w, http.StatusBadRequest, "rule_id is required")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		s.err(w, http.StatusBadRequest, "reason is required")
		return
	}
	if _, ok := s.Registry.Get(req.RuleID); !ok {
		s.err(w, http.StatusBadRequest, "unknown rule_id "+req.RuleID)
		return
	}
	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			s.err(w, http.StatusBadRequest, "expires_at must be RFC3339")
			return
		}
		expires = t.UTC()
	}

	user := userFrom(r.Context())
	id, err := s.DB.CreateWaiver(req.RuleID, req.Scene, req.ElementID, req.PatternSub, req.Reason, user.Username, expires)
	if err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	_ = s.UserStore.LogAudit(user.Username, "waiver:create", req.RuleID, map[string]any{
		"waiver_id": id, "scene": req.Scene, "element_id": req.ElementID,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "expires_at": expires})
}

func (s *Server) handleRevokeWaiver(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.err(w, http.StatusBadRequest, "invalid waiver id")
		return
	}
	user := userFrom(r.Context())
	if err := s.DB.RevokeWaiver(id, user.Username); err != nil {
		s.err(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	_ = s.UserStore.LogAudit(user.Username, "waiver:revoke", strconv.FormatInt(id, 10), nil)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}
