package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh4d0w/ios-mobile-designer/internal/ir"
	"github.com/sh4d0w/ios-mobile-designer/internal/rules"
	"github.com/sh4d0w/ios-mobile-designer/internal/security"
	"github.com/sh4d0w/ios-mobile-designer/internal/storage"
)

type fakeStore struct {
	runs    map[string]ir.Run
	waivers []storage.Waiver
	revoked []int64
}

func (f *fakeStore) ListRuns(limit, offset int) ([]storage.RunRow, error) {
	var out []storage.RunRow
	for id := range f.runs {
		out = append(out, storage.RunRow{ID: id})
	}
	return out, nil
}

func (f *fakeStore) LoadRun(id string) (ir.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return ir.Run{}, errors.New("not found")
	}
	return run, nil
}

func (f *fakeStore) LoadLatestRun() (ir.Run, error) {
	for _, run := range f.runs {
		return run, nil
	}
	return ir.Run{}, errors.New("empty")
}

func (f *fakeStore) ListVerdicts(runID, minSeverity string) ([]ir.Verdict, error) {
	return f.runs[runID].Verdicts, nil
}

func (f *fakeStore) ListWaivers(activeOnly bool) ([]storage.Waiver, error) {
	return f.waivers, nil
}

func (f *fakeStore) CreateWaiver(ruleID, scene, elementID, pattern, reason, createdBy string, expires time.Time) (int64, error) {
	id := int64(len(f.waivers) + 1)
	f.waivers = append(f.waivers, storage.Waiver{
		ID: id, RuleID: ruleID, Scene: scene, ElementID: elementID,
		PatternSub: pattern, Reason: reason, CreatedBy: createdBy, ExpiresAt: expires,
	})
	return id, nil
}

func (f *fakeStore) RevokeWaiver(id int64, by string) error {
	f.revoked = append(f.revoked, id)
	return nil
}

type fakeUserStore struct {
	users    map[string]storage.User
	hashes   map[string]string
	sessions map[string]storage.User
	audits   []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    map[string]storage.User{},
		hashes:   map[string]string{},
		sessions: map[string]storage.User{},
	}
}

func (f *fakeUserStore) addUser(t *testing.T, username, password, role string) {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	f.users[username] = storage.User{ID: int64(len(f.users) + 1), Username: username, Role: role}
	f.hashes[username] = hash
}

func (f *fakeUserStore) GetUserByUsername(username string) (storage.User, string, error) {
	u, ok := f.users[username]
	if !ok {
		return storage.User{}, "", errors.New("no such user")
	}
	return u, f.hashes[username], nil
}

func (f *fakeUserStore) CreateSession(userID int64, token string, expires time.Time) error {
	for _, u := range f.users {
		if u.ID == userID {
			f.sessions[token] = u
			return nil
		}
	}
	return errors.New("no such user")
}

func (f *fakeUserStore) GetSession(token string) (storage.User, error) {
	u, ok := f.sessions[token]
	if !ok {
		return storage.User{}, errors.New("no session")
	}
	return u, nil
}

func (f *fakeUserStore) DeleteSession(token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeUserStore) LogAudit(username, action, resource string, meta map[string]any) error {
	f.audits = append(f.audits, username+":"+action)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeStore, *fakeUserStore) {
	t.Helper()
	store := &fakeStore{runs: map[string]ir.Run{}}
	users := newFakeUserStore()
	return &Server{
		DB:        store,
		UserStore: users,
		Registry:  rules.Builtin(),
	}, store, users
}

func do(t *testing.T, h http.Handler, method, path string, body []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, float64(10), resp["rules"])
}

func TestCORS_AllowedOrigins(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.AllowedOrigins = []string{"https://design.example.com"}
	h := s.Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://design.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://design.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetRun_NotFound(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/api/v1/runs/run-missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRun(t *testing.T) {
	s, store, _ := newTestServer(t)
	store.runs["run-1"] = ir.Run{ID: "run-1", Source: "./scenes"}

	rec := do(t, s.Routes(), http.MethodGet, "/api/v1/runs/run-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var run ir.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, "run-1", run.ID)
}

func TestRulesInventory(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/api/v1/rules", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
		Items []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Count)

	seen := map[string]bool{}
	for _, it := range resp.Items {
		seen[it.ID] = true
	}
	assert.True(t, seen["TOUCH-TARGET-MIN"])
	assert.True(t, seen["A11Y-LABEL"])
}

func TestValidate_ReportsVerdicts(t *testing.T) {
	s, _, _ := newTestServer(t)
	body := []byte(`{"scene":"checkout","elements":[
		{"id":"buy","kind":"button","widthPt":40,"heightPt":40,"accessibilityLabel":"Buy"}
	]}`)
	rec := do(t, s.Routes(), http.MethodPost, "/api/v1/validate", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID  string `json:"run_id"`
		Report struct {
			Overall string `json:"overall"`
		} `json:"report"`
		Verdicts []ir.Verdict `json:"verdicts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "FAIL", resp.Report.Overall, "40pt touch target")
	assert.NotEmpty(t, resp.Verdicts)
}

func TestValidate_MalformedInput(t *testing.T) {
	s, _, _ := newTestServer(t)
	body := []byte(`{"scene":"s","elements":[{"id":"t1","kind":"text","fontSizePt":17}]}`)
	rec := do(t, s.Routes(), http.MethodPost, "/api/v1/validate", body, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Index int    `json:"index"`
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Index)
	assert.Equal(t, "foregroundColor", resp.Field)
}

func TestWaivers_RequireAuth(t *testing.T) {
	s, _, _ := newTestServer(t)
	rec := do(t, s.Routes(), http.MethodGet, "/api/v1/waivers", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func login(t *testing.T, h http.Handler, username, password string) *http.Cookie {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	rec := do(t, h, http.MethodPost, "/api/v1/auth/login", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogin_BadPassword(t *testing.T) {
	s, _, users := newTestServer(t)
	users.addUser(t, "dana", "correct-horse", "viewer")

	body, _ := json.Marshal(map[string]string{"username": "dana", "password": "wrong"})
	rec := do(t, s.Routes(), http.MethodPost, "/api/v1/auth/login", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWaiverLifecycle(t *testing.T) {
	s, store, users := newTestServer(t)
	users.addUser(t, "admin", "s3cret-pass", "admin")
	h := s.Routes()
	cookie := login(t, h, "admin", "s3cret-pass")

	body, _ := json.Marshal(map[string]any{
		"rule_id": "spacing-grid",
		"scene":   "checkout",
		"reason":  "legacy layout, redesign tracked",
	})
	rec := do(t, h, http.MethodPost, "/api/v1/waivers", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.waivers, 1)
	assert.Equal(t, "SPACING-GRID", store.waivers[0].RuleID, "rule IDs are normalized")
	assert.Equal(t, "admin", store.waivers[0].CreatedBy)

	rec = do(t, h, http.MethodGet, "/api/v1/waivers", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/waivers/1/revoke", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1}, store.revoked)
}

func TestCreateWaiver_UnknownRule(t *testing.T) {
	s, _, users := newTestServer(t)
	users.addUser(t, "admin", "s3cret-pass", "admin")
	h := s.Routes()
	cookie := login(t, h, "admin", "s3cret-pass")

	body, _ := json.Marshal(map[string]any{"rule_id": "NOPE", "reason": "r"})
	rec := do(t, h, http.MethodPost, "/api/v1/waivers", body, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateWaiver_ViewerForbidden(t *testing.T) {
	s, _, users := newTestServer(t)
	users.addUser(t, "dana", "pw1234567", "viewer")
	h := s.Routes()
	cookie := login(t, h, "dana", "pw1234567")

	body, _ := json.Marshal(map[string]any{"rule_id": "A11Y-LABEL", "reason": "r"})
	rec := do(t, h, http.MethodPost, "/api/v1/waivers", body, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// read access stays open to any authenticated user
	rec = do(t, h, http.MethodGet, "/api/v1/waivers", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	s, _, users := newTestServer(t)
	users.addUser(t, "dana", "pw1234567", "viewer")
	h := s.Routes()
	cookie := login(t, h, "dana", "pw1234567")

	rec := do(t, h, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
