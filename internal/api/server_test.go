package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/talgya/mini-civ/internal/engine"
	"github.com/talgya/mini-civ/internal/persistence"
	"github.com/talgya/mini-civ/internal/world"
)

func newTestServer(t *testing.T, adminKey string) *Server {
	t.Helper()
	m := world.Generate(world.SmallTestConfig())
	g := engine.NewGame(m, engine.Options{Seed: 9, ComputerPlayers: 2})
	return &Server{Game: g, GameID: "test", AdminKey: adminKey}
}

func do(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s.Handler(), http.MethodGet, "/api/v1/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["turn"] != float64(1) || body["phase"] != "human" || body["civs"] != float64(3) {
		t.Errorf("body = %v", body)
	}
}

func TestCivsAndDetail(t *testing.T) {
	s := newTestServer(t, "")
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/civs", "")
	var civs []engine.CivSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &civs); err != nil {
		t.Fatal(err)
	}
	if len(civs) != 3 || !civs[0].Human || civs[0].Units != 2 {
		t.Errorf("civs = %+v", civs)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/civ/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail code = %d", rec.Code)
	}
	var detail struct {
		Name      string     `json:"name"`
		Units     []unitView `json:"units"`
		Available []string   `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Name != "Babylonians" || len(detail.Units) != 2 || detail.Units[0].Kind != "Settler" {
		t.Errorf("detail = %+v", detail)
	}
	if len(detail.Available) == 0 {
		t.Error("no available technologies")
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/civ/99", http.StatusNotFound},
		{"/api/v1/civ/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := do(t, h, http.MethodGet, tt.path, ""); rec.Code != tt.want {
			t.Errorf("%s = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestEndTurnAuth(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		method string
		token  string
		want   int
	}{
		{"disabled", "", http.MethodPost, "x", http.StatusForbidden},
		{"missing token", "secret", http.MethodPost, "", http.StatusUnauthorized},
		{"wrong token", "secret", http.MethodPost, "nope", http.StatusUnauthorized},
		{"get", "secret", http.MethodGet, "secret", http.StatusMethodNotAllowed},
		{"ok", "secret", http.MethodPost, "secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.key)
			rec := do(t, s.Handler(), tt.method, "/api/v1/end-turn", tt.token)
			if rec.Code != tt.want {
				t.Fatalf("code = %d, want %d", rec.Code, tt.want)
			}
			wantTurn := 1
			if tt.want == http.StatusOK {
				wantTurn = 2
			}
			if s.Game.Turn != wantTurn {
				t.Errorf("turn = %d, want %d", s.Game.Turn, wantTurn)
			}
		})
	}
}

func TestEndTurnIssuesHumanOrders(t *testing.T) {
	s := newTestServer(t, "k")
	calls := 0
	s.BeforeEndTurn = func(g *engine.Game) {
		calls++
		if g.Phase() != engine.HumanPhase {
			t.Errorf("orders issued in %s phase", g.Phase())
		}
		for _, u := range g.Human.Units.Values() {
			g.FoundSettlement(u.ID)
		}
	}
	h := s.Handler()
	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodPost, "/api/v1/end-turn", "k"); rec.Code != http.StatusOK {
			t.Fatalf("end-turn %d = %d", i, rec.Code)
		}
	}
	if calls != 2 {
		t.Errorf("BeforeEndTurn calls = %d, want 2", calls)
	}
	if s.Game.Human.Settlements.Len() != 1 {
		t.Errorf("human settlements = %d, want 1", s.Game.Human.Settlements.Len())
	}

	// Rejected requests issue no orders.
	do(t, h, http.MethodPost, "/api/v1/end-turn", "wrong")
	if calls != 2 {
		t.Errorf("unauthorised request ran orders")
	}
}

func TestBearerTokenCompare(t *testing.T) {
	s := &Server{AdminKey: "secret"}
	tests := []struct {
		header string
		want   bool
	}{
		{"Bearer secret", true},
		{"Bearer secre", false},
		{"Bearer secret2", false},
		{"bearer secret", false},
		{"secret", false},
		{"", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := s.checkBearerToken(req); got != tt.want {
			t.Errorf("%q = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestEventsFilterAndLimit(t *testing.T) {
	s := newTestServer(t, "k")
	h := s.Handler()
	for i := 0; i < 3; i++ {
		do(t, h, http.MethodPost, "/api/v1/end-turn", "k")
	}

	rec := do(t, h, http.MethodGet, "/api/v1/events?civ=2&limit=500", "")
	var events []engine.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("no events for civ 2")
	}
	for _, e := range events {
		if e.Civ != 2 {
			t.Errorf("event from civ %d", e.Civ)
		}
	}

	rec = do(t, h, http.MethodGet, "/api/v1/events?limit=1", "")
	events = nil
	json.Unmarshal(rec.Body.Bytes(), &events)
	if len(events) != 1 {
		t.Errorf("limit=1 returned %d", len(events))
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/events?civ=x", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad civ = %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	s := newTestServer(t, "k")
	h := s.Handler()
	if rec := do(t, h, http.MethodGet, "/api/v1/history?civ=0", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without journal = %d", rec.Code)
	}

	db, err := persistence.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	s.DB = db
	s.Game.OnTurnEnd = func(g *engine.Game) {
		if err := db.SaveTurn(s.GameID, g); err != nil {
			t.Errorf("SaveTurn: %v", err)
		}
	}
	do(t, h, http.MethodPost, "/api/v1/end-turn", "k")
	do(t, h, http.MethodPost, "/api/v1/end-turn", "k")

	rec := do(t, h, http.MethodGet, "/api/v1/history?civ=1", "")
	var rows []engine.CivSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Turn != 1 || rows[1].Turn != 2 {
		t.Errorf("rows = %+v", rows)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/history", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing civ = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, "")
	s.limiter = NewIPLimiter(1, 2)
	h := s.Handler()

	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodGet, "/api/v1/status", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/status", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client = %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:5555"
	if got := clientIP(req); got != "198.51.100.2" {
		t.Errorf("clientIP = %q", got)
	}
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 ,10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("clientIP xff = %q", got)
	}
}
