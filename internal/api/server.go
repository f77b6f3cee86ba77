// Package api provides the HTTP API for observing a running game.
// GET endpoints are public. POST endpoints require a bearer token.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/talgya/mini-civ/internal/engine"
	"github.com/talgya/mini-civ/internal/persistence"
	"github.com/talgya/mini-civ/internal/social"
)

// Server serves game state over HTTP.
type Server struct {
	Game     *engine.Game
	DB       *persistence.DB // Optional; /history needs it
	GameID   string
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	// BeforeEndTurn issues the human side's orders before each POST end-turn.
	// Nil leaves the human idle.
	BeforeEndTurn func(g *engine.Game)

	// Mu serialises access to Game between handlers and any other driver.
	Mu sync.Mutex

	limiter *IPLimiter
}

// Handler builds the routed handler with CORS and per-IP rate limiting applied.
func (s *Server) Handler() http.Handler {
	if s.limiter == nil {
		s.limiter = NewIPLimiter(10, 20)
	}

	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/civs", s.handleCivs)
	mux.HandleFunc("/api/v1/civ/", s.handleCivDetail)
	mux.HandleFunc("/api/v1/events", s.handleEvents)
	mux.HandleFunc("/api/v1/history", s.handleHistory)

	// Admin endpoints.
	mux.HandleFunc("/api/v1/end-turn", s.adminOnly(s.handleEndTurn))

	return corsMiddleware(s.limiter.Middleware(mux))
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// CORS_ORIGINS adds a comma-separated list to the localhost defaults.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && subtle.ConstantTimeCompare([]byte(token), []byte(s.AdminKey)) == 1
}

// adminOnly requires POST with a valid bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no CIVSIM_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	g := s.Game
	status := map[string]any{
		"game_id":     s.GameID,
		"turn":        g.Turn,
		"phase":       g.Phase().String(),
		"civs":        1 + len(g.Computers),
		"wonders":     g.Wonders.Built(),
		"map_width":   g.Map.Width(),
		"map_height":  g.Map.Height(),
		"event_count": len(g.Events),
	}
	writeJSON(w, status)
}

func (s *Server) handleCivs(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	writeJSON(w, s.Game.Summaries())
}

type settlementView struct {
	ID           social.SettlementID `json:"id"`
	Name         string              `json:"name"`
	X            int                 `json:"x"`
	Y            int                 `json:"y"`
	Population   int                 `json:"population"`
	FoodStock    int                 `json:"food_stock"`
	GrowthCost   int                 `json:"growth_cost"`
	Food         int                 `json:"food"`
	Trade        int                 `json:"trade"`
	Production   int                 `json:"production"`
	Improvements []string            `json:"improvements"`
	Queue        []string            `json:"queue"`
}

type unitView struct {
	ID        uint64 `json:"id"`
	Kind      string `json:"kind"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	MovesLeft int    `json:"moves_left"`
}

// handleCivDetail serves GET /api/v1/civ/:id.
func (s *Server) handleCivDetail(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/civ/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid civ id", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()

	c, ok := s.Game.Civilization(social.CivID(id))
	if !ok {
		http.Error(w, "civ not found", http.StatusNotFound)
		return
	}

	settlements := make([]settlementView, 0, c.Settlements.Len())
	for _, st := range c.Settlements.All() {
		v := settlementView{
			ID:         st.ID,
			Name:       st.Name,
			X:          st.Position.X,
			Y:          st.Position.Y,
			Population: st.Population,
			FoodStock:  st.FoodStock,
			GrowthCost: st.GrowthCost(),
			Food:       st.Food,
			Trade:      st.Trade,
			Production: st.Production,
		}
		for name, built := range st.Improvements {
			if built {
				v.Improvements = append(v.Improvements, name)
			}
		}
		for _, item := range st.Queue {
			v.Queue = append(v.Queue, item.Name)
		}
		settlements = append(settlements, v)
	}

	unitList := make([]unitView, 0, c.Units.Len())
	for _, u := range c.Units.All() {
		unitList = append(unitList, unitView{
			ID:        uint64(u.ID),
			Kind:      u.Kind.String(),
			X:         u.Position.X,
			Y:         u.Position.Y,
			MovesLeft: u.MovesLeft,
		})
	}

	var researched, available []string
	for t := range c.Research.All() {
		if t.Researched {
			researched = append(researched, t.Name)
		}
	}
	for t := range c.Research.Available() {
		available = append(available, t.Name)
	}

	writeJSON(w, map[string]any{
		"id":          c.ID,
		"name":        c.Name,
		"human":       c.Human,
		"research":    c.Research.CurrentName(),
		"progress":    c.Research.Progress(),
		"researched":  researched,
		"available":   available,
		"settlements": settlements,
		"units":       unitList,
	})
}

// handleEvents serves the in-memory event log, oldest first. ?limit= caps the
// count (default 50, max 500) and ?civ= filters by civilization.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	s.Mu.Lock()
	events := s.Game.Events
	if civ := r.URL.Query().Get("civ"); civ != "" {
		id, err := strconv.Atoi(civ)
		if err != nil {
			s.Mu.Unlock()
			http.Error(w, "invalid civ", http.StatusBadRequest)
			return
		}
		var filtered []engine.Event
		for _, e := range events {
			if e.Civ == social.CivID(id) {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	out := append([]engine.Event(nil), events[start:]...)
	s.Mu.Unlock()

	if out == nil {
		out = []engine.Event{}
	}
	writeJSON(w, out)
}

// handleHistory serves GET /api/v1/history?civ=N from the turn journal.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "journal disabled", http.StatusServiceUnavailable)
		return
	}
	civ, err := strconv.Atoi(r.URL.Query().Get("civ"))
	if err != nil {
		http.Error(w, "civ query parameter required", http.StatusBadRequest)
		return
	}

	rows, err := s.DB.TurnHistory(s.GameID, civ)
	if err != nil {
		slog.Error("history query failed", "civ", civ, "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []engine.CivSummary{}
	}
	writeJSON(w, rows)
}

// handleEndTurn runs one turn. Journaling happens through Game.OnTurnEnd.
func (s *Server) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.BeforeEndTurn != nil {
		s.BeforeEndTurn(s.Game)
	}
	if !s.Game.EndTurn() {
		http.Error(w, "turn already in progress", http.StatusConflict)
		return
	}
	slog.Info("turn ended via API", "turn", s.Game.Turn)
	writeJSON(w, map[string]any{
		"turn":  s.Game.Turn,
		"civs":  s.Game.Summaries(),
		"phase": s.Game.Phase().String(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
