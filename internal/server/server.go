// Package server exposes the FreeCell solver over HTTP: a small JSON API
// to deal and solve, plus a WebSocket stream of solve progress for the
// companion web app.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/constf1/freecell-solver/internal/deck"
	"github.com/constf1/freecell-solver/internal/freecell"
)

// Server owns one solver guarded by a mutex. The solver itself stays
// single-threaded; solve requests are serialized.
type Server struct {
	cfg Config
	log *logrus.Logger
	hub *Hub

	mu      sync.Mutex
	solver  *freecell.Solver
	deal    uint64
	hasDeal bool
	steps   int
}

func New(cfg Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:    cfg.normalized(),
		log:    log,
		hub:    NewHub(),
		solver: freecell.NewSolver(freecell.DefaultSolverConfig(), log),
	}
}

// Hub returns the progress hub; the caller runs it.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/deal", s.handleDeal)
	r.Post("/api/solve", s.handleSolve)
	r.Get("/api/status", s.handleStatus)
	r.Get("/ws", s.handleWS)

	return r
}

type dealRequest struct {
	Deal uint64 `json:"deal"`
}

type dealResponse struct {
	Deal       uint64 `json:"deal"`
	Board      string `json:"board"`
	Unsolved   int    `json:"unsolved"`
	EmptyCells int    `json:"empty_cells"`
	EmptyPiles int    `json:"empty_piles"`
	Estimate   int    `json:"estimate"`
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	var payload dealRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	game := freecell.NewGame()
	game.Deal(deck.Deal(payload.Deal))

	writeJSON(w, http.StatusOK, dealResponse{
		Deal:       payload.Deal,
		Board:      game.String(),
		Unsolved:   game.CountUnsolved(),
		EmptyCells: game.CountEmptyCells(),
		EmptyPiles: game.CountEmptyPiles(),
		Estimate:   game.EstimatePathLen(),
	})
}

type solveRequest struct {
	Deal    uint64 `json:"deal"`
	PathMax *int   `json:"path_max,omitempty"`
	GrabMax *int   `json:"grab_max,omitempty"`
	DoneMax *int   `json:"done_max,omitempty"`
	Any     bool   `json:"any"`
}

type solveResponse struct {
	Deal    uint64 `json:"deal"`
	Solved  bool   `json:"solved"`
	Status  string `json:"status"`
	Moves   int    `json:"moves,omitempty"`
	Path    string `json:"path,omitempty"`
	Link    string `json:"link,omitempty"`
	Steps   int    `json:"steps"`
	BankLen int    `json:"bank_len"`
	DoneLen int    `json:"done_len"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var payload solveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	pathMax := s.cfg.PathMax
	if payload.PathMax != nil && *payload.PathMax > 0 {
		pathMax = *payload.PathMax
	}
	grabMax := s.cfg.GrabMax
	if payload.GrabMax != nil && *payload.GrabMax > 0 {
		grabMax = *payload.GrabMax
	}
	doneMax := s.cfg.DoneMax
	if payload.DoneMax != nil && *payload.DoneMax >= 1000 {
		doneMax = *payload.DoneMax
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deal = payload.Deal
	s.hasDeal = true
	s.steps = 0
	s.solver.Deal(payload.Deal)
	s.log.Infof("[server] solving deal %d (path<=%d grab=%d limit=%d any=%t)",
		payload.Deal, pathMax, grabMax, doneMax, payload.Any)

	// The bound is inclusive; the solver prunes at >= limit.
	pathLimit := pathMax + 1

loop:
	for {
		result := s.solver.Step(pathLimit, grabMax)
		s.steps++

		switch result {
		case freecell.StepSolved:
			s.publish("solved")
			if payload.Any {
				break loop
			}
		case freecell.StepExhausted:
			s.publish("exhausted")
			break loop
		}

		if s.solver.DoneLen() > doneMax {
			s.log.Infof("[server] deal %d over the state limit: done=%d bank=%d",
				payload.Deal, s.solver.DoneLen(), s.solver.BankLen())
			break loop
		}
		if s.steps%s.cfg.ProgressEvery == 0 {
			s.publish("step")
		}
	}

	s.publish("done")
	writeJSON(w, http.StatusOK, s.solveResponseLocked())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDeal {
		writeJSON(w, http.StatusOK, solveResponse{Status: s.solver.Status().String()})
		return
	}
	writeJSON(w, http.StatusOK, s.solveResponseLocked())
}

func (s *Server) solveResponseLocked() solveResponse {
	resp := solveResponse{
		Deal:    s.deal,
		Status:  s.solver.Status().String(),
		Steps:   s.steps,
		BankLen: s.solver.BankLen(),
		DoneLen: s.solver.DoneLen(),
	}
	if path, ok := s.solver.Solution(); ok {
		resp.Solved = true
		resp.Moves = len(path)
		resp.Path = path.Hex()
		resp.Link = freecell.DemoLink(s.deal, path)
	}
	return resp
}

// publish is called with the server lock held.
func (s *Server) publish(event string) {
	payload := ProgressPayload{
		Deal:    s.deal,
		Event:   event,
		Steps:   s.steps,
		BankLen: s.solver.BankLen(),
		DoneLen: s.solver.DoneLen(),
	}
	if path, ok := s.solver.Solution(); ok {
		payload.Moves = len(path)
		payload.Solution = path.Hex()
		payload.Link = freecell.DemoLink(s.deal, path)
	}
	s.hub.Publish(payload)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)

	go func() {
		defer conn.Close()
		_ = writeWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Unregister(client)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
