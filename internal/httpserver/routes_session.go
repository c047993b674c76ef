// internal/httpserver/routes_session.go
//
// HTTP routes for puzzle sessions.
//   - POST /session/new          → select a puzzle and open a session
//   - GET  /session/{id}         → current view
//   - POST /session/{id}/pick    → place a tile by original index
//   - POST /session/{id}/undo    → remove the last placed tile
//   - POST /session/{id}/reset   → back to the pinned tile
//   - POST /session/{id}/submit  → check the arrangement
//   - POST /session/{id}/ack     → acknowledge a tutorial callout
//   - POST /session/{id}/next    → next ladder level after a win
//
// Every /session/{id} route requires the bearer token returned by /session/new.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/subverse/internal/daily"
	"github.com/robalobadob/subverse/internal/session"
	"github.com/robalobadob/subverse/internal/tutorial"
)

// mountSessions registers all /session routes.
func (s *Server) mountSessions() {
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Route("/session/{id}", func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(currentSession(r).View())
		})
		r.Post("/pick", s.handlePick)
		r.Post("/undo", s.interaction(func(sess *session.Session) session.Result { return sess.Undo() }))
		r.Post("/reset", s.interaction(func(sess *session.Session) session.Result { return sess.Reset() }))
		r.Post("/submit", s.handleSubmit)
		r.Post("/ack", s.handleAck)
		r.Post("/next", s.handleNext)
	})
}

// newSessionReq/Res payloads for POST /session/new.
type newSessionReq struct {
	Length   int    `json:"length"`   // 0 → daily length (or ladder minimum)
	Seed     string `json:"seed"`     // "" → today's daily seed
	Tutorial bool   `json:"tutorial"` // show onboarding callouts
	Ladder   bool   `json:"ladder"`   // climb lengths after each win
}
type newSessionRes struct {
	Token string `json:"token"`
	session.View
}

// handleNewSession selects a puzzle for (length, seed) and stores a new session.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Seed == "" {
		req.Seed = daily.Seed(s.now(), s.cfg.DailySalt)
	}
	opts := session.Options{Length: req.Length, Seed: req.Seed, Tutorial: req.Tutorial}
	if opts.Length == 0 {
		opts.Length = s.cfg.DailyLength
		if req.Ladder {
			opts.Length = s.cfg.LevelMin
		}
	}
	if req.Ladder {
		opts.LadderMax = max(s.cfg.LevelMax, opts.Length)
	}
	s.openSession(w, r, opts)
}

// openSession creates, stores and returns a session with its token.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, opts session.Options) {
	sess, err := session.New(uuid.NewString(), s.sel, opts)
	if err != nil {
		writePuzzleError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, err := signToken(s.cfg.Secret, sess.ID, s.cfg.SessionTTL)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	v := sess.View()
	log.Info().Str("session", sess.ID).Str("seed", v.Seed).Int("length", v.Length).Msg("session opened")
	_ = json.NewEncoder(w).Encode(newSessionRes{Token: tok, View: v})
}

// interaction adapts a session operation into a handler.
func (s *Server) interaction(op func(*session.Session) session.Result) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, op(currentSession(r)))
	}
}

type pickReq struct {
	Slot *int `json:"slot"` // word-bank position
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	writeResult(w, currentSession(r).Pick(*req.Slot))
}

// handleSubmit checks the guess and logs wins.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	res := sess.Submit()
	if res.Matched != nil && *res.Matched {
		log.Info().
			Str("session", sess.ID).
			Str("reference", res.View.Reference).
			Int("guesses", res.View.Game.GuessCount).
			Msg("puzzle solved")
	}
	writeResult(w, res)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	var ack tutorial.Ack
	if err := json.NewDecoder(r.Body).Decode(&ack); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	writeResult(w, currentSession(r).Acknowledge(ack))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	res, err := currentSession(r).Next()
	if err != nil {
		writePuzzleError(w, err)
		return
	}
	writeResult(w, res)
}

// writeResult encodes an interaction result; gated operations get 423.
func writeResult(w http.ResponseWriter, res session.Result) {
	if res.Blocked {
		w.WriteHeader(http.StatusLocked)
	}
	_ = json.NewEncoder(w).Encode(res)
}

