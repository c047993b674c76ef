// internal/httpserver/server.go
//
// HTTP server wiring for the subverse backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/corpus/stats".
//   - Session endpoints: POST /session/new and token-gated /session/{id}/*.
//   - Daily endpoint: POST /daily/new.
//   - Background sweep of expired sessions.
//
// Notes:
//   - CORS is origin-aware for a single configured client origin.
//   - Puzzle errors map to typed JSON errors; rejected engine operations are
//     not errors and come back as 200 with "accepted": false.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/subverse/internal/config"
	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/puzzle"
	"github.com/robalobadob/subverse/internal/store"
)

// Server bundles router, session store and puzzle selection.
type Server struct {
	r     *chi.Mux
	store store.Store
	ix    *corpus.Indexer
	sel   *puzzle.Selector
	cfg   *config.Config
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, ix *corpus.Indexer, cfg *config.Config) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		ix:    ix,
		sel:   puzzle.NewSelector(ix),
		cfg:   cfg,
		now:   time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(hlog.AccessHandler(accessLog))   // structured access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"subverse","endpoints":["/health","/corpus/stats","POST /session/new","POST /daily/new","/session/{id}/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/corpus/stats", s.handleCorpusStats)

	s.mountSessions()
	s.mountDaily()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, sweeping expired sessions meanwhile.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.sweep(ctx, time.Hour)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// sweep drops sessions older than the configured TTL every interval.
func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.now().Add(-s.cfg.SessionTTL)); n > 0 {
				log.Info().Int("removed", n).Int("live", s.store.Len()).Msg("swept sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request through the request-scoped logger.
func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("reqId", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ------------------------------ CORPUS -------------------------------------

type statsRes struct {
	Documents int  `json:"documents"`
	Sections  int  `json:"sections"`
	Units     int  `json:"units"`
	Length    int  `json:"length,omitempty"`
	Prefixes  *int `json:"prefixes,omitempty"`
}

// handleCorpusStats reports corpus size and, with ?length=n, the number of eligible prefixes.
func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	var res statsRes
	res.Documents, res.Sections, res.Units = s.ix.Corpus().Stats()
	if v := r.URL.Query().Get("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writePuzzleError(w, corpus.ErrInvalidLength)
			return
		}
		count, err := s.ix.Count(n)
		if err != nil {
			writePuzzleError(w, err)
			return
		}
		res.Length, res.Prefixes = n, &count
	}
	_ = json.NewEncoder(w).Encode(res)
}

// writePuzzleError maps selection errors onto HTTP responses.
func writePuzzleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, puzzle.ErrInvalidLength):
		http.Error(w, `{"error":"invalid_length"}`, http.StatusBadRequest)
	case errors.Is(err, puzzle.ErrNoPuzzleAvailable):
		http.Error(w, `{"error":"no_puzzle"}`, http.StatusNotFound)
	default:
		log.Error().Err(err).Msg("puzzle selection")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
	}
}
