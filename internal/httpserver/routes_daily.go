// internal/httpserver/routes_daily.go
//
// HTTP route for the daily puzzle.
//   - POST /daily/new → open a session on today's seed at the daily length
//
// Everyone gets the same puzzle on the same UTC day; the seed is derived from
// the date (and DAILY_SALT) so no daily state is stored anywhere.

package httpserver

import (
	"net/http"

	"github.com/robalobadob/subverse/internal/daily"
	"github.com/robalobadob/subverse/internal/session"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily() {
	s.r.Post("/daily/new", s.handleDailyNew)
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	s.openSession(w, r, session.Options{
		Length: s.cfg.DailyLength,
		Seed:   daily.Seed(s.now(), s.cfg.DailySalt),
	})
}
