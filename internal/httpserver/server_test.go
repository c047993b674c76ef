package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/subverse/internal/config"
	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/game"
	"github.com/robalobadob/subverse/internal/session"
	"github.com/robalobadob/subverse/internal/store"
)

const testCorpus = `
Gen:
  "1":
    "1": "In the beginning, God created"
    "2": "Let there be light: and there was light."
John:
  "11":
    "35": "Jesus wept."
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := corpus.Parse([]byte(testCorpus))
	require.NoError(t, err)
	cfg := &config.Config{
		DailyLength:  3,
		LevelMin:     2,
		LevelMax:     8,
		Secret:       "test-secret",
		SessionTTL:   time.Hour,
		ClientOrigin: "http://localhost:5173",
	}
	s := New(store.NewMemoryStore(), corpus.NewIndexer(c), cfg)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func open(t *testing.T, s *Server, body newSessionReq) newSessionRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/session/new", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[newSessionRes](t, rec)
}

// slots maps original word positions of the (length, seed) puzzle to bank positions.
func slots(t *testing.T, s *Server, length int, seed string) map[int]int {
	t.Helper()
	p, err := s.sel.New(length, seed)
	require.NoError(t, err)
	out := map[int]int{}
	for _, tile := range p.Tiles {
		if tile.Index != 0 {
			out[tile.Index] = len(out)
		}
	}
	return out
}

func pick(slot int) map[string]int { return map[string]int{"slot": slot} }

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	t.Cleanup(func() { log.Logger = prev })

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/health", "", nil)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.NotEmpty(t, line["reqId"])
}

func TestSessionSolve(t *testing.T) {
	s := newTestServer(t)
	res := open(t, s, newSessionReq{Length: 3, Seed: "x"})
	require.NotEmpty(t, res.Token)
	assert.Equal(t, 3, res.Game.Total)
	assert.Equal(t, []string{"In"}, res.Game.Buffer)
	assert.Empty(t, res.Reference)
	assert.NotContains(t, do(t, s, http.MethodGet, "/session/"+res.ID, res.Token, nil).Body.String(), `"index"`)

	at := slots(t, s, 3, "x")
	base := "/session/" + res.ID
	// Wrong order first.
	for _, i := range []int{2, 1} {
		rec := do(t, s, http.MethodPost, base+"/pick", res.Token, pick(at[i]))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[session.Result](t, rec).Accepted)
	}
	r := decode[session.Result](t, do(t, s, http.MethodPost, base+"/submit", res.Token, nil))
	require.True(t, r.Accepted)
	assert.False(t, *r.Matched)

	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/submit", res.Token, nil))
	assert.False(t, r.Accepted, "unchanged resubmission")
	assert.Equal(t, 1, r.View.Game.GuessCount)

	do(t, s, http.MethodPost, base+"/reset", res.Token, nil)
	for _, i := range []int{1, 2} {
		do(t, s, http.MethodPost, base+"/pick", res.Token, pick(at[i]))
	}
	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/submit", res.Token, nil))
	require.True(t, r.Accepted)
	assert.True(t, *r.Matched)
	assert.Equal(t, game.StateWon, r.View.Game.State)
	assert.Equal(t, "Gen 1:1", r.View.Reference)

	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/undo", res.Token, nil))
	assert.False(t, r.Accepted)

	v := decode[session.View](t, do(t, s, http.MethodGet, base, res.Token, nil))
	assert.Equal(t, 2, v.Game.GuessCount)
}

func TestSessionAuth(t *testing.T) {
	s := newTestServer(t)
	a := open(t, s, newSessionReq{Length: 3, Seed: "x"})
	b := open(t, s, newSessionReq{Length: 2, Seed: "x"})

	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/session/"+a.ID, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/session/"+a.ID, b.Token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/session/"+a.ID, "garbage", nil).Code)

	forged, err := signToken("other-secret", a.ID, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/session/"+a.ID, forged, nil).Code)

	orphan, err := signToken("test-secret", "gone", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/session/gone", orphan, nil).Code)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/session/"+a.ID, a.Token, nil).Code)
}

func TestSessionNewErrors(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/session/new", "", newSessionReq{Length: -1, Seed: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_length")

	rec = do(t, s, http.MethodPost, "/session/new", "", newSessionReq{Length: 30, Seed: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_puzzle")

	req := httptest.NewRequest(http.MethodPost, "/session/new", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionDefaultsToDaily(t *testing.T) {
	s := newTestServer(t)
	res := open(t, s, newSessionReq{})
	assert.Equal(t, "2026-10-16", res.Seed)
	assert.Equal(t, 3, res.Length)

	rec := do(t, s, http.MethodPost, "/daily/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	daily := decode[newSessionRes](t, rec)
	assert.Equal(t, res.Seed, daily.Seed)
	assert.Equal(t, res.Game.Bank, daily.Game.Bank, "same day, same puzzle")
	assert.NotEqual(t, res.ID, daily.ID)
}

func TestSessionTutorial(t *testing.T) {
	s := newTestServer(t)
	res := open(t, s, newSessionReq{Length: 2, Seed: "x", Tutorial: true})
	base := "/session/" + res.ID

	r := decode[session.Result](t, do(t, s, http.MethodPost, base+"/pick", res.Token, pick(0)))
	require.NotNil(t, r.Callout)
	assert.False(t, r.Accepted)

	rec := do(t, s, http.MethodPost, base+"/pick", res.Token, pick(0))
	assert.Equal(t, http.StatusLocked, rec.Code)

	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/ack", res.Token, map[string]int{"num": 1, "step": 1}))
	assert.True(t, r.Accepted)

	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/pick", res.Token, pick(0)))
	assert.True(t, r.Accepted)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, base+"/pick", res.Token, map[string]string{}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, base+"/pick", res.Token, map[string]int{"index": 1}).Code)
}

func TestSessionLadder(t *testing.T) {
	s := newTestServer(t)
	res := open(t, s, newSessionReq{Seed: "x", Ladder: true})
	require.NotNil(t, res.Ladder)
	assert.Equal(t, 2, res.Length)
	base := "/session/" + res.ID

	r := decode[session.Result](t, do(t, s, http.MethodPost, base+"/next", res.Token, nil))
	assert.False(t, r.Accepted)

	do(t, s, http.MethodPost, base+"/pick", res.Token, pick(0))
	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/submit", res.Token, nil))
	require.True(t, *r.Matched)

	r = decode[session.Result](t, do(t, s, http.MethodPost, base+"/next", res.Token, nil))
	require.True(t, r.Accepted)
	assert.Equal(t, 3, r.View.Length)
	assert.Equal(t, "x", r.View.Seed)
}

func TestCorpusStats(t *testing.T) {
	s := newTestServer(t)
	res := decode[statsRes](t, do(t, s, http.MethodGet, "/corpus/stats?length=3", "", nil))
	assert.Equal(t, 2, res.Documents)
	assert.Equal(t, 3, res.Units)
	require.NotNil(t, res.Prefixes)
	assert.Equal(t, 1, *res.Prefixes)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/corpus/stats?length=0", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/corpus/stats?length=x", "", nil).Code)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
