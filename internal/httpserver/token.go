// internal/httpserver/token.go
//
// Session tokens.
// A token is an HS256 JWT whose "sid" claim names the one session it may
// drive. Session routes reject requests whose token is missing, expired,
// signed with another key, or bound to a different session.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/subverse/internal/session"
)

// ctxSessionKey is the context key type for the resolved *session.Session.
type ctxSessionKey struct{}

// signToken creates a token for sid valid for ttl.
func signToken(secret, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}

// parseToken verifies a token and returns its session id.
func parseToken(secret, tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid token")
	}
	return sid, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// requireSession enforces a valid token for the {id} route parameter and
// injects the live session into the request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			sid, err := parseToken(s.cfg.Secret, tok)
			if err != nil || sid != chi.URLParam(r, "id") {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			sess, err := s.store.Get(r.Context(), sid)
			if err != nil {
				http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentSession returns the session placed by requireSession.
func currentSession(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*session.Session)
	return sess
}
