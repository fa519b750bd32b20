package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type contextKey string

const userIDKey contextKey = "userID"

// DevLoginHeader names the request header used to pick a login when the
// server runs without tsnet. Meant for local development only.
const DevLoginHeader = "X-Liftlog-Login"

// userID returns the authenticated user id stored by the Identity middleware.
func userID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

// Identity resolves the requesting user and stores their id on the request
// context. On a tailnet the peer's WhoIs identity is authoritative; in dev
// mode the login comes from the DevLoginHeader and defaults to "dev".
func (s *Server) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		login := "dev"
		displayName := ""

		if s.lc != nil {
			who, err := s.lc.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil {
				s.log.Warn("whois failed", "remote", r.RemoteAddr, "error", err)
				http.Error(w, `{"error":"identity unresolved"}`, http.StatusUnauthorized)
				return
			}
			login = who.UserProfile.LoginName
			displayName = who.UserProfile.DisplayName
		} else if h := r.Header.Get(DevLoginHeader); h != "" {
			login = h
		}

		id, err := s.users.GetOrCreateUser(r.Context(), login, displayName)
		if err != nil {
			s.log.Error("user resolution failed", "login", login, "error", err)
			http.Error(w, `{"error":"identity unresolved"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKeyAuth returns middleware that validates the X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
				return
			}
			if key != apiKey {
				http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, "+DevLoginHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
