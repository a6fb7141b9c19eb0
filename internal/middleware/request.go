package middleware

import (
	"net/http"
	"time"

	"blushmart-web/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookie = "bm_session"

// RequestID tags every request with an X-Request-ID, minting one when the
// client didn't send one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := logger.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID resolves the browser's session namespace from a cookie (or
// X-Session-ID header for non-browser clients), minting and setting one
// on first contact. Stores are resolved per session id downstream.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessID := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			sessID = cookie.Value
		}
		if sessID == "" {
			sessID = r.Header.Get("X-Session-ID")
		}
		if sessID == "" {
			sessID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := logger.WithSessionID(r.Context(), sessID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging writes one access log line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.FromCtx(r.Context())

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info("incoming request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.String("ip", r.RemoteAddr),
			zap.Duration("duration_ms", time.Since(start)),
		)
	})
}
