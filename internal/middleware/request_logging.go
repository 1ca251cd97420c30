package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// responseWriter captures status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

const identityKey contextKey = "identity"

// requestIdentity is filled by the auth middleware further down the chain so
// the access log can name the caller.
type requestIdentity struct {
	UserID int
	Email  string
	Role   string
}

// RequestLogger writes one access log line per request. Client errors log at
// warn, server errors at error.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipLogging(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		identity := &requestIdentity{}

		next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))

		fields := []interface{}{
			"method", r.Method,
			"path", sanitizePath(r.URL.Path),
			"status", wrapped.statusCode,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"response_size", wrapped.bytesWritten,
			"ip", getClientIP(r),
		}
		if identity.UserID > 0 {
			fields = append(fields, "user_id", identity.UserID, "email", identity.Email, "role", identity.Role)
		}

		log := zap.S()
		switch {
		case wrapped.statusCode >= 500:
			log.Errorw("[HTTP] Request failed", fields...)
		case wrapped.statusCode >= 400:
			log.Warnw("[HTTP] Request rejected", fields...)
		default:
			log.Infow("[HTTP] Request", fields...)
		}
	})
}

func shouldSkipLogging(path string) bool {
	for _, skip := range []string{"/health", "/metrics", "/favicon.ico"} {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}
	return false
}

func sanitizePath(path string) string {
	if len(path) > 500 {
		path = path[:500]
	}
	return path
}

// getClientIP prefers proxy headers over RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
