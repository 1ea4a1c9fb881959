package httpadapter

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type ctxKeyRequestID struct{}

// requestIDMiddleware takes the caller's X-Request-Id when present, mints
// one otherwise, and echoes it on the response so an upload can be
// correlated with the worker's seeding logs.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// accessLogMiddleware emits one structured line per request. The level
// follows the response class: 5xx error, 4xx warn, everything else info.
func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tap := &responseTap{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(tap, r)

		attrs := []any{
			"request_id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", tap.status,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes", tap.written,
			"remote_addr", clientIP(r),
			"user_agent", r.UserAgent(),
		}
		switch {
		case tap.status >= 500:
			slog.Error("http_request", attrs...)
		case tap.status >= 400:
			slog.Warn("http_request", attrs...)
		default:
			slog.Info("http_request", attrs...)
		}
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// responseTap records status and size for the access log. The API serves
// JSON and whole-file downloads, so there is no hijack or push to pass
// through.
type responseTap struct {
	http.ResponseWriter
	status  int
	written int
}

func (t *responseTap) WriteHeader(status int) {
	t.status = status
	t.ResponseWriter.WriteHeader(status)
}

func (t *responseTap) Write(b []byte) (int, error) {
	n, err := t.ResponseWriter.Write(b)
	t.written += n
	return n, err
}
