package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs each API and health request with method, path, status
// code, duration and request id.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			if !logged(r.URL.Path) {
				return
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Printf("%s %s %d %s id=%s",
				r.Method,
				r.URL.Path,
				status,
				time.Since(start).Round(time.Millisecond),
				RequestIDFromContext(r.Context()),
			)
		})
	}
}

func logged(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/health"
}
