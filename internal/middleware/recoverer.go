package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer recovers from panics in downstream handlers, logs the panic
// value with a stack trace and delegates the response to onPanic.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(logger *log.Logger, onPanic http.Handler) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logger.Printf("panic: %v id=%s\n%s", rvr, RequestIDFromContext(r.Context()), debug.Stack())

				// Upgraded connections have no usable response writer.
				if r.Header.Get("Connection") != "Upgrade" {
					onPanic.ServeHTTP(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
