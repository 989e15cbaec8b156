package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"perfdash/internal/transport/http/api"
)

// Recoverer turns a panic in any handler into the generic 500 body.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := newStatusRecorder(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered",
					"err", rec,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				if !recorder.wroteHeader {
					api.InternalError(recorder, r)
				}
			}()
			next.ServeHTTP(recorder, r)
		})
	}
}
