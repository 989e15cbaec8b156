package middleware

import (
	"net/http"
	"time"
)

type RequestRecorder interface {
	Record(method, route string, status int, duration time.Duration)
}

func Metrics(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := newStatusRecorder(w)
			next.ServeHTTP(sr, r)
			recorder.Record(r.Method, routePattern(r), sr.status, time.Since(start))
		})
	}
}
