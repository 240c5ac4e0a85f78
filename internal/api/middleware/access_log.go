package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку лога на каждый запрос
func AccessLog(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("http request: request_id=%s method=%s path=%s status=%d bytes=%d duration_ms=%d",
				GetRequestID(r.Context()),
				r.Method,
				r.URL.Path,
				rec.Status(),
				rec.bytes,
				time.Since(start).Milliseconds(),
			)
		})
	}
}
