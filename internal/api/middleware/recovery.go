package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgInternalError = "Internal server error"

// Recovery перехватывает панику в обработчике и отвечает 500
func Recovery(logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					logger.Error("panic recovered: request_id=%s method=%s path=%s panic=%v\n%s",
						GetRequestID(r.Context()), r.Method, r.URL.Path, p, debug.Stack())
					handlers.RespondInternalError(w, msgInternalError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
