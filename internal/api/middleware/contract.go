package middleware

import "net/http"

// Middleware оборачивает http.Handler
type Middleware func(http.Handler) http.Handler

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Chain применяет middleware так, что Chain(h, a, b) == a(b(h))
func Chain(h http.Handler, m ...Middleware) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}
