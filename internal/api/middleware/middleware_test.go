package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler, mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)
}

func TestCORS(t *testing.T) {
	h := CORS(CORSPolicy{
		AllowedOrigins: []string{"http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "PATCH"},
		AllowedHeaders: []string{"Content-Type"},
	})(okHandler)

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/appointments", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PATCH", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/slots", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		CORS(CORSPolicy{})(okHandler).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter(t *testing.T) {
	rl, err := NewRateLimiter(RateLimitPolicy{RequestsPerMinute: 60, Burst: 2, Methods: []string{"POST"}}, logger.NewNop())
	require.NoError(t, err)
	h := rl.Middleware()(okHandler)

	do := func(method, ip string) int {
		req := httptest.NewRequest(method, "/api/appointments", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost, "10.0.0.1"))

	// другой клиент и не ограничиваемый метод проходят
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.2"))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "10.0.0.1"))
	}
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	rl, err := NewRateLimiter(RateLimitPolicy{RequestsPerMinute: 1, Burst: 1}, logger.NewNop())
	require.NoError(t, err)
	h := rl.Middleware()(okHandler)

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Len(t, rl.limiters, 1)
}

func TestRateLimiter_ClientKey(t *testing.T) {
	rl, err := NewRateLimiter(RateLimitPolicy{TrustedProxies: []string{"10.0.0.0/8", "192.168.1.1"}}, logger.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{"direct client", "198.51.100.4:1234", "", "198.51.100.4"},
		{"untrusted peer with header", "198.51.100.4:1234", "203.0.113.7", "198.51.100.4"},
		{"trusted proxy", "10.1.2.3:1234", "203.0.113.7", "203.0.113.7"},
		{"spoofed left hop", "10.1.2.3:1234", "1.1.1.1, 203.0.113.7", "203.0.113.7"},
		{"chain of trusted proxies", "192.168.1.1:1234", "203.0.113.7, 10.0.0.5", "203.0.113.7"},
		{"trusted proxy without header", "10.1.2.3:1234", "", "10.1.2.3"},
		{"garbage hop skipped", "10.1.2.3:1234", "203.0.113.7, not-an-ip", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, rl.clientKey(req))
		})
	}
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl, err := NewRateLimiter(RateLimitPolicy{RequestsPerMinute: 60, Burst: 1, IdleTTL: time.Minute}, logger.NewNop())
	require.NoError(t, err)

	now := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	for i := 0; i < 20; i++ {
		rl.allow(fmt.Sprintf("198.51.100.%d", i))
	}
	assert.Len(t, rl.limiters, 20)

	now = now.Add(2 * time.Minute)
	rl.allow("198.51.100.200")
	assert.Len(t, rl.limiters, 1)
}

func TestNewRateLimiter_InvalidTrustedProxy(t *testing.T) {
	_, err := NewRateLimiter(RateLimitPolicy{TrustedProxies: []string{"10.0.0.0/33"}}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewRateLimiter(RateLimitPolicy{TrustedProxies: []string{"proxy.local"}}, logger.NewNop())
	assert.Error(t, err)
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	h := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		_, readErr = r.Body.Read(buf)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "test"))
	r.HandleFunc("/api/appointments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/appointments/"+id, nil))
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("test", http.MethodGet, "/api/appointments/{id}", "404"))
	assert.Equal(t, 3.0, got)
	assert.Zero(t, testutil.ToFloat64(m.HTTPRequestsInFlight.WithLabelValues("test")))
}
