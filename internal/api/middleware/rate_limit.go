package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgRateLimited = "Too many requests, try again later"

// DefaultIdleTTL время, после которого лимитер неактивного клиента удаляется
const DefaultIdleTTL = 10 * time.Minute

// RateLimitPolicy настройки ограничения частоты запросов
type RateLimitPolicy struct {
	RequestsPerMinute int
	Burst             int
	// Ограничиваются только эти методы; пустой список означает все методы
	Methods []string
	// IP или CIDR прокси, которым разрешено передавать адрес клиента в X-Forwarded-For
	TrustedProxies []string
	IdleTTL        time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного клиента (token bucket на IP)
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	methods map[string]struct{}
	trusted []*net.IPNet
	idleTTL time.Duration
	logger  Logger
	now     func() time.Time

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
}

// NewRateLimiter создает лимитер по политике.
// Возвращает ошибку, если среди TrustedProxies есть некорректный адрес.
func NewRateLimiter(policy RateLimitPolicy, logger Logger) (*RateLimiter, error) {
	trusted, err := ParseTrustedProxies(policy.TrustedProxies)
	if err != nil {
		return nil, err
	}

	burst := max(policy.Burst, 1)
	interval := time.Minute / time.Duration(max(policy.RequestsPerMinute, 1))

	// Удаленный лимитер равносилен полному бакету, поэтому ждем хотя бы полного восполнения
	idleTTL := policy.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	idleTTL = max(idleTTL, interval*time.Duration(burst))

	set := make(map[string]struct{}, len(policy.Methods))
	for _, m := range policy.Methods {
		set[strings.ToUpper(strings.TrimSpace(m))] = struct{}{}
	}

	return &RateLimiter{
		limit:    rate.Every(interval),
		burst:    burst,
		methods:  set,
		trusted:  trusted,
		idleTTL:  idleTTL,
		logger:   logger,
		now:      time.Now,
		limiters: make(map[string]*clientLimiter),
	}, nil
}

// ParseTrustedProxies разбирает список IP и CIDR
func ParseTrustedProxies(values []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			_, n, err := net.ParseCIDR(v)
			if err != nil {
				return nil, fmt.Errorf("rate limit: invalid trusted proxy %q: %w", v, err)
			}
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(v)
		if ip == nil {
			return nil, fmt.Errorf("rate limit: invalid trusted proxy %q", v)
		}
		bits := 8 * net.IPv6len
		if ip4 := ip.To4(); ip4 != nil {
			ip, bits = ip4, 8*net.IPv4len
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

// Middleware возвращает middleware с проверкой лимита
func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.applies(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := rl.clientKey(r)
			if !rl.allow(key) {
				rl.logger.Warn("rate limit exceeded: client=%s method=%s path=%s", key, r.Method, r.URL.Path)
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) applies(method string) bool {
	if len(rl.methods) == 0 {
		return true
	}
	_, ok := rl.methods[method]
	return ok
}

func (rl *RateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		rl.sweep(now)
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// sweep удаляет лимитеры клиентов, не активных дольше idleTTL. Вызывается под rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) >= rl.idleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

// clientKey адрес клиента. X-Forwarded-For учитывается только от доверенного прокси:
// берется самый правый адрес цепочки, который сам не является доверенным прокси.
func (rl *RateLimiter) clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !rl.isTrusted(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" || net.ParseIP(hop) == nil {
			continue
		}
		if !rl.isTrusted(hop) {
			return hop
		}
		host = hop
	}
	return host
}

func (rl *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range rl.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
