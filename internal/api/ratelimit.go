package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/redis"
)

// Limiter decides whether a client may issue another request
type Limiter interface {
	Allow(ctx context.Context, clientKey string) (bool, error)
}

// NewLimiter picks the Redis sliding window when Redis is enabled,
// otherwise an in-process token bucket per client.
func NewLimiter(cfg *config.Config, client *redis.Client) Limiter {
	if client != nil && client.Enabled() {
		return &redisLimiter{
			limiter: redis.NewRateLimiter(client, "tradejournal"),
			cfg:     cfg,
		}
	}
	return newLocalLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
}

// redisLimiter shares the window across API replicas
type redisLimiter struct {
	limiter *redis.RateLimiter
	cfg     *config.Config
}

func (l *redisLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	allowed, _, err := l.limiter.Allow(ctx, redis.APIRateLimit(l.cfg, clientKey))
	return allowed, err
}

// =============================================================================
// In-process limiter
// =============================================================================

// minIdleTTL lower bound for evicting an idle bucket
const minIdleTTL = time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// localLimiter one x/time/rate bucket per client key.
// 유휴 버킷은 다 찬 버킷과 동일하므로 idleTTL 이후 제거해도 한도는 그대로.
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter(perMinute, burst int) *localLimiter {
	limit := rate.Limit(float64(perMinute) / 60)

	// 빈 버킷이 burst 까지 다시 차는 시간
	idleTTL := time.Duration(float64(burst) / float64(limit) * float64(time.Second))
	if idleTTL < minIdleTTL {
		idleTTL = minIdleTTL
	}

	return &localLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

func (l *localLimiter) Allow(_ context.Context, clientKey string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	b, ok := l.buckets[clientKey]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[clientKey] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle for at least idleTTL. Caller holds mu.
func (l *localLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

func (l *localLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// =============================================================================
// Client identification
// =============================================================================

// TrustedProxies networks whose X-Forwarded-For header is believed
type TrustedProxies []*net.IPNet

// ParseTrustedProxies accepts IPs and CIDRs (TRUSTED_PROXIES)
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	proxies := make(TrustedProxies, 0, len(entries))
	for _, entry := range entries {
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: not an IP", entry)
			}
			bits := 8 * net.IPv4len
			if ip.To4() == nil {
				bits = 8 * net.IPv6len
			}
			entry = fmt.Sprintf("%s/%d", entry, bits)
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		proxies = append(proxies, network)
	}
	return proxies, nil
}

func (p TrustedProxies) contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientKey identifies the caller. The remote address is used unless it
// is a trusted proxy; then X-Forwarded-For is walked right to left and
// the first hop that is not a trusted proxy wins.
func (p TrustedProxies) ClientKey(r *http.Request) string {
	remote := remoteHost(r)
	if !p.contains(net.ParseIP(remote)) {
		return remote
	}

	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(header, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}

	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(hops[i])
		if ip == nil {
			// 위조/깨진 값 이후는 신뢰 불가
			return remote
		}
		if !p.contains(ip) {
			return ip.String()
		}
	}
	return remote
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
