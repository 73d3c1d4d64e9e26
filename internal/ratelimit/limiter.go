// Package ratelimit caps how many mutating requests one client can push
// through the dashboard to the roster API.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Config holds rate limit configuration.
type Config struct {
	MaxPerWindow int           // Mutations allowed per client per window (default: 60)
	Window       time.Duration // Window length (default: 1m)
	TrustProxy   bool          // Read the client IP from X-Forwarded-For / X-Real-IP

	// Clock for testing (nil uses real time)
	Clock clockwork.Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxPerWindow: 60,
		Window:       time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	count   int
	firstAt time.Time
}

// Limiter counts mutations per client in fixed windows.
type Limiter struct {
	config *Config
	clock  clockwork.Clock
	mu     sync.Mutex
	byIP   map[string]*entry

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()
	if cfg.MaxPerWindow <= 0 {
		cfg.MaxPerWindow = defaults.MaxPerWindow
	}
	if cfg.Window <= 0 {
		cfg.Window = defaults.Window
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Limiter{
		config:        cfg,
		clock:         clock,
		byIP:          make(map[string]*entry),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Limiter) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// Allow records one mutation for ip and reports whether it may proceed.
// Rejected attempts are not counted.
func (l *Limiter) Allow(ip string) LimitResult {
	l.startCleanup()
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byIP[ip]
	if e == nil || now.Sub(e.firstAt) >= l.config.Window {
		l.byIP[ip] = &entry{count: 1, firstAt: now}
		return LimitResult{Allowed: true, Remaining: l.config.MaxPerWindow - 1}
	}
	if e.count >= l.config.MaxPerWindow {
		return LimitResult{
			Allowed:    false,
			RetryAfter: l.config.Window - now.Sub(e.firstAt),
		}
	}
	e.count++
	return LimitResult{Allowed: true, Remaining: l.config.MaxPerWindow - e.count}
}

// Middleware rejects mutating requests over the limit with 429. Reads pass.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		ip := GetClientIP(r, l.config.TrustProxy)
		result := l.Allow(ip)
		if !result.Allowed {
			log.Ctx(r.Context()).Warn().
				Str("event", "rate_limit_exceeded").
				Str("ip", ip).
				Str("path", r.URL.Path).
				Dur("retry_after", result.RetryAfter).
				Msg("Mutation rate limit exceeded")
			seconds := int(result.RetryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			http.Error(w, "Too many changes, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := l.clock.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.Chan():
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Limiter) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, e := range l.byIP {
		if now.Sub(e.firstAt) >= l.config.Window {
			delete(l.byIP, k)
		}
	}
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost public IP from X-Forwarded-For.
// When trustProxy is false, ignores forwarding headers entirely.
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			return strings.TrimSpace(parts[len(parts)-1])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

// privateNetworks holds parsed CIDR ranges for private/reserved IPs.
var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range.
// IPv4-mapped IPv6 addresses are matched as IPv4.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
