package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/RewardEngine_Go/internal/logger"
)

// ActivityLimits configures the activity detector
type ActivityLimits struct {
	// FailedAuthAlert is the failed attempt count per window that raises an alert
	FailedAuthAlert int
	// MaxRequests is the request budget per IP and window
	MaxRequests int
	Window      time.Duration
}

// DefaultActivityLimits returns the production limits
func DefaultActivityLimits() ActivityLimits {
	return ActivityLimits{
		FailedAuthAlert: DefaultFailedAuthAlert,
		MaxRequests:     DefaultMaxRequests,
		Window:          DefaultActivityWindow,
	}
}

// ActivityDetector counts requests and failed authentications per client IP
// over a fixed window
type ActivityDetector struct {
	limits ActivityLimits
	now    func() time.Time

	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
}

// NewActivityDetector creates a detector with the given limits
func NewActivityDetector(limits ActivityLimits) *ActivityDetector {
	d := &ActivityDetector{
		limits: limits,
		now:    time.Now,
	}
	d.reset()
	return d
}

// RecordFailedAuth counts a failed authentication from ip
func (d *ActivityDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.failedAuth[ip]++
	if n := d.failedAuth[ip]; n >= d.limits.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// Allow counts a request from ip and reports whether it is within budget
func (d *ActivityDetector) Allow(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.requests[ip]++
	n := d.requests[ip]
	if n <= d.limits.MaxRequests {
		return true
	}
	if n%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", n, "window", d.limits.Window)
	}
	return false
}

// requestCount returns the number of requests seen from ip in this window
func (d *ActivityDetector) requestCount(ip string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requests[ip]
}

// rollWindow must be called with mu held
func (d *ActivityDetector) rollWindow() {
	if d.now().Sub(d.windowStart) > d.limits.Window {
		d.reset()
	}
}

func (d *ActivityDetector) reset() {
	d.failedAuth = make(map[string]int)
	d.requests = make(map[string]int)
	d.windowStart = d.now()
}

// Auth rejects requests outside PublicPaths that do not carry the API key in
// X-API-Key or as an Authorization bearer token
func Auth(apiKey string, trustedProxies []string, detector *ActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := providedAPIKey(r)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func providedAPIKey(r *http.Request) string {
	if key := r.Header.Get(HeaderAPIKey); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get(HeaderAuthorization), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RateLimit blocks clients that exceed the detector's request budget
func RateLimit(trustedProxies []string, detector *ActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(clientIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit caps request bodies at maxBytes
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote address, or the last X-Forwarded-For hop when
// the request arrived through a trusted proxy
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeaders sets the standard browser hardening headers
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(HeaderContentType, HeaderValueNoSniff)
		h.Set(HeaderFrameOptions, HeaderValueDeny)
		h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
		h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}
