package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/ridewitus"
	"golang.org/x/time/rate"
)

const (
	DefaultRateLimit = 5
	DefaultBurst     = 20

	visitorTTL = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	burst int
	rps   rate.Limit
	val   map[string]Visitor
	sync.Mutex
}

// NewVisitors constructs a *Visitors limiting each IP address
// to rps requests every second with bursts of up to burst.
// Non-positive values fall back to DefaultRateLimit and DefaultBurst.
func NewVisitors(rps float64, burst int) *Visitors {
	if rps <= 0 {
		rps = DefaultRateLimit
	}

	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Visitors{burst: burst, rps: rate.Limit(rps), val: make(map[string]Visitor)}
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.rps, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()
	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit encloses the Visitors map and serves the http.Handler,
// answering 429 once a visitor exhausts its limiter.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := IPAddress(r.Context())
			if ip == "" {
				ip = ClientIP(r)
			}

			if !visitors.Fetch(ip).Limiter.Allow() {
				writeJSONErr(w, http.StatusTooManyRequests, ridewitus.CodeRateLimited, http.StatusText(http.StatusTooManyRequests))
				return
			}

			visitors.cleanup()
			h.ServeHTTP(w, r)
		})
	}
}
