// Defines rate limit tiers and routing rules.

package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/maruel/mdgate/internal/config"
	"golang.org/x/time/rate"
)

// Tier is a named per-caller limit, optionally backed by a process-wide token
// bucket shared by every caller.
type Tier struct {
	Name    string
	Limiter *Limiter
	Global  *rate.Limiter // nil when the tier has no global cap
}

// Allow checks the tier for the caller identified by identifier (a client IP).
//
// The global bucket is consulted first and its token is returned when the
// caller's own window denies the request, so one noisy caller cannot drain
// the shared bucket.
func (t *Tier) Allow(identifier string) Result {
	var res *rate.Reservation
	now := t.Limiter.now()
	if t.Global != nil {
		res = t.Global.ReserveN(now, 1)
		if !res.OK() {
			return Result{Limit: t.Limiter.limit, ResetAt: now.Add(time.Second), RetryAfter: time.Second}
		}
		if d := res.DelayFrom(now); d > 0 {
			res.CancelAt(now)
			return Result{Limit: t.Limiter.limit, ResetAt: now.Add(d), RetryAfter: d}
		}
	}
	r := t.Limiter.Allow(BuildKey(identifier, t.Name))
	if !r.Allowed && res != nil {
		// Same instant as the reservation, otherwise the token is not restored.
		res.CancelAt(now)
	}
	return r
}

// Config holds rate limiters for the gateway tiers.
type Config struct {
	Read    Tier // list, read
	Write   Tier // create, write, delete, rename
	Compile Tier // compile preview
}

// NewConfig creates the tiers from the configured per-minute limits:
//   - read: ReadPerMin per client IP
//   - write: WritePerMin per client IP
//   - compile: CompilePerMin per client IP, plus CompileBurstPerSec across all callers.
func NewConfig(limits config.RateLimits) *Config {
	c := &Config{
		Read:    Tier{Name: "read", Limiter: NewLimiter(limits.ReadPerMin, time.Minute)},
		Write:   Tier{Name: "write", Limiter: NewLimiter(limits.WritePerMin, time.Minute)},
		Compile: Tier{Name: "compile", Limiter: NewLimiter(limits.CompilePerMin, time.Minute)},
	}
	if n := limits.CompileBurstPerSec; n > 0 {
		c.Compile.Global = rate.NewLimiter(rate.Limit(n), n)
	}
	return c
}

// Match returns the tier for a request.
// Returns nil for paths that should not be rate limited.
func (c *Config) Match(method, path string) *Tier {
	// Skip health check
	if path == "/api/health" {
		return nil
	}
	if !strings.HasPrefix(path, "/api/dev/") {
		return nil
	}
	if path == "/api/dev/compile" {
		return &c.Compile
	}
	switch method {
	case http.MethodGet, http.MethodHead:
		return &c.Read
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return &c.Write
	}
	return nil
}

// Close stops all limiter cleanup goroutines.
func (c *Config) Close() {
	c.Read.Limiter.Close()
	c.Write.Limiter.Close()
	c.Compile.Limiter.Close()
}
