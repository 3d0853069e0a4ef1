package ratelimit

import (
	"testing"
	"time"

	"github.com/maruel/mdgate/internal/config"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(config.RateLimits{ReadPerMin: 600, WritePerMin: 60, CompilePerMin: 120, CompileBurstPerSec: 10})
	defer cfg.Close()

	if cfg.Read.Limiter.limit != 600 || cfg.Write.Limiter.limit != 60 || cfg.Compile.Limiter.limit != 120 {
		t.Error("unexpected per-minute limits")
	}
	if cfg.Read.Global != nil || cfg.Write.Global != nil {
		t.Error("only the compile tier has a global bucket")
	}
	if cfg.Compile.Global == nil || cfg.Compile.Global.Burst() != 10 {
		t.Error("compile tier should have a global bucket of 10")
	}

	noGlobal := NewConfig(config.RateLimits{CompilePerMin: 1})
	defer noGlobal.Close()
	if noGlobal.Compile.Global != nil {
		t.Error("CompileBurstPerSec=0 should disable the global bucket")
	}
}

func TestConfig_Match(t *testing.T) {
	cfg := NewConfig(config.RateLimits{ReadPerMin: 1, WritePerMin: 1, CompilePerMin: 1})
	defer cfg.Close()

	tests := []struct {
		method string
		path   string
		want   *Tier
	}{
		{"GET", "/api/health", nil},
		{"GET", "/api/dev/docs", &cfg.Read},
		{"GET", "/api/dev/docs/read", &cfg.Read},
		{"POST", "/api/dev/docs/create", &cfg.Write},
		{"POST", "/api/dev/docs/write", &cfg.Write},
		{"POST", "/api/dev/docs/delete", &cfg.Write},
		{"POST", "/api/dev/docs/rename", &cfg.Write},
		{"POST", "/api/dev/compile", &cfg.Compile},
		{"OPTIONS", "/api/dev/docs", nil},
		{"GET", "/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := cfg.Match(tt.method, tt.path); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTier_GlobalBucket(t *testing.T) {
	cfg := NewConfig(config.RateLimits{CompilePerMin: 100, CompileBurstPerSec: 2})
	defer cfg.Close()

	// Two callers share the global bucket of 2.
	if !cfg.Compile.Allow("10.0.0.1").Allowed || !cfg.Compile.Allow("10.0.0.2").Allowed {
		t.Fatal("first two requests should pass")
	}
	r := cfg.Compile.Allow("10.0.0.3")
	if r.Allowed {
		t.Fatal("global bucket should be exhausted")
	}
	if r.RetryAfter <= 0 || r.RetryAfter > time.Second {
		t.Errorf("RetryAfter = %v", r.RetryAfter)
	}
}

func TestTier_CallerDenialReturnsGlobalToken(t *testing.T) {
	cfg := NewConfig(config.RateLimits{CompilePerMin: 1, CompileBurstPerSec: 2})
	defer cfg.Close()

	if !cfg.Compile.Allow("a").Allowed {
		t.Fatal("first request should pass")
	}
	// Denied by a's own window: the global token is handed back.
	for range 5 {
		if cfg.Compile.Allow("a").Allowed {
			t.Fatal("a should be limited")
		}
	}
	if !cfg.Compile.Allow("b").Allowed {
		t.Error("b should still get the remaining global token")
	}
}
