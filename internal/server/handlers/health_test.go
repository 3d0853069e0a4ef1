package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/maruel/mdgate/internal/compile"
	"github.com/maruel/mdgate/internal/server/devguard"
	"github.com/maruel/mdgate/internal/server/dto"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name    string
		version string
		env     string
		devMode bool
	}{
		{"development", "1.0.0", "development", true},
		{"production", "dev", "production", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.version, devguard.New(tt.env), nil)
			resp, err := handler.Health(context.Background(), &dto.HealthRequest{})
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if resp.Status != "ok" {
				t.Errorf("Status = %q, want ok", resp.Status)
			}
			if resp.Version != tt.version {
				t.Errorf("Version = %q, want %q", resp.Version, tt.version)
			}
			if resp.Environment != tt.env || resp.DevMode != tt.devMode {
				t.Errorf("Environment = %q, DevMode = %v", resp.Environment, resp.DevMode)
			}
		})
	}
}

func TestHealthHandler_CacheEntries(t *testing.T) {
	cache := compile.NewCache(time.Minute, 10)
	handler := NewHealthHandler("v", devguard.New("development"), cache)
	for i, want := range []int{0, 1, 2, 2} {
		if i > 0 {
			cache.Put(compile.Key([]byte{byte(min(i, 2))}), "out")
		}
		resp, err := handler.Health(context.Background(), &dto.HealthRequest{})
		if err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if resp.CacheEntries != want {
			t.Errorf("step %d: CacheEntries = %d, want %d", i, resp.CacheEntries, want)
		}
	}
}
