// Package config manages the gateway configuration stored in server_config.json.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// FileName is the configuration file name inside the data directory.
const FileName = "server_config.json"

// ServerConfig stores all server-wide configuration.
// Loaded from server_config.json, created with defaults if missing.
type ServerConfig struct {
	// Environment gates the development gateway; only "development" opens it.
	Environment string `json:"environment" jsonschema:"description=Running environment; only development enables the editing gateway,default=production"`

	// ContentDir is the content root. Relative paths are resolved against the data directory.
	ContentDir string `json:"content_dir" jsonschema:"description=Content root directory; relative to the data directory when not absolute,default=content"`

	// MaxDocumentBytes caps the size of a single document.
	MaxDocumentBytes int64 `json:"max_document_bytes" jsonschema:"description=Maximum document size in bytes,minimum=1"`

	// MaxRequestBodyBytes limits the size of any single HTTP request body.
	MaxRequestBodyBytes int64 `json:"max_request_body_bytes" jsonschema:"description=Maximum HTTP request body size in bytes; 0 means unlimited,minimum=0"`

	// TrustProxyHeaders makes X-Forwarded-For and X-Real-IP the client address
	// used for rate limiting. Only enable behind a reverse proxy that sets them.
	TrustProxyHeaders bool `json:"trust_proxy_headers" jsonschema:"description=Use X-Forwarded-For and X-Real-IP as the client address"`

	// CompileCache configures the compiled preview cache.
	CompileCache CompileCache `json:"compile_cache"`

	// RateLimits defines rate limiting configuration.
	RateLimits RateLimits `json:"rate_limits"`
}

// CompileCache configures the compiled preview cache.
type CompileCache struct {
	// TTL is how long an entry stays valid after it is stored. 0 keeps entries
	// until evicted for capacity.
	TTL Duration `json:"ttl" jsonschema:"description=Entry lifetime; 0 disables expiry"`

	// MaxEntries caps the number of cached outputs. 0 disables the cache.
	MaxEntries int `json:"max_entries" jsonschema:"description=Maximum cached entries; 0 disables the cache,minimum=0"`
}

// Validate checks that cache values are non-negative.
func (c *CompileCache) Validate() error {
	if c.TTL < 0 {
		return errors.New("ttl must be non-negative")
	}
	if c.MaxEntries < 0 {
		return errors.New("max_entries must be non-negative")
	}
	return nil
}

// RateLimits defines rate limiting configuration (requests per minute per client IP).
type RateLimits struct {
	// ReadPerMin limits list and read operations.
	// 0 means unlimited.
	ReadPerMin int `json:"read_per_min" jsonschema:"description=List and read requests per minute per client IP; 0 means unlimited,minimum=0"`

	// WritePerMin limits create, write, delete and rename operations.
	// 0 means unlimited.
	WritePerMin int `json:"write_per_min" jsonschema:"description=Mutating requests per minute per client IP; 0 means unlimited,minimum=0"`

	// CompilePerMin limits compile previews.
	// 0 means unlimited.
	CompilePerMin int `json:"compile_per_min" jsonschema:"description=Compile previews per minute per client IP; 0 means unlimited,minimum=0"`

	// CompileBurstPerSec caps compile previews per second across all callers.
	// 0 means unlimited.
	CompileBurstPerSec int `json:"compile_burst_per_sec" jsonschema:"description=Compile previews per second across all callers; 0 means unlimited,minimum=0"`
}

// Validate checks that rate limit values are non-negative.
func (r *RateLimits) Validate() error {
	if r.ReadPerMin < 0 {
		return errors.New("read_per_min must be non-negative")
	}
	if r.WritePerMin < 0 {
		return errors.New("write_per_min must be non-negative")
	}
	if r.CompilePerMin < 0 {
		return errors.New("compile_per_min must be non-negative")
	}
	if r.CompileBurstPerSec < 0 {
		return errors.New("compile_burst_per_sec must be non-negative")
	}
	return nil
}

// DefaultRateLimits returns the default rate limits.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		ReadPerMin:         600, // 600 req/min for list and read
		WritePerMin:        60,  // 60 req/min for mutations
		CompilePerMin:      120, // 120 req/min for previews
		CompileBurstPerSec: 10,  // 10 previews/s for the whole process
	}
}

// Default returns the configuration written on first start.
func Default() ServerConfig {
	return ServerConfig{
		Environment:         "production",
		ContentDir:          "content",
		MaxDocumentBytes:    1024 * 1024,     // 1 MiB
		MaxRequestBodyBytes: 2 * 1024 * 1024, // 2 MiB
		CompileCache:        CompileCache{TTL: Duration(5 * time.Minute), MaxEntries: 100},
		RateLimits:          DefaultRateLimits(),
	}
}

// Validate checks that the configuration is valid.
func (c *ServerConfig) Validate() error {
	if strings.TrimSpace(c.Environment) == "" {
		return errors.New("environment is required")
	}
	if c.ContentDir == "" {
		return errors.New("content_dir is required")
	}
	if c.MaxDocumentBytes <= 0 {
		return errors.New("max_document_bytes must be positive")
	}
	if c.MaxRequestBodyBytes < 0 {
		return errors.New("max_request_body_bytes must be non-negative")
	}
	if c.MaxRequestBodyBytes > 0 && c.MaxRequestBodyBytes < c.MaxDocumentBytes {
		return errors.New("max_request_body_bytes must be at least max_document_bytes")
	}
	if err := c.CompileCache.Validate(); err != nil {
		return fmt.Errorf("compile_cache: %w", err)
	}
	if err := c.RateLimits.Validate(); err != nil {
		return fmt.Errorf("rate_limits: %w", err)
	}
	return nil
}

// ContentRoot returns ContentDir resolved against dataDir.
func (c *ServerConfig) ContentRoot(dataDir string) string {
	if filepath.IsAbs(c.ContentDir) {
		return c.ContentDir
	}
	return filepath.Join(dataDir, c.ContentDir)
}

// LoadServerConfig loads configuration from dataDir/server_config.json.
// Creates the file with defaults if it doesn't exist. Fields missing from the
// file keep their default value.
func LoadServerConfig(dataDir string) (*ServerConfig, error) {
	path := filepath.Join(dataDir, FileName)

	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir, not user input
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
		if err := cfg.Save(dataDir); err != nil {
			return nil, err
		}
	} else {
		d := json.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Save saves configuration to dataDir/server_config.json.
func (c *ServerConfig) Save(dataDir string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dataDir, FileName), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}

// Schema returns the JSON schema of server_config.json.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&ServerConfig{})
	s.Title = FileName
	return json.MarshalIndent(s, "", "  ")
}
