// Package devguard gates the editing gateway on the running environment.
package devguard

import (
	"errors"
	"strings"
)

// Development is the only environment that opens the gateway.
const Development = "development"

// ErrDisabled is returned by Check outside of development.
var ErrDisabled = errors.New("development gateway is disabled in this environment")

// Guard is fixed at startup and safe for concurrent use.
type Guard struct {
	env     string
	enabled bool
}

// New returns a Guard for env. Surrounding whitespace is ignored; the
// comparison is otherwise exact, so "Development" or "dev" keep the gateway
// closed.
func New(env string) *Guard {
	env = strings.TrimSpace(env)
	return &Guard{env: env, enabled: env == Development}
}

// Enabled reports whether gateway operations may run. A nil Guard is disabled.
func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

// Check returns ErrDisabled unless the gateway is enabled.
func (g *Guard) Check() error {
	if !g.Enabled() {
		return ErrDisabled
	}
	return nil
}

// Environment returns the environment the Guard was built with.
func (g *Guard) Environment() string {
	if g == nil {
		return ""
	}
	return g.env
}
