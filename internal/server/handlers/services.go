// Defines shared service dependencies for handlers.

package handlers

import (
	"github.com/maruel/mdgate/internal/compile"
	"github.com/maruel/mdgate/internal/content"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Store   *content.Store
	Index   *content.Indexer
	Compile *compile.Service
}
