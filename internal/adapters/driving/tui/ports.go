// Package tui provides an interactive terminal user interface for emsal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Read resolves index searches and full-text reads.
	Read driving.ReadService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Read == nil {
		return ErrMissingReadService
	}
	return nil
}
