package mcp

import (
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Read resolves index searches and full-text reads.
	Read driving.ReadService

	// Harvest downloads new decisions from the upstream API. Optional;
	// without it the harvest tool is not registered.
	Harvest driving.HarvestService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Read == nil {
		return ErrMissingReadService
	}
	return nil
}
