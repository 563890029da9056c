package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

const uriScheme = "emsal://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the most recent decisions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "decisions",
		Name:        "decisions",
		Description: "Most recently stored decision metadata",
		MIMEType:    "application/json",
	}, s.handleDecisionsResource)

	// Template for full decision text.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "decisions/{id}",
		Name:        "decision-text",
		Description: "Full text of a specific decision",
		MIMEType:    "text/plain",
	}, s.handleDecisionTextResource)
}

// handleDecisionsResource returns the latest index rows.
func (s *Server) handleDecisionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.Read.Search(ctx, domain.SearchFilters{})
	if err != nil {
		return nil, fmt.Errorf("listing decisions: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling decisions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDecisionTextResource returns the full text of one decision.
func (s *Server) handleDecisionTextResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractDecisionID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	obj, err := s.ports.Read.ReadDecision(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("reading decision %d: %w", id, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     obj.Content,
		}},
	}, nil
}

// extractDecisionID parses a URI like emsal://decisions/{id}.
func extractDecisionID(uri string) (int64, bool) {
	const prefix = uriScheme + "decisions/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
