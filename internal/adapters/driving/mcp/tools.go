package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_decisions tool.
type SearchInput struct {
	ID        int64  `json:"id,omitempty" jsonschema:"exact record id"`
	Daire     string `json:"daire,omitempty" jsonschema:"chamber name, substring match"`
	EsasNo    string `json:"esas_no,omitempty" jsonschema:"case filing number, e.g. 2011/2628"`
	KararNo   string `json:"karar_no,omitempty" jsonschema:"decision number, e.g. 2011/3698"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"keyword to match in the summary"`
	Year      int    `json:"year,omitempty" jsonschema:"decision year"`
	StartDate string `json:"start_date,omitempty" jsonschema:"earliest decision date, YYYY-MM-DD"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"latest decision date, YYYY-MM-DD"`
}

// SearchOutput is the output schema for the search_decisions tool.
type SearchOutput struct {
	Results []DecisionSummary `json:"results"`
	Count   int               `json:"count"`
}

// DecisionSummary is one row of search output.
type DecisionSummary struct {
	ID          int64  `json:"id"`
	Daire       string `json:"daire,omitempty"`
	EsasNo      string `json:"esas_no,omitempty"`
	KararNo     string `json:"karar_no,omitempty"`
	KararTarihi string `json:"karar_tarihi,omitempty"`
	Ozet        string `json:"ozet,omitempty"`
}

// ReadInput is the input schema for the read_decision tool.
type ReadInput struct {
	ID int64 `json:"id" jsonschema:"record id of the decision to read"`
}

// ReadOutput is the output schema for the read_decision tool.
type ReadOutput struct {
	ID          string `json:"id"`
	Daire       string `json:"daire,omitempty"`
	EsasNo      string `json:"esas_no,omitempty"`
	KararNo     string `json:"karar_no,omitempty"`
	KararTarihi string `json:"karar_tarihi,omitempty"`
	Content     string `json:"content"`
}

// HarvestInput is the input schema for the harvest_decisions tool.
type HarvestInput struct {
	Queries []string `json:"queries" jsonschema:"search queries; a bare four-digit query filters by year"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum records to fetch per query (default 100)"`
}

// HarvestOutput is the output schema for the harvest_decisions tool.
type HarvestOutput struct {
	Fetched       int `json:"fetched"`
	Ingested      int `json:"ingested"`
	Dropped       int `json:"dropped"`
	FailedBatches int `json:"failed_batches"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_decisions",
		Description: "Search stored court decision metadata. All filters are optional and combined with AND; at most 20 rows are returned.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_decision",
		Description: "Fetch the full text of a stored court decision by record id.",
	}, s.handleRead)

	if s.ports.Harvest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "harvest_decisions",
			Description: "Download new decisions from the upstream search API and store them.",
		}, s.handleHarvest)
	}
}

// handleSearch handles the search_decisions tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filters := domain.SearchFilters{
		ID:        input.ID,
		Daire:     input.Daire,
		EsasNo:    input.EsasNo,
		KararNo:   input.KararNo,
		Keyword:   input.Keyword,
		Year:      input.Year,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	entries, err := s.ports.Read.Search(ctx, filters)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]DecisionSummary, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Results[i] = DecisionSummary{
			ID:          entries[i].ID,
			Daire:       strOrEmpty(entries[i].Daire),
			EsasNo:      strOrEmpty(entries[i].EsasNo),
			KararNo:     strOrEmpty(entries[i].KararNo),
			KararTarihi: strOrEmpty(entries[i].KararTarihi),
			Ozet:        entries[i].Ozet,
		}
	}

	return nil, output, nil
}

// handleRead handles the read_decision tool invocation.
func (s *Server) handleRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadInput,
) (*mcp.CallToolResult, ReadOutput, error) {
	obj, err := s.ports.Read.ReadDecision(ctx, input.ID, nil)
	if err != nil {
		return nil, ReadOutput{}, err
	}

	return nil, ReadOutput{
		ID:          obj.ID,
		Daire:       strOrEmpty(obj.Daire),
		EsasNo:      strOrEmpty(obj.EsasNo),
		KararNo:     strOrEmpty(obj.KararNo),
		KararTarihi: strOrEmpty(obj.KararTarihi),
		Content:     obj.Content,
	}, nil
}

// handleHarvest handles the harvest_decisions tool invocation.
func (s *Server) handleHarvest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HarvestInput,
) (*mcp.CallToolResult, HarvestOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 100
	}

	stats, err := s.ports.Harvest.Harvest(ctx, input.Queries, limit)
	if err != nil {
		return nil, HarvestOutput{}, err
	}

	return nil, HarvestOutput{
		Fetched:       stats.Fetched,
		Ingested:      stats.Ingest.Processed,
		Dropped:       stats.Ingest.Dropped,
		FailedBatches: stats.Ingest.FailedBatches,
	}, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
