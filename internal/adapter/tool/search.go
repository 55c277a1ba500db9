package tool

import (
	"context"
	"encoding/json"
	"errors"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
)

var _ output.ToolPort = (*VisualSearchTool)(nil)

// VisualSearchTool searches the shopping API and hands the agent a rendered
// HTML card grid. All failures come back as plain result strings so the agent
// can narrate them to the user.
type VisualSearchTool struct {
	search   output.SearchPort
	renderer output.RendererPort
	logger   output.LoggerPort
}

func NewVisualSearchTool(search output.SearchPort, renderer output.RendererPort, logger output.LoggerPort) *VisualSearchTool {
	return &VisualSearchTool{search: search, renderer: renderer, logger: logger}
}

func (t *VisualSearchTool) Name() entity.ToolName { return entity.ToolVisualSearch }
func (t *VisualSearchTool) Description() string {
	return "Searches Google Shopping and returns HTML product cards."
}
func (t *VisualSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Product search query",
			},
		},
		"required": []string{"query"},
	}
}

func (t *VisualSearchTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}

	t.logger.Info("Visual search", "query", input.Query)

	products, err := t.search.Search(ctx, input.Query)
	if err != nil {
		if errors.Is(err, output.ErrMissingCredentials) {
			return "<div>Error: SERPAPI_KEY missing.</div>", nil
		}
		t.logger.Error("Search failed", "query", input.Query, "error", err)
		return "Search Error: " + err.Error(), nil
	}

	return t.renderer.Cards(products), nil
}
