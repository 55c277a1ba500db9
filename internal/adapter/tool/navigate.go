package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
)

var _ output.ToolPort = (*NavigateTool)(nil)

// NavigateTool resolves search-engine redirects in a background headless
// browser, then drives the shared visible session to the clean URL.
type NavigateTool struct {
	browser  output.BrowserPort
	resolver output.ResolverPort
	logger   output.LoggerPort
}

func NewNavigateTool(browser output.BrowserPort, resolver output.ResolverPort, logger output.LoggerPort) *NavigateTool {
	return &NavigateTool{browser: browser, resolver: resolver, logger: logger}
}

func (t *NavigateTool) Name() entity.ToolName { return entity.ToolNavigate }
func (t *NavigateTool) Description() string {
	return "Resolves redirects silently, then opens the visible browser at the clean URL."
}
func (t *NavigateTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "The URL (dirty or clean) to visit",
			},
		},
		"required": []string{"url"},
	}
}

func (t *NavigateTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", err
	}

	decoded, err := url.QueryUnescape(input.URL)
	if err != nil {
		// A link that never went through URL-encoding is usable as-is.
		decoded = input.URL
	}

	clean := decoded
	if t.resolver.ShouldResolve(decoded) {
		t.logger.Info("Search-engine link detected, resolving", "url", decoded)
		clean = t.resolver.Resolve(ctx, decoded)
	}

	t.logger.Info("Opening visible browser", "url", clean)
	if err := t.browser.Navigate(ctx, clean); err != nil {
		t.logger.Error("Navigation failed", "url", clean, "error", err)
		return fmt.Sprintf("Navigation Error: %v", err), nil
	}

	switch t.browser.DismissConsent(ctx) {
	case entity.ConsentAccepted:
		t.logger.Info("Cookie banner accepted")
	case entity.ConsentFailed:
		t.logger.Warn("Cookie banner present but could not be dismissed")
	case entity.ConsentAbsent:
		t.logger.Debug("No cookie banner found")
	}

	return fmt.Sprintf("Browser opened. Navigated to: %s", clean), nil
}
