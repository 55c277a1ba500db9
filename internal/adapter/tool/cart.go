package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
)

var _ output.ToolPort = (*AddToCartTool)(nil)

const defaultSettleDelay = 5 * time.Second

// AddToCartTool hunts for an add-to-cart control on the currently open page
// using the priority-ordered selector table. A miss on every selector is a
// normal, reported outcome.
type AddToCartTool struct {
	browser     output.BrowserPort
	logger      output.LoggerPort
	selectors   []entity.CartSelector
	settleDelay time.Duration
}

func NewAddToCartTool(browser output.BrowserPort, logger output.LoggerPort) *AddToCartTool {
	return &AddToCartTool{
		browser:     browser,
		logger:      logger,
		selectors:   entity.DefaultCartSelectors,
		settleDelay: defaultSettleDelay,
	}
}

func (t *AddToCartTool) Name() entity.ToolName { return entity.ToolAddToCart }
func (t *AddToCartTool) Description() string {
	return "Clicks 'Add to Cart' on the open page."
}
func (t *AddToCartTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *AddToCartTool) Execute(ctx context.Context, args string) (string, error) {
	if !t.browser.Started() {
		return "Error: No browser open.", nil
	}

	t.logger.Info("Hunting for add-to-cart control")

	click, err := t.browser.ClickFirstVisible(ctx, t.selectors)
	if err != nil {
		if errors.Is(err, output.ErrNoMatch) {
			return "FAILED: Could not find 'Add to Cart' button.", nil
		}
		if errors.Is(err, output.ErrNoSession) {
			return "Error: No browser open.", nil
		}
		t.logger.Error("Add-to-cart click failed", "error", err)
		return fmt.Sprintf("Click Error: %v", err), nil
	}

	t.logger.Info("Add-to-cart clicked",
		"selector", click.Selector.Query,
		"description", click.Selector.Description,
		"position", click.Position,
	)

	// Let the site register the click before reporting back.
	select {
	case <-ctx.Done():
	case <-time.After(t.settleDelay):
	}

	return "Success: Item added to cart.", nil
}
