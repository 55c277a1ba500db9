package tool

import (
	"context"
	"errors"
	"testing"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"
	"shopping-agent/internal/infrastructure/logger"
	"shopping-agent/internal/infrastructure/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualSearch_RendersCards(t *testing.T) {
	search := &fakeSearch{products: []entity.Product{
		{Title: "Red Sneakers", Price: "$59", Source: "Shoe Store", Link: "https://shop.example/1"},
	}}
	tool := NewVisualSearchTool(search, render.NewCardRenderer(), logger.NewNop())

	result, err := tool.Execute(context.Background(), `{"query":"red sneakers"}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"red sneakers"}, search.queries)
	assert.Contains(t, result, "grid-container")
	assert.Contains(t, result, "Red Sneakers")
}

func TestVisualSearch_MissingCredentials(t *testing.T) {
	search := &fakeSearch{err: output.ErrMissingCredentials}
	tool := NewVisualSearchTool(search, render.NewCardRenderer(), logger.NewNop())

	result, err := tool.Execute(context.Background(), `{"query":"anything"}`)

	require.NoError(t, err)
	assert.Equal(t, "<div>Error: SERPAPI_KEY missing.</div>", result)
}

func TestVisualSearch_UpstreamError(t *testing.T) {
	search := &fakeSearch{err: errors.New("quota exhausted")}
	tool := NewVisualSearchTool(search, render.NewCardRenderer(), logger.NewNop())

	result, err := tool.Execute(context.Background(), `{"query":"anything"}`)

	require.NoError(t, err)
	assert.Equal(t, "Search Error: quota exhausted", result)
}

func TestVisualSearch_NoResults(t *testing.T) {
	tool := NewVisualSearchTool(&fakeSearch{}, render.NewCardRenderer(), logger.NewNop())

	result, err := tool.Execute(context.Background(), `{"query":"nothing"}`)

	require.NoError(t, err)
	assert.Equal(t, "No products found.", result)
}

func TestVisualSearch_MalformedArguments(t *testing.T) {
	tool := NewVisualSearchTool(&fakeSearch{}, render.NewCardRenderer(), logger.NewNop())

	_, err := tool.Execute(context.Background(), `{`)

	assert.Error(t, err)
}
