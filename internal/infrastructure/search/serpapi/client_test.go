package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureResponse = `{
	"shopping_results": [
		{"thumbnail": "https://img.example/1.jpg", "title": "Red Sneakers", "price": "$59.00", "source": "Shoe Store", "link": "https://shop.example/red-sneakers"},
		{"thumbnail": "https://img.example/2.jpg", "title": "Blue Sneakers", "price": "$49.00", "source": "Other Store", "product_link": "https://www.google.com/shopping/product/2"},
		{"thumbnail": "https://img.example/3.jpg", "title": "Linkless Sneakers", "price": "$39.00", "source": "Mystery Store"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	return NewClient(cfg, logger.NewNop()), server
}

func TestSearch_MissingAPIKey(t *testing.T) {
	client := NewClient(DefaultConfig(""), logger.NewNop())

	products, err := client.Search(context.Background(), "red sneakers")

	assert.Nil(t, products)
	assert.ErrorIs(t, err, output.ErrMissingCredentials)
}

func TestSearch_ParsesResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "google_shopping", r.URL.Query().Get("engine"))
		assert.Equal(t, "red sneakers", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		fmt.Fprint(w, fixtureResponse)
	})

	products, err := client.Search(context.Background(), "red sneakers")
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Red Sneakers", products[0].Title)
	assert.Equal(t, "https://shop.example/red-sneakers", products[0].Link)
	// product_link is the fallback when link is absent.
	assert.Equal(t, "https://www.google.com/shopping/product/2", products[1].Link)
	assert.Empty(t, products[2].Link)
}

func TestSearch_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": "Your account has run out of searches."}`)
	})

	products, err := client.Search(context.Background(), "red sneakers")

	assert.Nil(t, products)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run out of searches")
}

func TestSearch_NonOKStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	products, err := client.Search(context.Background(), "red sneakers")

	assert.Nil(t, products)
	assert.Error(t, err)
}

func TestSearch_EmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"shopping_results": []}`)
	})

	products, err := client.Search(context.Background(), "nothing sold anywhere")

	require.NoError(t, err)
	assert.Empty(t, products)
}
