package rod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRedirectTarget(t *testing.T) {
	tests := []struct {
		name    string
		rawHTML string
		want    string
	}{
		{
			name:    "relative redirect anchor",
			rawHTML: `<html><body><a href="/url?q=https://shop.example/item/42&sa=U">offer</a></body></html>`,
			want:    "https://shop.example/item/42",
		},
		{
			name:    "absolute redirect anchor",
			rawHTML: `<html><body><a href="https://www.google.com/url?q=https%3A%2F%2Fstore.example%2Fp%2F1&ved=2ah">offer</a></body></html>`,
			want:    "https://store.example/p/1",
		},
		{
			name: "first matching anchor wins",
			rawHTML: `<html><body>
				<a href="https://example.com/other">nope</a>
				<a href="/url?q=https://first.example/a">first</a>
				<a href="/url?q=https://second.example/b">second</a>
			</body></html>`,
			want: "https://first.example/a",
		},
		{
			name:    "no redirect anchor",
			rawHTML: `<html><body><a href="https://shop.example/item/42">direct</a></body></html>`,
			want:    "",
		},
		{
			name:    "anchor without q parameter",
			rawHTML: `<html><body><a href="/url?sa=U&ved=2ah">broken</a></body></html>`,
			want:    "",
		},
		{
			name:    "empty input",
			rawHTML: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRedirectTarget(tt.rawHTML))
		})
	}
}

func TestIsSearchRedirect(t *testing.T) {
	assert.True(t, IsSearchRedirect("https://www.google.com/shopping/product/123"))
	assert.True(t, IsSearchRedirect("https://google.com/url?q=https://shop.example"))
	assert.False(t, IsSearchRedirect("https://shop.example/item/42"))
	assert.False(t, IsSearchRedirect(""))
}
