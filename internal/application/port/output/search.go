package output

import (
	"context"
	"errors"

	"shopping-agent/internal/domain/entity"
)

// ErrMissingCredentials is returned when the search provider has no API key
// configured. Callers turn it into a user-visible message, not a crash.
var ErrMissingCredentials = errors.New("search API credentials missing")

type SearchPort interface {
	Search(ctx context.Context, query string) ([]entity.Product, error)
}

// RendererPort produces the HTML fragment embedded in chat responses.
type RendererPort interface {
	Cards(products []entity.Product) string
}
