package output

import (
	"context"
	"errors"

	"shopping-agent/internal/domain/entity"
)

var (
	// ErrNoSession is returned by page operations before the first Navigate.
	ErrNoSession = errors.New("no browser session open")
	// ErrNoMatch is returned when no selector in the list matched a visible element.
	ErrNoMatch = errors.New("no visible element matched")
)

type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	DismissConsent(ctx context.Context) entity.ConsentResult
	ClickFirstVisible(ctx context.Context, selectors []entity.CartSelector) (*entity.CartClick, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	CurrentURL() string
	Started() bool
	Close()
}
