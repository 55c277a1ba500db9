package tool

import (
	"context"
	"strings"

	"shopping-agent/internal/domain/entity"
)

type fakeBrowser struct {
	started       bool
	navigateCalls []string
	navigateErr   error
	consent       entity.ConsentResult
	click         *entity.CartClick
	clickErr      error
	clickCalls    int
	currentURL    string
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.navigateCalls = append(f.navigateCalls, url)
	if f.navigateErr == nil {
		f.started = true
		f.currentURL = url
	}
	return f.navigateErr
}

func (f *fakeBrowser) DismissConsent(ctx context.Context) entity.ConsentResult {
	if f.consent == "" {
		return entity.ConsentAbsent
	}
	return f.consent
}

func (f *fakeBrowser) ClickFirstVisible(ctx context.Context, selectors []entity.CartSelector) (*entity.CartClick, error) {
	f.clickCalls++
	return f.click, f.clickErr
}

func (f *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return nil, nil
}

func (f *fakeBrowser) CurrentURL() string { return f.currentURL }
func (f *fakeBrowser) Started() bool      { return f.started }
func (f *fakeBrowser) Close()             {}

type fakeResolver struct {
	resolved     string
	resolveCalls []string
}

func (f *fakeResolver) ShouldResolve(url string) bool {
	return strings.Contains(url, "google.com")
}

func (f *fakeResolver) Resolve(ctx context.Context, dirtyURL string) string {
	f.resolveCalls = append(f.resolveCalls, dirtyURL)
	if f.resolved == "" {
		return dirtyURL
	}
	return f.resolved
}

type fakeSearch struct {
	products []entity.Product
	err      error
	queries  []string
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]entity.Product, error) {
	f.queries = append(f.queries, query)
	return f.products, f.err
}
