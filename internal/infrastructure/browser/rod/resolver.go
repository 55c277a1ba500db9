package rod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopping-agent/internal/application/port/output"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var _ output.ResolverPort = (*Resolver)(nil)

const (
	searchEngineDomain   = "google.com"
	defaultResolverAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	offerRowSelector     = ".sh-osd__offer-row"
	offerLookupTimeout   = 5 * time.Second
)

// IsSearchRedirect reports whether a URL points at the search engine rather
// than a store, meaning it likely needs redirect resolution first.
func IsSearchRedirect(rawURL string) bool {
	return strings.Contains(rawURL, searchEngineDomain)
}

type ResolverConfig struct {
	Timeout   time.Duration
	UserAgent string
}

func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Timeout:   30 * time.Second,
		UserAgent: defaultResolverAgent,
	}
}

// Resolver follows search-engine indirection links in a throwaway headless
// browser. The visible session never sees the redirect page, so it cannot get
// stuck on it.
type Resolver struct {
	cfg    ResolverConfig
	logger output.LoggerPort
}

func NewResolver(cfg ResolverConfig, logger output.LoggerPort) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultResolverAgent
	}
	return &Resolver{cfg: cfg, logger: logger}
}

func (r *Resolver) ShouldResolve(url string) bool {
	return IsSearchRedirect(url)
}

// Resolve returns the real destination behind dirtyURL. It is best-effort:
// any failure returns the input unchanged, never an error.
func (r *Resolver) Resolve(ctx context.Context, dirtyURL string) string {
	clean, err := r.resolve(ctx, dirtyURL)
	if err != nil || clean == "" {
		r.logger.Warn("Redirect resolution failed, keeping original URL", "url", dirtyURL, "error", err)
		return dirtyURL
	}
	r.logger.Info("Redirect resolved", "from", dirtyURL, "to", clean)
	return clean
}

func (r *Resolver) resolve(ctx context.Context, dirtyURL string) (string, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true)

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch headless browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return "", fmt.Errorf("failed to connect to headless browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.cfg.UserAgent}); err != nil {
		return "", fmt.Errorf("failed to set user agent: %w", err)
	}

	page = page.Context(ctx).Timeout(r.cfg.Timeout)
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(dirtyURL); err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}
	wait()

	current := pageURL(page)
	if !IsSearchRedirect(current) {
		// Server-side redirects already took us to the store.
		return current, nil
	}

	// Fast path: the redirect target sits in an anchor href on the page.
	if rawHTML, err := page.HTML(); err == nil {
		if target := ExtractRedirectTarget(rawHTML); target != "" {
			return target, nil
		}
	}

	// Slow path: clicking the offer row opens the store in a new tab.
	offer, err := page.Timeout(offerLookupTimeout).Element(offerRowSelector)
	if err != nil {
		return current, nil
	}
	waitOpen := page.WaitOpen()
	if _, err := offer.Eval(`() => this.click()`); err != nil {
		return current, nil
	}
	newPage, err := waitOpen()
	if err != nil {
		return current, nil
	}
	newPage = newPage.Context(ctx).Timeout(r.cfg.Timeout)
	_ = newPage.WaitLoad()
	if target := pageURL(newPage); target != "" {
		return target, nil
	}
	return current, nil
}

func pageURL(page *rod.Page) string {
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}
