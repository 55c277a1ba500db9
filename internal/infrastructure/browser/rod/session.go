package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"shopping-agent/internal/application/port/output"
	"shopping-agent/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*Session)(nil)

const (
	defaultSlowMotion        = 1 * time.Second
	defaultNavigationTimeout = 60 * time.Second
	defaultConsentTimeout    = 2 * time.Second
	selectorLookupTimeout    = 700 * time.Millisecond
	maxScreenshotWidth       = 1024
)

type SessionConfig struct {
	Headless          bool
	SlowMotion        time.Duration
	NavigationTimeout time.Duration
	ConsentTimeout    time.Duration
	ViewportWidth     int
	ViewportHeight    int
	NoSandbox         bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Headless:          false,
		SlowMotion:        defaultSlowMotion,
		NavigationTimeout: defaultNavigationTimeout,
		ConsentTimeout:    defaultConsentTimeout,
		ViewportWidth:     1280,
		ViewportHeight:    720,
		NoSandbox:         true,
	}
}

// Session owns the one user-visible browser the shopping flow drives. The
// browser is launched lazily on the first Navigate and reused by every later
// call; mu serializes all page access, so concurrent tool calls queue up
// instead of racing on the same page.
type Session struct {
	mu       sync.Mutex
	cfg      SessionConfig
	logger   output.LoggerPort
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	closed   bool
}

func NewSession(cfg SessionConfig, logger output.LoggerPort) *Session {
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = defaultNavigationTimeout
	}
	if cfg.ConsentTimeout <= 0 {
		cfg.ConsentTimeout = defaultConsentTimeout
	}
	return &Session{cfg: cfg, logger: logger}
}

// ensurePage launches the visible browser on first use. Caller must hold mu.
func (s *Session) ensurePage() (*rod.Page, error) {
	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}
	if s.page != nil {
		return s.page, nil
	}

	l := launcher.New().
		Headless(s.cfg.Headless).
		NoSandbox(s.cfg.NoSandbox).
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(s.cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if s.cfg.ViewportWidth > 0 && s.cfg.ViewportHeight > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             s.cfg.ViewportWidth,
			Height:            s.cfg.ViewportHeight,
			DeviceScaleFactor: 1,
		}); err != nil {
			s.logger.Warn("Failed to set viewport", "error", err)
		}
	}

	s.launcher = l
	s.browser = browser
	s.page = page
	s.logger.Info("Browser session started", "headless", s.cfg.Headless)
	return page, nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, err := s.ensurePage()
	if err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	page = page.Context(tctx)
	// DOMContentLoaded only: waiting for network idle on ad-heavy store pages
	// times out far more often than it helps.
	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	// The wait closure returns with no error when the context expires, so
	// deadline expiry has to be checked explicitly or a stalled page would
	// pass for a loaded one.
	wait()
	if err := tctx.Err(); err != nil {
		return fmt.Errorf("navigation timed out after %s: %w", s.cfg.NavigationTimeout, err)
	}
	return nil
}

func (s *Session) DismissConsent(ctx context.Context) entity.ConsentResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return entity.ConsentAbsent
	}

	page := s.page.Context(ctx).Timeout(s.cfg.ConsentTimeout)
	el, err := page.ElementR("button, [role='button'], a", "/^Accept$/")
	if err != nil {
		return entity.ConsentAbsent
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.logger.Warn("Cookie banner found but click failed", "error", err)
		return entity.ConsentFailed
	}
	return entity.ConsentAccepted
}

func (s *Session) ClickFirstVisible(ctx context.Context, selectors []entity.CartSelector) (*entity.CartClick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return nil, output.ErrNoSession
	}

	page := s.page.Context(ctx)
	for i, sel := range selectors {
		el := lookupElement(page, sel)
		if el == nil {
			continue
		}
		if visible, err := el.Visible(); err != nil || !visible {
			continue
		}
		// JS click bypasses rod's actionability checks, which overlays and
		// sticky headers on store pages trip constantly.
		if _, err := el.Eval(`() => this.click()`); err != nil {
			s.logger.Warn("Click failed, trying next selector", "selector", sel.Query, "error", err)
			continue
		}
		return &entity.CartClick{Selector: sel, Position: i}, nil
	}
	return nil, output.ErrNoMatch
}

func lookupElement(page *rod.Page, sel entity.CartSelector) *rod.Element {
	p := page.Timeout(selectorLookupTimeout)
	if sel.Match != "" {
		el, err := p.ElementR(sel.Query, sel.Match)
		if err != nil {
			return nil
		}
		return el
	}
	el, err := p.Element(sel.Query)
	if err != nil {
		return nil
	}
	return el
}

func (s *Session) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return nil, output.ErrNoSession
	}

	imgBytes, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return ""
	}
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page != nil && !s.closed
}

// Close is idempotent and safe to call before the first Navigate.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.page = nil

	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}
