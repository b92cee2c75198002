package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// LaunchOptions configures the browser started by Launch.
type LaunchOptions struct {
	Headless bool
	// Timeout is the default timeout for every driver operation.
	Timeout time.Duration
	Width   int
	Height  int
}

// DefaultLaunchOptions mirrors a headless desktop Chrome at 1920x1080.
func DefaultLaunchOptions() LaunchOptions {
	return LaunchOptions{
		Headless: true,
		Timeout:  DefaultTimeout,
		Width:    1920,
		Height:   1080,
	}
}

// Session owns a playwright instance and one Chromium browser.
// Pages opened from it get their own browser context so they never share state.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    LaunchOptions
}

// Launch starts playwright and a Chromium browser.
func Launch(opts LaunchOptions) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	return &Session{pw: pw, browser: browser, opts: opts}, nil
}

// NewPage opens a page in a fresh browser context. Close the returned driver when done.
func (s *Session) NewPage() (*PlaywrightDriver, error) {
	contextOptions := playwright.BrowserNewContextOptions{}
	if s.opts.Width > 0 && s.opts.Height > 0 {
		contextOptions.Viewport = &playwright.Size{
			Width:  s.opts.Width,
			Height: s.opts.Height,
		}
	}

	bctx, err := s.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if s.opts.Timeout > 0 {
		bctx.SetDefaultTimeout(float64(s.opts.Timeout.Milliseconds()))
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &PlaywrightDriver{page: page, context: bctx}, nil
}

// Close shuts the browser down and stops playwright.
func (s *Session) Close() error {
	return errors.Join(s.browser.Close(), s.pw.Stop())
}
