package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/darionTest/simplenight/internal/locator"
)

// PlaywrightDriver implements Driver on top of a single playwright page.
type PlaywrightDriver struct {
	page    playwright.Page
	context playwright.BrowserContext
}

// NewPlaywrightDriver binds a driver to page. The driver does not own the page.
func NewPlaywrightDriver(page playwright.Page) *PlaywrightDriver {
	return &PlaywrightDriver{page: page}
}

// Page exposes the underlying playwright page for assertions.
func (d *PlaywrightDriver) Page() playwright.Page {
	return d.page
}

func (d *PlaywrightDriver) locate(loc locator.Locator) playwright.Locator {
	var l playwright.Locator
	switch loc.Kind() {
	case locator.KindRole:
		l = d.page.GetByRole(playwright.AriaRole(loc.Selector()), playwright.PageGetByRoleOptions{
			Name: loc.Name(),
		})
	case locator.KindXPath:
		l = d.page.Locator("xpath=" + loc.Selector())
	default:
		l = d.page.Locator(loc.Selector())
	}
	if i, ok := loc.Index(); ok {
		l = l.Nth(i)
	}
	return l
}

func (d *PlaywrightDriver) Navigate(url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *PlaywrightDriver) Click(loc locator.Locator) error {
	if err := d.locate(loc).Click(); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Fill(loc locator.Locator, text string) error {
	if err := d.locate(loc).Fill(text); err != nil {
		return fmt.Errorf("fill %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Press(key string) error {
	if err := d.page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

func (d *PlaywrightDriver) Wait(dur time.Duration) error {
	d.page.WaitForTimeout(float64(dur.Milliseconds()))
	return nil
}

func (d *PlaywrightDriver) Text(loc locator.Locator) (string, error) {
	text, err := d.locate(loc).TextContent()
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", loc, err)
	}
	return text, nil
}

func (d *PlaywrightDriver) Title() (string, error) {
	return d.page.Title()
}

func (d *PlaywrightDriver) Attribute(loc locator.Locator, name string) (string, error) {
	value, err := d.locate(loc).GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s of %s: %w", name, loc, err)
	}
	return value, nil
}

func (d *PlaywrightDriver) WaitForCondition(expression string, opts WaitOptions) error {
	waitOpts := playwright.PageWaitForFunctionOptions{}
	if opts.Timeout > 0 {
		waitOpts.Timeout = playwright.Float(float64(opts.Timeout.Milliseconds()))
	}
	if opts.Polling > 0 {
		waitOpts.Polling = float64(opts.Polling.Milliseconds())
	}
	if _, err := d.page.WaitForFunction(expression, nil, waitOpts); err != nil {
		return fmt.Errorf("wait for %q: %w", expression, err)
	}
	return nil
}

func (d *PlaywrightDriver) WaitVisible(loc locator.Locator, timeout time.Duration) error {
	opts := playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	if err := d.locate(loc).WaitFor(opts); err != nil {
		return fmt.Errorf("wait for %s to be visible: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Count(loc locator.Locator) (int, error) {
	n, err := d.locate(loc).Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", loc, err)
	}
	return n, nil
}

func (d *PlaywrightDriver) Check(loc locator.Locator) error {
	if err := d.locate(loc).Check(); err != nil {
		return fmt.Errorf("check %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Uncheck(loc locator.Locator) error {
	if err := d.locate(loc).Uncheck(); err != nil {
		return fmt.Errorf("uncheck %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Hover(loc locator.Locator) error {
	if err := d.locate(loc).Hover(); err != nil {
		return fmt.Errorf("hover %s: %w", loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) Select(loc locator.Locator, value string) error {
	_, err := d.locate(loc).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("select %q in %s: %w", value, loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) SelectByText(loc locator.Locator, text string) error {
	_, err := d.locate(loc).SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{text},
	})
	if err != nil {
		return fmt.Errorf("select label %q in %s: %w", text, loc, err)
	}
	return nil
}

func (d *PlaywrightDriver) URL() string {
	return d.page.URL()
}

func (d *PlaywrightDriver) Reload() error {
	_, err := d.page.Reload()
	return err
}

func (d *PlaywrightDriver) GoBack() error {
	_, err := d.page.GoBack()
	return err
}

func (d *PlaywrightDriver) GoForward() error {
	_, err := d.page.GoForward()
	return err
}

// Screenshot saves a full page screenshot to path.
func (d *PlaywrightDriver) Screenshot(path string) error {
	_, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

// Close releases the page and, when the driver was created by a Session, its browser context.
func (d *PlaywrightDriver) Close() error {
	if d.context != nil {
		return d.context.Close()
	}
	return d.page.Close()
}
