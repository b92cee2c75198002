// Package browser is the element interaction facade: a small verb set over
// string-free locators that page objects use instead of calling the driver directly.
package browser

import (
	"time"

	"github.com/darionTest/simplenight/internal/locator"
)

// DefaultTimeout bounds driver operations when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// WaitOptions configures WaitForCondition.
type WaitOptions struct {
	// Timeout of zero uses the driver default.
	Timeout time.Duration
	// Polling interval; zero polls on every animation frame.
	Polling time.Duration
}

// Driver is the capability set page objects depend on. Every call blocks until the
// browser action settles or the driver timeout elapses. No call retries.
type Driver interface {
	Navigate(url string) error
	Click(loc locator.Locator) error
	Fill(loc locator.Locator, text string) error
	Press(key string) error
	// Wait suspends for a fixed duration. Prefer WaitVisible or WaitForCondition.
	Wait(d time.Duration) error
	// Text returns the element text content; an absent value is the empty string.
	Text(loc locator.Locator) (string, error)
	Title() (string, error)
	// Attribute returns the attribute value; an absent attribute is the empty string.
	Attribute(loc locator.Locator, name string) (string, error)
	// WaitForCondition polls a browser-side JavaScript predicate until it is truthy.
	WaitForCondition(expression string, opts WaitOptions) error
	WaitVisible(loc locator.Locator, timeout time.Duration) error
	Count(loc locator.Locator) (int, error)
	Check(loc locator.Locator) error
	Uncheck(loc locator.Locator) error
	Hover(loc locator.Locator) error
	Select(loc locator.Locator, value string) error
	SelectByText(loc locator.Locator, text string) error
	URL() string
	Reload() error
	GoBack() error
	GoForward() error
}
