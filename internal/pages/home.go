// Package pages holds the page objects of the hotel search site. Each page is a thin
// workflow layer over a browser.Driver and shares nothing with other pages.
package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/locator"
)

var (
	// ErrNoExactMatch is returned in strict mode when no destination option has the wanted text.
	ErrNoExactMatch = errors.New("no element found with the exact text")
	// ErrNegativeCount is returned when asked to click a counter a negative number of times.
	ErrNegativeCount = errors.New("click count must not be negative")
)

// Option configures a page.
type Option func(*options)

type options struct {
	logger             zerolog.Logger
	strictDestinations bool
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStrictDestinations makes SelectDestiny fail when the label has no exact match.
func WithStrictDestinations() Option {
	return func(o *options) { o.strictDestinations = true }
}

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// HomePage drives the search form.
type HomePage struct {
	driver browser.Driver
	opts   options
}

// NewHomePage binds a home page to driver.
func NewHomePage(driver browser.Driver, opts ...Option) *HomePage {
	return &HomePage{driver: driver, opts: newOptions(opts)}
}

// Navigate loads the home page.
func (p *HomePage) Navigate(url string) error {
	return p.driver.Navigate(url)
}

// ClickElementWithExactText clicks the first destination option whose trimmed text equals
// expected. It reports false without error when nothing matches.
func (p *HomePage) ClickElementWithExactText(expected string) (bool, error) {
	if err := p.driver.WaitVisible(destinyOptionTitle.First(), 0); err != nil {
		return false, err
	}
	count, err := p.driver.Count(destinyOptionTitle)
	if err != nil {
		return false, err
	}

	for i := 0; i < count; i++ {
		option := destinyOptionTitle.Nth(i)
		text, err := p.driver.Text(option)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(text) == expected {
			return true, p.driver.Click(option)
		}
	}

	p.opts.logger.Warn().Str("text", expected).Int("candidates", count).Msg("No element found with the exact text")
	return false, nil
}

// SelectCategory clicks the category tab with the given name, e.g. "hotels".
func (p *HomePage) SelectCategory(category string) error {
	loc, err := categoryButtonFormat.Resolve(category)
	if err != nil {
		return fmt.Errorf("category %q: %w", category, err)
	}
	return p.driver.Click(loc)
}

// SelectDestiny types city into the location input and picks the option labelled label.
func (p *HomePage) SelectDestiny(city, label string) error {
	if err := p.driver.Click(destinyInput); err != nil {
		return err
	}
	if err := p.driver.Fill(destinyInput, city); err != nil {
		return err
	}
	matched, err := p.ClickElementWithExactText(label)
	if err != nil {
		return err
	}
	if !matched && p.opts.strictDestinations {
		return fmt.Errorf("%w: %q", ErrNoExactMatch, label)
	}
	return nil
}

// SelectDate opens the calendar, switches to month and picks the range from..to.
// The start day is clicked again after the end day; the calendar only commits the
// range on that third click.
func (p *HomePage) SelectDate(month, fromDate, toDate string) error {
	steps := []func() error{
		func() error { return p.driver.Click(datesButton) },
		func() error { return p.driver.Click(currentMonthButton) },
		func() error { return p.SelectMonth(month) },
		func() error { return p.SelectDayByFullDate(fromDate) },
		func() error { return p.SelectDayByFullDate(toDate) },
		func() error { return p.SelectDayByFullDate(fromDate) },
		p.ClickApplyButton,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// SelectMonth clicks the month with the given visible name in the month list.
func (p *HomePage) SelectMonth(month string) error {
	loc, err := monthButtonFormat.Resolve(month)
	if err != nil {
		return fmt.Errorf("month %q: %w", month, err)
	}
	return p.driver.Click(loc)
}

// SelectDayByFullDate clicks a calendar day given as YYYY-MM-DD.
func (p *HomePage) SelectDayByFullDate(date string) error {
	loc, err := calendarDayFormat.Resolve(date)
	if err != nil {
		return fmt.Errorf("date %q: %w", date, err)
	}
	return p.driver.Click(loc)
}

// ClickApplyButton commits the selected date range.
func (p *HomePage) ClickApplyButton() error {
	return p.driver.Click(applyDatesButton)
}

// ClickOnGuests toggles the guests panel.
func (p *HomePage) ClickOnGuests() error {
	return p.driver.Click(guestsButton)
}

// SelectChildGuests opens the guests panel and adds children.
func (p *HomePage) SelectChildGuests(children int) error {
	if children < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, children)
	}
	if err := p.ClickOnGuests(); err != nil {
		return err
	}
	return p.AddChildButtonMultipleTimes(children)
}

// SelectGuests opens the guests panel once and adds adults on top of the default
// occupancy, then children.
func (p *HomePage) SelectGuests(adults, children int) error {
	if adults < 0 || children < 0 {
		return fmt.Errorf("%w: adults=%d children=%d", ErrNegativeCount, adults, children)
	}
	if err := p.ClickOnGuests(); err != nil {
		return err
	}
	if err := p.AddAdultButtonMultipleTimes(adults); err != nil {
		return err
	}
	return p.AddChildButtonMultipleTimes(children)
}

// AddChildButtonMultipleTimes clicks the add-child control times times.
func (p *HomePage) AddChildButtonMultipleTimes(times int) error {
	return p.clickRepeatedly(addChildButton, times)
}

// AddAdultButtonMultipleTimes clicks the add-adult control times times.
func (p *HomePage) AddAdultButtonMultipleTimes(times int) error {
	return p.clickRepeatedly(addAdultButton, times)
}

func (p *HomePage) clickRepeatedly(loc locator.Locator, times int) error {
	if times < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, times)
	}
	for i := 0; i < times; i++ {
		if err := p.driver.Click(loc); err != nil {
			return err
		}
	}
	return nil
}

// ClickOnSearchButton submits the search form.
func (p *HomePage) ClickOnSearchButton() error {
	return p.driver.Click(searchButton)
}
