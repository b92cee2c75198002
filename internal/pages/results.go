package pages

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/locator"
)

var (
	// ErrInvalidRating is returned when the rating text holds no parsable number.
	ErrInvalidRating = errors.New("the rating value is not a valid number")
	// ErrInvalidPrice is returned when the price text holds no number.
	ErrInvalidPrice = errors.New("the price value is empty")
)

// ExtractTimeout bounds the wait for the rating and price of the selected listing.
const ExtractTimeout = 30 * time.Second

// mapZoomClicks is how many times the first marker is clicked to reach street level.
const mapZoomClicks = 3

var (
	nonNumeric  = regexp.MustCompile(`[^0-9.-]+`)
	priceFormat = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// CleanNumber drops everything except digits, dots and minus signs, so
// "$1,234.50" becomes "1234.50".
func CleanNumber(text string) string {
	return strings.TrimSpace(nonNumeric.ReplaceAllString(text, ""))
}

// ResultsPage drives filters, the map and the listing details of a search.
type ResultsPage struct {
	driver browser.Driver
	opts   options
}

// NewResultsPage binds a results page to driver.
func NewResultsPage(driver browser.Driver, opts ...Option) *ResultsPage {
	return &ResultsPage{driver: driver, opts: newOptions(opts)}
}

// SelectCheckboxByValue ticks the filter checkbox whose value attribute is value.
func (p *ResultsPage) SelectCheckboxByValue(value string) error {
	loc, err := checkboxFormat.Resolve(value)
	if err != nil {
		return fmt.Errorf("checkbox %q: %w", value, err)
	}
	return p.driver.Check(loc)
}

// UnselectCheckboxByValue clears the filter checkbox whose value attribute is value.
func (p *ResultsPage) UnselectCheckboxByValue(value string) error {
	loc, err := checkboxFormat.Resolve(value)
	if err != nil {
		return fmt.Errorf("checkbox %q: %w", value, err)
	}
	return p.driver.Uncheck(loc)
}

// SelectOptionByValue opens the grid options dropdown and picks the option with value.
func (p *ResultsPage) SelectOptionByValue(value string) error {
	option, err := comboboxOptionFmt.Resolve(value)
	if err != nil {
		return fmt.Errorf("option %q: %w", value, err)
	}
	if err := p.driver.Click(gridOptionsButton); err != nil {
		return err
	}
	return p.driver.Click(option)
}

// FirstPriceFilter returns the lower bound of the price range filter.
// The bool is false when the input has no value.
func (p *ResultsPage) FirstPriceFilter() (string, bool, error) {
	return p.inputValue(priceFromInput.First())
}

// LastPriceFilter returns the upper bound of the price range filter.
func (p *ResultsPage) LastPriceFilter() (string, bool, error) {
	return p.inputValue(priceToInput.First())
}

func (p *ResultsPage) inputValue(loc locator.Locator) (string, bool, error) {
	value, err := p.driver.Attribute(loc, "value")
	if err != nil {
		return "", false, err
	}
	return value, value != "", nil
}

// ClickOnTheMapAndZoomIn clicks the first marker until the map is zoomed in, then
// opens the second marker once it shows up.
func (p *ResultsPage) ClickOnTheMapAndZoomIn() error {
	first := mapMarker.First()
	for i := 0; i < mapZoomClicks; i++ {
		if err := p.driver.Click(first); err != nil {
			return err
		}
	}

	second := mapMarker.Nth(1)
	if err := p.driver.WaitVisible(second, 0); err != nil {
		return err
	}
	return p.driver.Click(second)
}

// Rating returns the rating of the selected listing.
func (p *ResultsPage) Rating() (float64, error) {
	text, err := p.extract(ratingValue)
	if err != nil {
		return 0, err
	}
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, text)
	}

	p.opts.logger.Info().Float64("rating", rating).Msg("Rating")
	return rating, nil
}

// Price returns the price of the selected listing as a cleaned numeric string.
// Numeric comparison is left to the caller.
func (p *ResultsPage) Price() (string, error) {
	text, err := p.extract(priceValue)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrInvalidPrice
	}
	if !priceFormat.MatchString(text) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}
	return text, nil
}

func (p *ResultsPage) extract(loc locator.Locator) (string, error) {
	if err := p.driver.WaitVisible(loc, ExtractTimeout); err != nil {
		return "", err
	}
	text, err := p.driver.Text(loc)
	if err != nil {
		return "", err
	}
	return CleanNumber(text), nil
}
