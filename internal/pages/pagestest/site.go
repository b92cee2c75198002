// Package pagestest scripts a browsertest.Fake with the hotel search site's elements.
package pagestest

import (
	"github.com/darionTest/simplenight/internal/browser/browsertest"
	"github.com/darionTest/simplenight/internal/locator"
)

// Elements read or counted by tests.
var (
	Rating   = locator.MustCSS(`.grid [class*="grid-area:rating-value"]`)
	Price    = locator.MustCSS(`[class*="flex items-end gap"] > span.font-bold`)
	AddChild = locator.MustCSS(`button[data-testid*="_age(children)_add-button"]`)
	AddAdult = locator.MustCSS(`button[data-testid*="_age(adults)_add-button"]`)
	Pool     = locator.MustCSS(`input[type="checkbox"][value="pool"]`)
)

// SearchSite returns a page holding every element the literal Miami search touches,
// with a listing rated 4.2 at $189.
func SearchSite() *browsertest.Fake {
	f := browsertest.New()
	for _, sel := range []string{
		`button[data-testid*="category(static:hotels)"]`,
		`input[data-testid*="search-form_location_input"]`,
		`button[data-testid*="search-form_dates_trigger"]`,
		`button[class*="calendarHeaderLevel"]`,
		`button[class*="monthsListControl"]:has-text("December")`,
		`span[data-testid*="form_dates_calendar_day(2025-12-10)"]`,
		`span[data-testid*="form_dates_calendar_day(2025-12-15)"]`,
		`button[data-testid*="search-form_dates_apply-button"]`,
		`button[data-testid*="_search-form_guests_trigger"]`,
		`button[data-testid*="_search-form_search-button"]`,
	} {
		f.Set(locator.MustCSS(sel), browsertest.Element{})
	}
	f.Set(AddChild, browsertest.Element{})
	f.Set(AddAdult, browsertest.Element{})
	f.Set(Pool, browsertest.Element{})

	option, _ := locator.XPath(`//div[@data-combobox-option="true"][@value="price-asc"]`)
	f.Set(option, browsertest.Element{})
	f.Set(locator.MustRole("button", "Grid"), browsertest.Element{})
	f.Set(locator.MustCSS(`div[class*="grid-area:title"]`),
		browsertest.Element{Text: "Miami Beach"},
		browsertest.Element{Text: "Miami"},
	)
	f.Set(locator.MustCSS(`gmp-advanced-marker[role="button"]`), browsertest.Element{}, browsertest.Element{})
	f.Set(Rating, browsertest.Element{Text: "4.2"})
	f.Set(Price, browsertest.Element{Text: "$189"})
	return f
}
