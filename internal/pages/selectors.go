package pages

import "github.com/darionTest/simplenight/internal/locator"

// Selectors of the search form on the home page.
var (
	destinyInput         = locator.MustCSS(`input[data-testid*="search-form_location_input"]`)
	destinyOptionTitle   = locator.MustCSS(`div[class*="grid-area:title"]`)
	datesButton          = locator.MustCSS(`button[data-testid*="search-form_dates_trigger"]`)
	currentMonthButton   = locator.MustCSS(`button[class*="calendarHeaderLevel"]`)
	applyDatesButton     = locator.MustCSS(`button[data-testid*="search-form_dates_apply-button"]`)
	guestsButton         = locator.MustCSS(`button[data-testid*="_search-form_guests_trigger"]`)
	addChildButton       = locator.MustCSS(`button[data-testid*="_age(children)_add-button"]`)
	addAdultButton       = locator.MustCSS(`button[data-testid*="_age(adults)_add-button"]`)
	searchButton         = locator.MustCSS(`button[data-testid*="_search-form_search-button"]`)
	categoryButtonFormat = locator.CSSTemplate(`button[data-testid*="category(static:%s)"]`)
	monthButtonFormat    = locator.CSSTemplate(`button[class*="monthsListControl"]:has-text("%s")`)
	calendarDayFormat    = locator.CSSTemplate(`span[data-testid*="form_dates_calendar_day(%s)"]`)
)

// Selectors of the results page.
var (
	checkboxFormat    = locator.CSSTemplate(`input[type="checkbox"][value="%s"]`)
	comboboxOptionFmt = locator.XPathTemplate(`//div[@data-combobox-option="true"][@value="%s"]`)
	gridOptionsButton = locator.MustRole("button", "Grid")
	priceFromInput    = locator.MustCSS(`input[name="undefined_from"]`)
	priceToInput      = locator.MustCSS(`input[name="undefined_to"]`)
	mapMarker         = locator.MustCSS(`gmp-advanced-marker[role="button"]`)
	ratingValue       = locator.MustCSS(`.grid [class*="grid-area:rating-value"]`)
	priceValue        = locator.MustCSS(`[class*="flex items-end gap"] > span.font-bold`)
)
