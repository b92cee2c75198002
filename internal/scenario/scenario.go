// Package scenario runs the hotel search journey and decides whether it passed.
package scenario

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/pages"
)

// Result holds the values extracted at the end of the journey.
type Result struct {
	Rating    float64
	PriceText string
	Price     float64
}

// Scenario composes the page objects of one browser page.
type Scenario struct {
	Home    *pages.HomePage
	Results *pages.ResultsPage
	Logger  zerolog.Logger
}

// New builds the page objects on top of driver.
func New(driver browser.Driver, logger zerolog.Logger, opts ...pages.Option) *Scenario {
	opts = append([]pages.Option{pages.WithLogger(logger)}, opts...)
	return &Scenario{
		Home:    pages.NewHomePage(driver, opts...),
		Results: pages.NewResultsPage(driver, opts...),
		Logger:  logger,
	}
}

type step struct {
	name string
	run  func() error
}

// Run performs the search described by p on the site at baseURL and extracts the
// rating and price of the listing opened from the map. It stops at the first failing step.
func (s *Scenario) Run(baseURL string, p Params) (Result, error) {
	guests := func() error { return s.Home.SelectChildGuests(p.Guests.Children) }
	if p.Guests.Adults > 0 {
		guests = func() error { return s.Home.SelectGuests(p.Guests.Adults, p.Guests.Children) }
	}

	steps := []step{
		{"navigate", func() error { return s.Home.Navigate(baseURL) }},
		{"select category", func() error { return s.Home.SelectCategory(p.Category) }},
		{"select destiny", func() error { return s.Home.SelectDestiny(p.Destiny.City, p.Destiny.Label) }},
		{"select dates", func() error { return s.Home.SelectDate(p.Dates.Month, p.Dates.Start, p.Dates.End) }},
		{"select guests", guests},
		{"search", s.Home.ClickOnSearchButton},
		{"filter by checkbox", func() error { return s.Results.SelectCheckboxByValue(p.Filters.Checkbox) }},
		{"filter by option", func() error { return s.Results.SelectOptionByValue(p.Filters.Option) }},
		{"zoom map", s.Results.ClickOnTheMapAndZoomIn},
	}
	for _, st := range steps {
		s.Logger.Debug().Str("step", st.name).Msg("Running step")
		if err := st.run(); err != nil {
			return Result{}, fmt.Errorf("%s: %w", st.name, err)
		}
	}

	rating, err := s.Results.Rating()
	if err != nil {
		return Result{}, fmt.Errorf("read rating: %w", err)
	}
	priceText, err := s.Results.Price()
	if err != nil {
		return Result{}, fmt.Errorf("read price: %w", err)
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return Result{}, fmt.Errorf("read price: %w: %q", pages.ErrInvalidPrice, priceText)
	}

	return Result{Rating: rating, PriceText: priceText, Price: price}, nil
}

// BoundError reports a result outside of a configured filter bound.
type BoundError struct {
	Bound  string
	Limit  float64
	Actual float64
}

func (e *BoundError) Error() string {
	switch e.Bound {
	case "priceMin":
		return fmt.Sprintf("price %v is below priceMin %v", e.Actual, e.Limit)
	case "priceMax":
		return fmt.Sprintf("price %v is above priceMax %v", e.Actual, e.Limit)
	default:
		return fmt.Sprintf("rating %v is below %s %v", e.Actual, e.Bound, e.Limit)
	}
}

// Verify checks the price against [PriceMin, PriceMax] and the rating against RatingMin.
// Every violated bound is reported.
func (s *Scenario) Verify(r Result, f Filters) error {
	var errs []error
	if r.Price < f.PriceMin {
		errs = append(errs, &BoundError{Bound: "priceMin", Limit: f.PriceMin, Actual: r.Price})
	}
	if r.Price > f.PriceMax {
		errs = append(errs, &BoundError{Bound: "priceMax", Limit: f.PriceMax, Actual: r.Price})
	}
	if len(errs) == 0 {
		s.Logger.Info().Msgf("Price is within the range: %v >= %v and %v <= %v", r.Price, f.PriceMin, r.Price, f.PriceMax)
	}

	if r.Rating < f.RatingMin {
		errs = append(errs, &BoundError{Bound: "ratingMin", Limit: f.RatingMin, Actual: r.Rating})
	} else {
		s.Logger.Info().Msgf("Rating is valid: %v >= %v", r.Rating, f.RatingMin)
	}

	return errors.Join(errs...)
}
