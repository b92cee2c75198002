// Package fixture serves a small imitation of the hotel search site. It reproduces the
// markup the page objects rely on so the e2e suite can run without the real environments.
package fixture

import (
	"embed"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Destination is a suggestion shown under the location input.
type Destination struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Listing is a hotel the results map can open.
type Listing struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Rating    float64  `json:"rating"`
	Amenities []string `json:"amenities"`
}

// Options configures the imitation site. Zero values fall back to the defaults.
type Options struct {
	// Year is the calendar year the date picker shows.
	Year         int
	Destinations []Destination
	Listings     []Listing
	// ZoomLevel is how many clicks on the cluster marker reveal the listing marker.
	ZoomLevel int
	// Logger receives one debug line per request. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultDestinations lists suggestions for a Miami search.
func DefaultDestinations() []Destination {
	return []Destination{
		{Name: "Miami Beach", Region: "Florida, United States"},
		{Name: "Miami", Region: "Florida, United States"},
		{Name: "North Miami", Region: "Florida, United States"},
		{Name: "Orlando", Region: "Florida, United States"},
	}
}

// DefaultListings yields a $189 hotel rated 4.2 as the cheapest one with a pool.
func DefaultListings() []Listing {
	return []Listing{
		{Name: "Bayside Inn", Price: 129, Rating: 3.1, Amenities: []string{"wifi"}},
		{Name: "Palm Suites", Price: 245, Rating: 4.6, Amenities: []string{"pool", "wifi", "spa"}},
		{Name: "Ocean Breeze Hotel", Price: 189, Rating: 4.2, Amenities: []string{"pool", "wifi"}},
		{Name: "Coral Tower", Price: 1234.5, Rating: 4.8, Amenities: []string{"pool", "spa", "parking"}},
	}
}

var (
	categories = []string{"hotels", "flights", "cars", "things-to-do", "dining"}
	amenities  = []string{"pool", "wifi", "spa", "parking"}
)

func (o Options) withDefaults() Options {
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	if o.Destinations == nil {
		o.Destinations = DefaultDestinations()
	}
	if o.Listings == nil {
		o.Listings = DefaultListings()
	}
	if o.ZoomLevel <= 0 {
		o.ZoomLevel = 3
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

type homeView struct {
	Year         int
	Categories   []string
	Months       []string
	Destinations []Destination
}

type resultsView struct {
	Category  string
	Location  string
	Start     string
	End       string
	Adults    int
	Children  int
	Amenities []string
	PriceFrom string
	PriceTo   string
	Listings  []Listing
	ZoomLevel int
}

// Handler returns the site: the search form at "/" and the results at "/search".
func Handler(opts Options) http.Handler {
	opts = opts.withDefaults()

	months := make([]string, 12)
	for i := range months {
		months[i] = time.Month(i + 1).String()
	}
	home := homeView{Year: opts.Year, Categories: categories, Months: months, Destinations: opts.Destinations}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		render(w, *opts.Logger, "home.html", home)
	})
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		view := resultsView{
			Category:  q.Get("category"),
			Location:  q.Get("location"),
			Start:     q.Get("start"),
			End:       q.Get("end"),
			Adults:    atoi(q.Get("adults"), 1),
			Children:  atoi(q.Get("children"), 0),
			Amenities: amenities,
			PriceFrom: "0",
			PriceTo:   strconv.FormatFloat(maxPrice(opts.Listings), 'f', -1, 64),
			Listings:  opts.Listings,
			ZoomLevel: opts.ZoomLevel,
		}
		render(w, *opts.Logger, "results.html", view)
	})

	return logRequests(*opts.Logger, mux)
}

// Start serves Handler(opts) on a local port. Close the server when done.
func Start(opts Options) *httptest.Server {
	return httptest.NewServer(Handler(opts))
}

func render(w http.ResponseWriter, logger zerolog.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Error().Err(err).Str("template", name).Msg("Template execution error")
	}
}

func logRequests(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("fixture request")
	})
}

func atoi(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return fallback
}

func maxPrice(listings []Listing) float64 {
	var m float64
	for _, l := range listings {
		if l.Price > m {
			m = l.Price
		}
	}
	return m
}
