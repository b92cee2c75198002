package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the format of calendar days in the date picker.
const DateLayout = "2006-01-02"

// Params is the externally supplied input of one search scenario.
type Params struct {
	Category string  `json:"category" yaml:"category"`
	Destiny  Destiny `json:"destiny" yaml:"destiny"`
	Dates    Dates   `json:"dates" yaml:"dates"`
	Guests   Guests  `json:"guests" yaml:"guests"`
	Filters  Filters `json:"filters" yaml:"filters"`
}

type Destiny struct {
	City  string `json:"city" yaml:"city"`
	Label string `json:"label" yaml:"label"`
}

type Dates struct {
	Month string `json:"month" yaml:"month"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type Guests struct {
	Children int `json:"children" yaml:"children"`
	// Adults added on top of the site's default occupancy.
	Adults int `json:"adults,omitempty" yaml:"adults,omitempty"`
}

type Filters struct {
	Checkbox  string  `json:"checkbox" yaml:"checkbox"`
	Option    string  `json:"option" yaml:"option"`
	PriceMin  float64 `json:"priceMin" yaml:"priceMin"`
	PriceMax  float64 `json:"priceMax" yaml:"priceMax"`
	RatingMin float64 `json:"ratingMin" yaml:"ratingMin"`
}

// LoadParams reads parameters from a JSON or YAML file, picked by extension.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("failed to read search data: %w", err)
	}

	var p Params
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &p)
	default:
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return Params{}, fmt.Errorf("failed to parse search data %s: %w", path, err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid search data %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the parameters before any browser work starts.
func (p Params) Validate() error {
	var errs []error
	required := []struct{ field, value string }{
		{"category", p.Category},
		{"destiny.city", p.Destiny.City},
		{"destiny.label", p.Destiny.Label},
		{"dates.month", p.Dates.Month},
		{"filters.checkbox", p.Filters.Checkbox},
		{"filters.option", p.Filters.Option},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.field))
		}
	}

	start, err := time.Parse(DateLayout, p.Dates.Start)
	if err != nil {
		errs = append(errs, fmt.Errorf("dates.start: %w", err))
	}
	end, err2 := time.Parse(DateLayout, p.Dates.End)
	if err2 != nil {
		errs = append(errs, fmt.Errorf("dates.end: %w", err2))
	}
	if err == nil && err2 == nil && end.Before(start) {
		errs = append(errs, fmt.Errorf("dates.end %s is before dates.start %s", p.Dates.End, p.Dates.Start))
	}

	if p.Guests.Children < 0 {
		errs = append(errs, errors.New("guests.children must not be negative"))
	}
	if p.Guests.Adults < 0 {
		errs = append(errs, errors.New("guests.adults must not be negative"))
	}
	if p.Filters.PriceMin > p.Filters.PriceMax {
		errs = append(errs, fmt.Errorf("filters.priceMin %v is above filters.priceMax %v", p.Filters.PriceMin, p.Filters.PriceMax))
	}

	return errors.Join(errs...)
}
