package models

import "time"

// Run is one execution of the hotel search scenario.
type Run struct {
	ID          string    `json:"id"`
	Environment string    `json:"environment"`
	BaseURL     string    `json:"base_url"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Passed      bool      `json:"passed"`
	Failure     string    `json:"failure,omitempty"`
	Screenshot  string    `json:"screenshot,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Duration is how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// EnvironmentStats summarises the runs against one environment.
type EnvironmentStats struct {
	Environment string
	Runs        int
	Passed      int
	AvgPrice    float64
	MinPrice    float64
	MaxPrice    float64
	AvgRating   float64
	LastRunAt   time.Time
}

// PassRate is the share of passed runs in percent.
func (s EnvironmentStats) PassRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Runs) * 100
}
