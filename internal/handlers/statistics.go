package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darionTest/simplenight/internal/models"
)

// StatsEnvironmentItem represents an environment with its run statistics.
type StatsEnvironmentItem struct {
	models.EnvironmentStats
	PassRate    float64
	StatusStyle StatusStyle
	LastRun     string
}

// StatsViewModel is the data passed to the statistics view template.
type StatsViewModel struct {
	Runs         int
	Passed       int
	PassRate     float64
	Environments []StatsEnvironmentItem
}

// Statistics renders pass rates and price/rating aggregates per environment.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetEnvironmentStats()
	if err != nil {
		log.Error().Err(err).Msg("GetEnvironmentStats error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := StatsViewModel{Environments: make([]StatsEnvironmentItem, 0, len(stats))}
	for _, s := range stats {
		vm.Runs += s.Runs
		vm.Passed += s.Passed

		lastRun := ""
		if !s.LastRunAt.IsZero() {
			lastRun = s.LastRunAt.Local().Format("Jan 02, 15:04")
		}
		vm.Environments = append(vm.Environments, StatsEnvironmentItem{
			EnvironmentStats: s,
			PassRate:         s.PassRate(),
			// an environment is shown green only when every run passed
			StatusStyle: getStatusStyle(s.Passed == s.Runs),
			LastRun:     lastRun,
		})
	}
	if vm.Runs > 0 {
		vm.PassRate = float64(vm.Passed) / float64(vm.Runs) * 100
	}

	h.render(w, r, "stats.html", vm)
}
