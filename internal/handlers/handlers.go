package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darionTest/simplenight/internal/models"
	"github.com/darionTest/simplenight/internal/storage"
)

//go:embed templates/*.html
var embedded embed.FS

// DefaultListLimit is how many runs the list view shows without a limit parameter.
const DefaultListLimit = 50

// Templates returns the built-in report templates.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db        *storage.DB
	templates fs.FS
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, templates fs.FS) *Handlers {
	return &Handlers{db: db, templates: templates}
}

// StatusStyle defines the visual style for a run outcome.
type StatusStyle struct {
	Label string
	Icon  string
	Color string
}

var (
	passedStyle = StatusStyle{Label: "PASSED", Icon: "✔", Color: "#34d399"}
	failedStyle = StatusStyle{Label: "FAILED", Icon: "✘", Color: "#f87171"}
)

func getStatusStyle(passed bool) StatusStyle {
	if passed {
		return passedStyle
	}
	return failedStyle
}

// RunItem represents a run in the list view.
type RunItem struct {
	models.Run
	Time        string
	Duration    string
	StatusStyle StatusStyle
}

func newRunItem(r models.Run) RunItem {
	return RunItem{
		Run:         r,
		Time:        r.StartedAt.Local().Format("15:04"),
		Duration:    r.Duration().Round(time.Second).String(),
		StatusStyle: getStatusStyle(r.Passed),
	}
}

// RunGroup groups runs by date.
type RunGroup struct {
	Title  string
	Date   string
	Passed int
	Failed int
	Items  []RunItem
}

// ListViewModel is the data passed to the list view template.
type ListViewModel struct {
	Total  int
	Passed int
	Groups []RunGroup
}

// RunViewModel is the data passed to the run detail template.
type RunViewModel struct {
	Item RunItem
}

// ListRuns renders the most recent runs grouped by day.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.db.ListRuns(parseLimit(r))
	if err != nil {
		log.Error().Err(err).Msg("ListRuns error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	groupsMap := make(map[string]*RunGroup)
	vm := ListViewModel{Total: len(runs)}

	for _, run := range runs {
		started := run.StartedAt.Local()
		dateStr := started.Format("2006-01-02")
		if _, ok := groupsMap[dateStr]; !ok {
			groupsMap[dateStr] = &RunGroup{Date: dateStr, Title: formatGroupTitle(started)}
		}
		group := groupsMap[dateStr]
		if run.Passed {
			group.Passed++
			vm.Passed++
		} else {
			group.Failed++
		}
		group.Items = append(group.Items, newRunItem(run))
	}

	vm.Groups = make([]RunGroup, 0, len(groupsMap))
	for _, g := range groupsMap {
		vm.Groups = append(vm.Groups, *g)
	}
	sort.Slice(vm.Groups, func(i, j int) bool { return vm.Groups[i].Date > vm.Groups[j].Date })

	h.render(w, r, "list.html", vm)
}

// RunDetail renders one run.
func (h *Handlers) RunDetail(w http.ResponseWriter, r *http.Request) {
	run, err := h.db.GetRun(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	h.render(w, r, "run.html", RunViewModel{Item: newRunItem(*run)})
}

// RunsJSON serves the most recent runs as JSON.
func (h *Handlers) RunsJSON(w http.ResponseWriter, r *http.Request) {
	runs, err := h.db.ListRuns(parseLimit(r))
	if err != nil {
		log.Error().Err(err).Msg("RunsJSON error")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []models.Run{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		log.Error().Err(err).Msg("RunsJSON encode error")
	}
}

func parseLimit(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		return n
	}
	return DefaultListLimit
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, viewName string, data any) {
	tmpl, err := template.ParseFS(h.templates, "base.html", viewName)
	if err != nil {
		log.Error().Err(err).Str("view", viewName).Msg("Template error")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	target := "base.html"
	if r.Header.Get("HX-Request") == "true" {
		target = "content"
	}
	if err := tmpl.ExecuteTemplate(w, target, data); err != nil {
		log.Error().Err(err).Str("view", viewName).Msg("Template execution error")
	}
}

func formatGroupTitle(date time.Time) string {
	dateStr := date.Format("2006-01-02")
	nowStr := time.Now().Format("2006-01-02")

	if dateStr == nowStr {
		return "TODAY"
	}
	yesterdayStr := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if dateStr == yesterdayStr {
		return "YESTERDAY"
	}
	return strings.ToUpper(date.Format("Mon, 02 Jan '06"))
}
