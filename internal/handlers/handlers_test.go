package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/darionTest/simplenight/internal/models"
	"github.com/darionTest/simplenight/internal/storage"
)

// HandlersTestSuite exercises the report pages against an in-memory database
type HandlersTestSuite struct {
	suite.Suite
	db *storage.DB
	h  *Handlers
}

// SetupTest runs before each test
func (suite *HandlersTestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
	suite.h = NewHandlers(db, Templates())
}

// TearDownTest runs after each test
func (suite *HandlersTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func (suite *HandlersTestSuite) seed(env string, passed bool, startedAt time.Time) *models.Run {
	run := &models.Run{
		Environment: env,
		BaseURL:     "http://" + strings.ToLower(env) + ".simplenight.test",
		Category:    "hotels",
		City:        "Miami",
		CheckIn:     "2025-12-10",
		CheckOut:    "2025-12-15",
		Price:       189,
		Rating:      4.2,
		Passed:      passed,
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(30 * time.Second),
	}
	if !passed {
		run.Failure = "price 612 is above priceMax 500"
	}
	require.NoError(suite.T(), suite.db.CreateRun(run))
	return run
}

func (suite *HandlersTestSuite) serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func (suite *HandlersTestSuite) TestListRuns_Empty() {
	w := suite.serve(suite.h.ListRuns, httptest.NewRequest(http.MethodGet, "/runs", http.NoBody))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "No runs recorded yet.")
	assert.Contains(suite.T(), w.Body.String(), "<!DOCTYPE html>")
}

func (suite *HandlersTestSuite) TestListRuns_GroupsByDay() {
	now := time.Now()
	suite.seed("DEV", true, now)
	suite.seed("STG", false, now)
	suite.seed("DEV", true, now.AddDate(0, 0, -1))

	w := suite.serve(suite.h.ListRuns, httptest.NewRequest(http.MethodGet, "/runs", http.NoBody))

	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(suite.T(), body, "2 / 3 passed")
	assert.Contains(suite.T(), body, "TODAY")
	assert.Contains(suite.T(), body, "YESTERDAY")
	assert.Less(suite.T(), strings.Index(body, "TODAY"), strings.Index(body, "YESTERDAY"), "newest day first")
	assert.Equal(suite.T(), 3, strings.Count(body, `class="run-item"`))
}

func (suite *HandlersTestSuite) TestListRuns_Limit() {
	now := time.Now()
	for i := range 3 {
		suite.seed("DEV", true, now.Add(-time.Duration(i)*time.Minute))
	}

	w := suite.serve(suite.h.ListRuns, httptest.NewRequest(http.MethodGet, "/runs?limit=2", http.NoBody))

	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), 2, strings.Count(w.Body.String(), `class="run-item"`))
}

func (suite *HandlersTestSuite) TestListRuns_HTMXPartial() {
	req := httptest.NewRequest(http.MethodGet, "/runs", http.NoBody)
	req.Header.Set("HX-Request", "true")

	w := suite.serve(suite.h.ListRuns, req)

	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotContains(suite.T(), w.Body.String(), "<!DOCTYPE html>")
	assert.Contains(suite.T(), w.Body.String(), "list-screen")
}

func (suite *HandlersTestSuite) TestRunDetail() {
	run := suite.seed("STG", false, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/runs/"+run.ID, http.NoBody)
	req.SetPathValue("id", run.ID)
	w := suite.serve(suite.h.RunDetail, req)

	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(suite.T(), body, run.ID)
	assert.Contains(suite.T(), body, "FAILED")
	assert.Contains(suite.T(), body, "price 612 is above priceMax 500")
	assert.Contains(suite.T(), body, "30s")
}

func (suite *HandlersTestSuite) TestRunDetail_NotFound() {
	req := httptest.NewRequest(http.MethodGet, "/runs/missing", http.NoBody)
	req.SetPathValue("id", "missing")

	w := suite.serve(suite.h.RunDetail, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestRunsJSON() {
	run := suite.seed("DEV", true, time.Now())

	w := suite.serve(suite.h.RunsJSON, httptest.NewRequest(http.MethodGet, "/api/runs", http.NoBody))

	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "application/json", w.Header().Get("Content-Type"))

	var runs []models.Run
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(suite.T(), runs, 1)
	assert.Equal(suite.T(), run.ID, runs[0].ID)
	assert.True(suite.T(), runs[0].Passed)
}

func (suite *HandlersTestSuite) TestRunsJSON_EmptyIsArray() {
	w := suite.serve(suite.h.RunsJSON, httptest.NewRequest(http.MethodGet, "/api/runs", http.NoBody))

	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

func (suite *HandlersTestSuite) TestStatistics() {
	now := time.Now()
	suite.seed("DEV", true, now)
	suite.seed("DEV", false, now.Add(-time.Minute))
	suite.seed("STG", true, now)

	w := suite.serve(suite.h.Statistics, httptest.NewRequest(http.MethodGet, "/stats", http.NoBody))

	require.Equal(suite.T(), http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(suite.T(), body, "2 / 3 passed (67%)")
	assert.Equal(suite.T(), 2, strings.Count(body, `class="env-row"`))
	assert.Contains(suite.T(), body, "50%")
	assert.Contains(suite.T(), body, "100%")
}

func (suite *HandlersTestSuite) TestRender_MissingTemplate() {
	h := NewHandlers(suite.db, fstest.MapFS{})

	w := suite.serve(h.ListRuns, httptest.NewRequest(http.MethodGet, "/runs", http.NoBody))

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

func TestFormatGroupTitle(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "TODAY", formatGroupTitle(now))
	assert.Equal(t, "YESTERDAY", formatGroupTitle(now.AddDate(0, 0, -1)))

	old := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "WED, 10 DEC '25", formatGroupTitle(old))
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
