package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/darionTest/simplenight/internal/models"
)

// DBTestSuite provides a test suite for run history operations
type DBTestSuite struct {
	suite.Suite
	db *DB
}

// SetupTest runs before each test
func (suite *DBTestSuite) SetupTest() {
	db, err := NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db
}

// TearDownTest runs after each test
func (suite *DBTestSuite) TearDownTest() {
	if suite.db != nil {
		suite.db.Close()
	}
}

func newRun(env string, price, rating float64, passed bool, startedAt time.Time) *models.Run {
	return &models.Run{
		Environment: env,
		BaseURL:     "http://" + env + ".simplenight.test",
		Category:    "hotels",
		City:        "Miami",
		CheckIn:     "2025-12-10",
		CheckOut:    "2025-12-15",
		Price:       price,
		Rating:      rating,
		Passed:      passed,
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(42 * time.Second),
	}
}

func (suite *DBTestSuite) TestCreateRun_AssignsID() {
	run := newRun("DEV", 189, 4.2, true, time.Now())

	err := suite.db.CreateRun(run)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), run.ID, 36, "expected a UUID")
}

func (suite *DBTestSuite) TestCreateRun_DefaultsTimestamps() {
	run := &models.Run{Environment: "DEV", BaseURL: "http://dev", Category: "hotels", City: "Miami"}

	err := suite.db.CreateRun(run)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), run.FinishedAt.IsZero())
	assert.Equal(suite.T(), run.FinishedAt, run.StartedAt)
}

func (suite *DBTestSuite) TestGetRun() {
	started := time.Now().Add(-time.Minute)
	run := newRun("STG", 612, 3.1, false, started)
	run.Failure = "price 612 is above priceMax 500"
	run.Screenshot = "artifacts/failure.png"
	require.NoError(suite.T(), suite.db.CreateRun(run))

	got, err := suite.db.GetRun(run.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "STG", got.Environment)
	assert.Equal(suite.T(), "Miami", got.City)
	assert.Equal(suite.T(), 612.0, got.Price)
	assert.Equal(suite.T(), 3.1, got.Rating)
	assert.False(suite.T(), got.Passed)
	assert.Equal(suite.T(), run.Failure, got.Failure)
	assert.Equal(suite.T(), run.Screenshot, got.Screenshot)
	assert.WithinDuration(suite.T(), started, got.StartedAt, time.Second)
	assert.Equal(suite.T(), 42*time.Second, got.Duration().Round(time.Second))
}

func (suite *DBTestSuite) TestGetRun_NotFound() {
	_, err := suite.db.GetRun("missing")
	assert.Error(suite.T(), err)
}

func (suite *DBTestSuite) TestListRuns() {
	base := time.Now().Add(-time.Hour)

	runs := []struct {
		price  float64
		offset time.Duration
	}{
		{100, time.Minute},
		{200, 2 * time.Minute},
		{300, 3 * time.Minute},
	}
	for _, r := range runs {
		err := suite.db.CreateRun(newRun("DEV", r.price, 4, true, base.Add(r.offset)))
		require.NoError(suite.T(), err, "failed to create run: %v", r.price)
	}

	result, err := suite.db.ListRuns(0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), result, 3, "expected 3 runs")
	assert.Equal(suite.T(), 300.0, result[0].Price, "latest run first")

	limited, err := suite.db.ListRuns(2)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), limited, 2)
}

func (suite *DBTestSuite) TestGetEnvironmentStats() {
	now := time.Now()
	fixtures := []*models.Run{
		newRun("DEV", 100, 4.0, true, now.Add(-3*time.Hour)),
		newRun("DEV", 300, 3.0, false, now.Add(-2*time.Hour)),
		newRun("STG", 150, 4.5, true, now.Add(-time.Hour)),
	}
	for _, r := range fixtures {
		require.NoError(suite.T(), suite.db.CreateRun(r))
	}

	stats, err := suite.db.GetEnvironmentStats()
	require.NoError(suite.T(), err)
	require.Len(suite.T(), stats, 2)

	dev := stats[0]
	assert.Equal(suite.T(), "DEV", dev.Environment)
	assert.Equal(suite.T(), 2, dev.Runs)
	assert.Equal(suite.T(), 1, dev.Passed)
	assert.Equal(suite.T(), 50.0, dev.PassRate())
	assert.Equal(suite.T(), 200.0, dev.AvgPrice)
	assert.Equal(suite.T(), 100.0, dev.MinPrice)
	assert.Equal(suite.T(), 300.0, dev.MaxPrice)
	assert.InDelta(suite.T(), 3.5, dev.AvgRating, 0.001)
	assert.WithinDuration(suite.T(), now.Add(-2*time.Hour), dev.LastRunAt, time.Second)

	assert.Equal(suite.T(), "STG", stats[1].Environment)
	assert.Equal(suite.T(), 100.0, stats[1].PassRate())
}

func (suite *DBTestSuite) TestDeleteRunsBefore() {
	now := time.Now()
	require.NoError(suite.T(), suite.db.CreateRun(newRun("DEV", 100, 4, true, now.AddDate(0, 0, -40))))
	require.NoError(suite.T(), suite.db.CreateRun(newRun("DEV", 100, 4, true, now.AddDate(0, 0, -1))))

	n, err := suite.db.DeleteRunsBefore(now.AddDate(0, 0, -30))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), n)

	runs, err := suite.db.ListRuns(0)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), runs, 1)
}

func TestNewDB_ReopenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateRun(newRun("DEV", 100, 4, true, time.Now())))
	require.NoError(t, db.Close())

	// migrations are idempotent
	db, err = NewDB(path)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewDB_InvalidPath(t *testing.T) {
	_, err := NewDB(t.TempDir())
	assert.Error(t, err)
}

// Test suite runners
func TestDBSuite(t *testing.T) {
	suite.Run(t, new(DBTestSuite))
}
