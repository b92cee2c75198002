package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/config"
	"github.com/darionTest/simplenight/internal/models"
	"github.com/darionTest/simplenight/internal/pages"
	"github.com/darionTest/simplenight/internal/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		dataPath string
		dbPath   string
		strict   bool
		headed   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the hotel search scenario against the configured environment",
		Long: `Loads the environment (ENV, DEV_BASE_URL, STAGING_BASE_URL, ...), runs the search
described by the data file and records the outcome. Exits non-zero when the journey
fails or the result is outside of the filter bounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFiles...)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("data") {
				cfg.SearchData = dataPath
			}
			if flags.Changed("db") {
				cfg.DBPath = dbPath
			}
			if flags.Changed("strict") {
				cfg.StrictDestiny = strict
			}
			if headed {
				cfg.Headless = false
			}

			return a.search(cfg)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "search data file (.json, .yaml), overrides SEARCH_DATA")
	cmd.Flags().StringVar(&dbPath, "db", "", "run history database, overrides DB_PATH")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when no destination matches the label exactly, overrides STRICT_DESTINY")
	cmd.Flags().BoolVar(&headed, "headed", false, "show the browser window")

	return cmd
}

// search runs the scenario once and stores the outcome. The returned error is the
// scenario failure, if any.
func (a *app) search(cfg *config.Config) error {
	params, err := scenario.LoadParams(cfg.SearchData)
	if err != nil {
		return err
	}

	db, err := a.openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	page, release, err := a.openPage(browser.LaunchOptions{
		Headless: cfg.Headless,
		Timeout:  cfg.BrowserTimeout,
		Width:    1920,
		Height:   1080,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to stop browser")
		}
	}()
	defer page.Close()

	var opts []pages.Option
	if cfg.StrictDestiny {
		opts = append(opts, pages.WithStrictDestinations())
	}
	sc := scenario.New(page, a.logger, opts...)

	record := models.Run{
		ID:          uuid.NewString(),
		Environment: cfg.Env,
		BaseURL:     cfg.BaseURL,
		Category:    params.Category,
		City:        params.Destiny.City,
		CheckIn:     params.Dates.Start,
		CheckOut:    params.Dates.End,
		StartedAt:   time.Now(),
	}
	a.logger.Info().Str("run", record.ID).Str("env", cfg.Env).Str("url", cfg.BaseURL).Msg("Starting hotel search")

	result, runErr := sc.Run(cfg.BaseURL, params)
	if runErr == nil {
		runErr = sc.Verify(result, params.Filters)
	}

	record.FinishedAt = time.Now()
	record.Price = result.Price
	record.Rating = result.Rating
	record.Passed = runErr == nil
	if runErr != nil {
		record.Failure = runErr.Error()
		record.Screenshot = a.screenshot(page, cfg.ArtifactsDir, record.ID)
		a.logger.Error().Err(runErr).Str("run", record.ID).Msg("Hotel search failed")
	}

	if err := db.CreateRun(&record); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to save run: %w", err))
	}

	status := "PASSED"
	if !record.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(a.stdout, "%s %s %s price=%.2f rating=%.1f duration=%s\n",
		status, record.Environment, record.ID, record.Price, record.Rating,
		record.Duration().Round(time.Millisecond))

	return runErr
}

// screenshot saves the page under dir and returns the file path, or "" when it could not.
func (a *app) screenshot(page Page, dir, runID string) string {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		a.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to create artifacts directory")
		return ""
	}
	path := filepath.Join(dir, runID+".png")
	if err := page.Screenshot(path); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to take screenshot")
		return ""
	}
	return path
}
