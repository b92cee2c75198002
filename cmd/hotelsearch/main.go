package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/logging"
	"github.com/darionTest/simplenight/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{
		stdout:   stdout,
		logger:   logging.New(stderr),
		openPage: launchChromium,
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// Page is the browser page a search run drives.
type Page interface {
	browser.Driver
	Screenshot(path string) error
	Close() error
}

// pageOpener starts a browser and opens one page in it. release shuts the browser down.
type pageOpener func(opts browser.LaunchOptions) (page Page, release func() error, err error)

func launchChromium(opts browser.LaunchOptions) (Page, func() error, error) {
	session, err := browser.Launch(opts)
	if err != nil {
		return nil, nil, err
	}
	page, err := session.NewPage()
	if err != nil {
		_ = session.Close()
		return nil, nil, err
	}
	return page, session.Close, nil
}

type app struct {
	stdout   io.Writer
	logger   zerolog.Logger
	openPage pageOpener
	envFiles []string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hotelsearch",
		Short:         "Hotel search end-to-end checks",
		Long:          `Runs the hotel search journey in Chromium and keeps a history of the results.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "dotenv file(s) to load, defaults to .env when present")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newPruneCmd(a))

	return root
}

type storeConfig struct {
	DBPath string `envconfig:"DB_PATH" default:"runs.db"`
}

// openStore opens the run history. A non-empty path wins over DB_PATH.
func (a *app) openStore(path string) (*storage.DB, error) {
	if path == "" {
		if len(a.envFiles) == 0 {
			_ = godotenv.Load()
		} else if err := godotenv.Load(a.envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
		var cfg storeConfig
		if err := envconfig.Process("", &cfg); err != nil {
			return nil, err
		}
		path = cfg.DBPath
	}

	db, err := storage.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}
