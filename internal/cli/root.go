// Package cli is the seasonctl command tree: season/tournament commands over
// the configuration document, page scraping and the dashboard server.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/app/seasons"
	"github.com/preston-bernstein/sportsboard/internal/config"
	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/server"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

const (
	appName       = "seasonctl"
	defaultDomain = "badminton"
)

// App holds the collaborators of one CLI invocation.
type App struct {
	stdout  io.Writer
	stderr  io.Writer
	version string
	now     func() time.Time

	loadConfig func() (config.Config, error)
	openStore  func(config.Config, *slog.Logger) (store.Store, error)
	newFetcher fetcherFactory
	runServer  func(context.Context, config.Config, *slog.Logger) error

	cfg    config.Config
	logger *slog.Logger
	store  store.Store
	svc    *seasons.Service

	domain  string
	at      string
	asJSON  bool
	verbose bool
}

// Option customises an App.
type Option func(*App)

// WithOutput redirects stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) { a.stdout, a.stderr = stdout, stderr }
}

// WithClock fixes the instant "today" is derived from.
func WithClock(now func() time.Time) Option { return func(a *App) { a.now = now } }

// WithConfigLoader replaces config.Load.
func WithConfigLoader(fn func() (config.Config, error)) Option {
	return func(a *App) { a.loadConfig = fn }
}

// WithFetcherFactory replaces the page fetcher used by scrape.
func WithFetcherFactory(fn fetcherFactory) Option { return func(a *App) { a.newFetcher = fn } }

// WithServerRunner replaces the serve loop.
func WithServerRunner(fn func(context.Context, config.Config, *slog.Logger) error) Option {
	return func(a *App) { a.runServer = fn }
}

// WithVersion sets the version stamped on logs.
func WithVersion(v string) Option { return func(a *App) { a.version = v } }

// NewApp constructs an App wired to the real config, store and fetchers.
func NewApp(opts ...Option) *App {
	a := &App{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		version:    "dev",
		now:        time.Now,
		loadConfig: config.Load,
		openStore:  server.OpenStore,
		newFetcher: defaultFetcher,
		runServer:  runServer,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "%s %v\n", styleError.Render("error:"), err)
		if ExitCode(err) == ExitUsage {
			fmt.Fprintf(a.stderr, "Run '%s --help' for usage.\n", appName)
		}
	}
	return ExitCode(err)
}

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Track season and tournament windows and their D-day labels.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.domain, "domain", "d", defaultDomain, "domain to operate on (baseball, volleyball, badminton, events, ...)")
	flags.StringVar(&a.at, "at", "", `evaluate as of this date (YYYY-MM-DD or a phrase like "next friday")`)
	flags.BoolVar(&a.asJSON, "json", false, "print machine-readable JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.startCmd(),
		a.endCmd(),
		a.addCmd(),
		a.statusCmd(),
		a.autoCmd(),
		a.seasonCmd(),
		a.scrapeCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.NewLogger(logging.Config{
		Level:   level,
		Format:  logging.FormatPretty,
		Service: appName,
		Version: a.version,
		Writer:  a.stderr,
	})
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// service opens the store on first use and builds the seasons service with
// the --at reference date applied.
func (a *App) service() (*seasons.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	clock, err := a.clock()
	if err != nil {
		return nil, err
	}
	st, err := a.openStore(a.cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = st
	a.svc = seasons.NewService(st,
		seasons.WithClock(clock),
		seasons.WithLocation(a.cfg.Location()),
		seasons.WithLogger(a.logger),
	)
	return a.svc, nil
}

func (a *App) clock() (func() time.Time, error) {
	if a.at == "" {
		return a.now, nil
	}
	loc := a.cfg.Location()
	d, err := timeutil.ParseReference(a.at, a.now(), loc)
	if err != nil {
		return nil, usageErrorf("--at: %v", err)
	}
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc)
	return func() time.Time { return noon }, nil
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.svc = nil, nil
	return err
}
