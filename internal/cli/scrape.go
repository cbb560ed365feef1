package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sportsboard/internal/config"
	"github.com/preston-bernstein/sportsboard/internal/scrape"
	"github.com/preston-bernstein/sportsboard/internal/snapshots"
)

type fetcherFactory func(cfg config.Config, browser bool, logger *slog.Logger) scrape.Fetcher

func defaultFetcher(cfg config.Config, browser bool, logger *slog.Logger) scrape.Fetcher {
	var inner scrape.Fetcher
	if browser {
		inner = scrape.NewBrowserFetcher(scrape.BrowserOptions{
			Timeout:   cfg.Scrape.Timeout,
			UserAgent: cfg.Scrape.UserAgent,
		})
	} else {
		inner = scrape.NewHTTPFetcher(scrape.HTTPOptions{
			Timeout:   cfg.Scrape.Timeout,
			UserAgent: cfg.Scrape.UserAgent,
		})
	}
	limited := scrape.NewRateLimitedFetcher(inner, cfg.Scrape.MinInterval, logger)
	return scrape.NewRetryingFetcher(limited, logger, nil, cfg.Scrape.Retries, 0)
}

func (a *App) scrapeCmd() *cobra.Command {
	var (
		job     scrape.Job
		browser bool
	)
	cmd := &cobra.Command{
		Use:   "scrape <domain> <url>",
		Short: "Fetch a page, extract matching text and write it with the domain's D-day label",
		Args:  exactArgs(2, "<domain> <url>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			job.Domain, job.URL = args[0], args[1]
			if job.Name == "" {
				job.Name = job.Domain
			}

			useBrowser := browser || a.cfg.Scrape.Browser
			fetcher := a.newFetcher(a.cfg, useBrowser, a.logger)
			sink := snapshots.NewWriter(a.cfg.DataDir, a.cfg.HistoryDays)
			res, err := scrape.NewRunner(fetcher, sink, svc, a.logger).Run(cmd.Context(), job)
			if err != nil {
				return err
			}
			return a.printScrape(res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&job.Selector, "selector", "", "CSS selector of the elements to extract (required)")
	flags.StringVar(&job.Pattern, "pattern", "", "regular expression applied to each element's text")
	flags.StringVar(&job.Name, "name", "", "output file name without .json (defaults to the domain)")
	flags.StringVar(&job.Wait.Selector, "wait-for", "", "selector to wait for before reading (defaults to --selector)")
	flags.DurationVar(&job.Wait.Settle, "settle", 0, "extra time to let scripts finish after the wait selector appears")
	flags.DurationVar(&job.Wait.Timeout, "timeout", 0, "fetch timeout (defaults to SCRAPE_TIMEOUT)")
	flags.BoolVar(&browser, "browser", false, "render the page in headless Chrome")
	return cmd
}

func (a *App) printScrape(res scrape.Result) error {
	if a.asJSON {
		out := struct {
			scrape.Result
			Error string `json:"error,omitempty"`
		}{Result: res}
		if res.Err != nil {
			out.Error = res.Err.Error()
		}
		return a.printJSON(out)
	}
	switch res.Status {
	case scrape.StatusWritten:
		fmt.Fprintf(a.stdout, "%s %s.json (%d items, %s)\n", styleOK.Render("written"), res.Name, res.Items, res.Label)
	case scrape.StatusKept:
		fmt.Fprintf(a.stdout, "%s %s.json kept from the previous run: %v\n", styleWarn.Render("kept"), res.Name, res.Err)
	default:
		fmt.Fprintf(a.stdout, "%s %s.json written with no items: %v\n", styleWarn.Render("fallback"), res.Name, res.Err)
	}
	return nil
}

