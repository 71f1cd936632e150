package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesmoke/internal/browser"
	"github.com/hamed0406/sitesmoke/internal/config"
	"github.com/hamed0406/sitesmoke/internal/domain"
	"github.com/hamed0406/sitesmoke/internal/logging"
	"github.com/hamed0406/sitesmoke/internal/notify"
	"github.com/hamed0406/sitesmoke/internal/repo/postgres"
	"github.com/hamed0406/sitesmoke/internal/report"
	"github.com/hamed0406/sitesmoke/internal/runner"
)

type options struct {
	sitesFile string
	only      []string
	workers   int
	timeout   time.Duration
	browser   string
	reportDir string
	interval  time.Duration
	noNotify  bool
}

func main() {
	cfg := config.FromEnv()
	opts := options{}

	root := &cobra.Command{
		Use:           "smoketest",
		Short:         "Run the browser smoke-test checklist against every configured site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, opts)
		},
	}

	f := root.Flags()
	f.StringVar(&opts.sitesFile, "sites", cfg.SitesFile, "YAML file listing sites to test")
	f.StringSliceVar(&opts.only, "only", nil, "test only the named sites")
	f.IntVar(&opts.workers, "workers", cfg.Workers, "concurrent browser sessions (max 10)")
	f.DurationVar(&opts.timeout, "timeout", cfg.PageTimeout, "page load budget")
	f.StringVar(&opts.browser, "browser", cfg.Browser, "browser backend: chrome or http")
	f.StringVar(&opts.reportDir, "report-dir", cfg.ReportDir, "directory for JSON and HTML reports")
	f.DurationVar(&opts.interval, "interval", 0, "rerun continuously at this interval (0 = run once)")
	f.BoolVar(&opts.noNotify, "no-notify", false, "skip the notification chain")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "smoketest:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	logger, err := logging.NewCLILogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	sites, err := config.LoadSites(opts.sitesFile)
	if err != nil {
		return err
	}
	if len(opts.only) > 0 {
		sites, err = filterSites(sites, opts.only)
		if err != nil {
			return err
		}
	}

	factory := browser.NewFactory(opts.browser, opts.timeout, logger)
	r := runner.New(factory, logger, opts.workers, cfg.SiteTimeout)

	var store *postgres.Store
	if cfg.DatabaseURL != "" {
		store, err = postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Warn("postgres_unavailable", zap.Error(err))
		} else {
			defer store.Close()
			if err := store.EnsureSchema(ctx); err != nil {
				logger.Warn("postgres_schema_error", zap.Error(err))
				store.Close()
				store = nil
			}
		}
	}

	for {
		summary := r.Run(ctx, sites)
		if err := publishRun(ctx, cfg, opts, logger, store, summary); err != nil {
			return err
		}

		if opts.interval <= 0 {
			if summary.SitesFailed > 0 {
				return fmt.Errorf("%d of %d sites failed", summary.SitesFailed, summary.TotalSites)
			}
			return nil
		}

		logger.Info("next_run_scheduled", zap.Duration("interval", opts.interval))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(opts.interval):
		}
	}
}

// publishRun persists and announces a single run. Report writing is fatal;
// storage and notification failures are logged and swallowed so a flaky
// webhook never masks the test outcome.
func publishRun(ctx context.Context, cfg config.Config, opts options, logger *zap.Logger, store *postgres.Store, summary domain.RunSummary) error {
	w := report.NewWriter(opts.reportDir)
	jsonPath, err := w.WriteJSON(summary)
	if err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	htmlPath, err := w.WriteHTML(summary)
	if err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	logger.Info("reports_written",
		zap.String("json", jsonPath),
		zap.String("html", htmlPath),
	)

	if store != nil {
		if err := store.Append(ctx, &summary); err != nil {
			logger.Warn("store_run_error", zap.Error(err))
		}
	}

	if !opts.noNotify {
		var chain notify.Chain
		if n := notify.NewSlack(cfg.SlackWebhookURL); n != nil {
			chain = append(chain, n)
		}
		if n := notify.NewWebhook(cfg.NotifyWebhookURL); n != nil {
			chain = append(chain, n)
		}
		if n := notify.NewFile(cfg.NotifyFile); n != nil {
			chain = append(chain, n)
		}
		if len(chain) > 0 {
			msg := notify.Build(summary, notify.BuildInfoFromEnv(), os.Getenv("BUILD_URL"))
			if err := chain.Send(ctx, msg); err != nil {
				logger.Warn("notify_error", zap.Error(err))
			}
		}
	}

	printSummary(summary)
	return nil
}

func filterSites(sites []domain.Site, only []string) ([]domain.Site, error) {
	want := make(map[string]bool, len(only))
	for _, name := range only {
		want[name] = true
	}
	var out []domain.Site
	for _, s := range sites {
		if want[s.Name] {
			out = append(out, s)
			delete(want, s.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for name := range want {
			missing = append(missing, name)
		}
		return nil, fmt.Errorf("unknown site(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func printSummary(s domain.RunSummary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("FINAL SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Sites tested:   %d\n", s.TotalSites)
	fmt.Printf("Sites passed:   %d\n", s.SitesPassed)
	fmt.Printf("Sites failed:   %d\n", s.SitesFailed)
	fmt.Printf("Tests run:      %d (%d passed, %d failed)\n", s.TotalTests, s.TotalPassed, s.TotalFailed)
	fmt.Printf("Success rate:   %.1f%%\n", s.SuccessRate()*100)
	fmt.Printf("Duration:       %.1f seconds\n", s.DurationSeconds)
	for _, site := range s.Sites {
		mark := "PASS"
		if !site.Passing() {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %-24s %d/%d tests passed\n", mark, site.SiteName, site.Passed, site.TotalTests)
	}
	fmt.Println(strings.Repeat("=", 60))
}
