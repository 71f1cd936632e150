package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/sitesmoke/internal/browser"
	"github.com/hamed0406/sitesmoke/internal/checks"
	"github.com/hamed0406/sitesmoke/internal/domain"
)

// Runner executes the fixed checklist against a set of sites and aggregates
// the outcomes into a RunSummary.
type Runner struct {
	Factory     browser.Factory
	Checks      []checks.Check
	Logger      *zap.Logger
	Workers     int
	SiteTimeout time.Duration

	// Homepage load-time thresholds: below LoadWarn is fast, below LoadSlow
	// is slow (WARN), anything above is very slow (still WARN, not FAIL;
	// only a load error or timeout fails the check).
	LoadWarn time.Duration
	LoadSlow time.Duration
}

func New(factory browser.Factory, logger *zap.Logger, workers int, siteTimeout time.Duration) *Runner {
	if workers < 1 {
		workers = 1
	}
	if workers > 10 {
		workers = 10
	}
	if siteTimeout <= 0 {
		siteTimeout = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Factory:     factory,
		Checks:      checks.Fixed(),
		Logger:      logger,
		Workers:     workers,
		SiteTimeout: siteTimeout,
		LoadWarn:    5 * time.Second,
		LoadSlow:    10 * time.Second,
	}
}

// Run tests every site and rolls the results into a RunSummary. It never
// fails outright: per-site failures are data, not propagated errors, so the
// caller inspects SitesFailed to decide overall success. Sites keep their
// input order in the summary regardless of worker scheduling.
func (r *Runner) Run(ctx context.Context, sites []domain.Site) domain.RunSummary {
	started := time.Now()
	results := make([]domain.SiteResult, len(sites))

	sem := make(chan struct{}, r.Workers)
	var wg sync.WaitGroup

	for i, site := range sites {
		i, site := i, site
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			results[i] = r.testSite(ctx, site)
			res := &results[i]
			r.Logger.Info("site_tested",
				zap.String("site", site.Name),
				zap.Int("passed", res.Passed),
				zap.Int("failed", res.Failed),
				zap.Int("warnings", res.Warnings),
				zap.Float64("duration_s", res.DurationSeconds),
			)
		}()
	}
	wg.Wait()

	return domain.Summarize(results, started, time.Now())
}

// testSite owns the full lifecycle for one site: fresh session, homepage
// load, fixed checklist, unconditional session release.
func (r *Runner) testSite(ctx context.Context, site domain.Site) domain.SiteResult {
	start := time.Now()
	res := domain.NewSiteResult(site)

	sctx, cancel := context.WithTimeout(ctx, r.SiteTimeout)
	defer cancel()

	r.runChecks(sctx, site, res)
	res.DurationSeconds = time.Since(start).Seconds()
	return *res
}

func (r *Runner) runChecks(ctx context.Context, site domain.Site, res *domain.SiteResult) {
	sess, err := r.Factory.NewSession(ctx)
	if err != nil {
		// The synthetic ERROR check keeps total_tests non-zero for the site,
		// so the success rate is well-defined.
		r.Logger.Warn("session_error", zap.String("site", site.Name), zap.Error(err))
		res.Record(domain.CheckResult{
			Test:    "Browser Setup",
			Status:  domain.StatusError,
			Details: domain.Clip("Failed to initialize browser session: "+err.Error(), 100),
		})
		return
	}
	defer sess.Close()

	page, load := r.loadHomepage(ctx, sess, site)
	res.Record(load)
	if page == nil {
		// Homepage never loaded; there is nothing for the rest of the
		// checklist to inspect. Failures are terminal per site.
		return
	}
	for _, c := range r.Checks {
		res.Record(c.Run(ctx, page))
	}
}

func (r *Runner) loadHomepage(ctx context.Context, sess browser.Session, site domain.Site) (browser.Page, domain.CheckResult) {
	const name = "Homepage Load"

	page, err := sess.Open(ctx, site.URL)
	if err != nil {
		return nil, domain.CheckResult{
			Test:    name,
			Status:  domain.StatusFail,
			Details: domain.Clip("Failed to load: "+err.Error(), 100),
		}
	}

	elapsed := page.LoadTime()
	status := domain.StatusPass
	note := "Fast"
	switch {
	case elapsed >= r.LoadSlow:
		status, note = domain.StatusWarn, "Very Slow"
	case elapsed >= r.LoadWarn:
		status, note = domain.StatusWarn, "Slow"
	}

	return page, domain.CheckResult{
		Test:    name,
		Status:  status,
		Details: fmt.Sprintf("Loaded in %.2fs (%s). Title: %s", elapsed.Seconds(), note, domain.Clip(page.Title(), 50)),
	}
}
