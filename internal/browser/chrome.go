package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeFactory runs checks inside headless Chrome via chromedp. One factory
// is shared by all workers; every NewSession call launches its own browser
// process so sites cannot interfere with each other.
type ChromeFactory struct {
	PageTimeout time.Duration
	UserAgent   string
}

func NewChromeFactory(pageTimeout time.Duration) *ChromeFactory {
	if pageTimeout <= 0 {
		pageTimeout = 20 * time.Second
	}
	return &ChromeFactory{PageTimeout: pageTimeout, UserAgent: DefaultUserAgent}
}

func (f *ChromeFactory) NewSession(ctx context.Context) (Session, error) {
	// DefaultExecAllocatorOptions already runs headless with GPU disabled.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(f.UserAgent),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelTab()
		cancelAlloc()
	}

	// Start the browser now so a missing or broken Chrome install surfaces
	// as a session-acquisition error instead of a failed first check.
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &chromeSession{ctx: tabCtx, cancel: cancel, timeout: f.PageTimeout}, nil
}

type chromeSession struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// actionContext derives a run context for one chromedp action. Actions must
// run on the tab's own context, so the caller context cannot be the parent;
// instead its cancellation is forwarded, making the caller's deadline
// authoritative over an in-flight action.
func actionContext(tab, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(tab, timeout)
	stop := context.AfterFunc(caller, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Open navigates the tab and waits for the document.
func (s *chromeSession) Open(ctx context.Context, url string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	runCtx, cancel := actionContext(s.ctx, ctx, s.timeout)
	defer cancel()

	var title string
	start := time.Now()
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Title(&title),
	)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return &chromePage{
		ctx:      s.ctx,
		timeout:  s.timeout,
		title:    title,
		loadTime: time.Since(start),
	}, nil
}

func (s *chromeSession) Close() { s.cancel() }

type chromePage struct {
	ctx      context.Context
	timeout  time.Duration
	title    string
	loadTime time.Duration
}

func (p *chromePage) Title() string           { return p.title }
func (p *chromePage) LoadTime() time.Duration { return p.loadTime }

func (p *chromePage) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	runCtx, cancel := actionContext(p.ctx, ctx, p.timeout)
	defer cancel()

	var n int
	expr := fmt.Sprintf("document.querySelectorAll(%q).length", selector)
	if err := chromedp.Run(runCtx, chromedp.Evaluate(expr, &n)); err != nil {
		return 0, err
	}
	return n, nil
}
