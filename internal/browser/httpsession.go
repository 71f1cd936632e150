package browser

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// HTTPFactory loads pages with a plain HTTP client and inspects the static
// HTML. It covers agents without a Chrome install; content rendered by
// scripts is invisible to it, which tends to show up as WARN rather than
// PASS on content-heavy checks.
type HTTPFactory struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPFactory(pageTimeout time.Duration) *HTTPFactory {
	if pageTimeout <= 0 {
		pageTimeout = 20 * time.Second
	}
	return &HTTPFactory{
		Client:    &http.Client{Timeout: pageTimeout},
		UserAgent: DefaultUserAgent,
	}
}

func (f *HTTPFactory) NewSession(ctx context.Context) (Session, error) {
	return &httpSession{client: f.Client, ua: f.UserAgent}, nil
}

type httpSession struct {
	client *http.Client
	ua     string
}

func (s *httpSession) Open(ctx context.Context, url string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.ua)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("load %s: %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return &httpPage{doc: doc, loadTime: time.Since(start)}, nil
}

func (s *httpSession) Close() {}

type httpPage struct {
	doc      *goquery.Document
	loadTime time.Duration
}

func (p *httpPage) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

func (p *httpPage) LoadTime() time.Duration { return p.loadTime }

func (p *httpPage) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return p.doc.Find(selector).Length(), nil
}
