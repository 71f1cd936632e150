package checks

import (
	"context"
	"fmt"

	"github.com/hamed0406/sitesmoke/internal/browser"
	"github.com/hamed0406/sitesmoke/internal/domain"
)

// TitleCheck verifies the document carries a usable title.
type TitleCheck struct{}

func (TitleCheck) Name() string { return "Page Title" }

func (c TitleCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	title := page.Title()
	switch {
	case title == "":
		return fail(c.Name(), "No page title found")
	case len(title) < 5:
		return warn(c.Name(), fmt.Sprintf("Suspiciously short title: %q", title))
	default:
		return pass(c.Name(), "Title: "+domain.Clip(title, 50))
	}
}

// NavigationCheck verifies the primary navigation renders enough links.
type NavigationCheck struct{}

func (NavigationCheck) Name() string { return "Navigation Menu" }

func (c NavigationCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	n, err := page.Count(ctx, "nav a, .navigation a, .menu a, header a, [role='navigation'] a")
	if err != nil {
		return failErr(c.Name(), err)
	}
	switch {
	case n >= 3:
		return pass(c.Name(), fmt.Sprintf("Found %d navigation links", n))
	case n > 0:
		return warn(c.Name(), fmt.Sprintf("Only %d navigation links found", n))
	default:
		return fail(c.Name(), "No navigation links found")
	}
}

// SearchCheck looks for a search affordance. News sites bury it behind many
// different markups, so absence is a warning rather than a failure.
type SearchCheck struct{}

func (SearchCheck) Name() string { return "Search Feature" }

func (c SearchCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	n, err := page.Count(ctx,
		"input[type='search'], input[placeholder*='search'], input[placeholder*='Search'], "+
			"[aria-label*='search'], [aria-label*='Search'], .search-button, .search-icon, #search")
	if err != nil {
		return failErr(c.Name(), err)
	}
	if n > 0 {
		return pass(c.Name(), "Search functionality found")
	}
	return warn(c.Name(), "No search element detected")
}

// ContentCheck counts articles and headlines. A news homepage with almost no
// content is broken even when it technically loads.
type ContentCheck struct{}

func (ContentCheck) Name() string { return "Content Articles" }

func (c ContentCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	articles, err := page.Count(ctx, "article, .article, .story, [role='article']")
	if err != nil {
		return failErr(c.Name(), err)
	}
	headlines, err := page.Count(ctx, "h1, h2, h3, .headline, .title")
	if err != nil {
		return failErr(c.Name(), err)
	}
	total := articles + headlines
	switch {
	case total >= 10:
		return pass(c.Name(), fmt.Sprintf("Found %d articles, %d headlines", articles, headlines))
	case total >= 5:
		return warn(c.Name(), fmt.Sprintf("Limited content: %d articles, %d headlines", articles, headlines))
	default:
		return fail(c.Name(), fmt.Sprintf("Insufficient content: only %d items found", total))
	}
}

// FooterCheck verifies the footer and its link block rendered.
type FooterCheck struct{}

func (FooterCheck) Name() string { return "Footer Section" }

func (c FooterCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	links, err := page.Count(ctx, "footer a, .footer a, #footer a, [role='contentinfo'] a")
	if err != nil {
		return failErr(c.Name(), err)
	}
	switch {
	case links >= 3:
		return pass(c.Name(), fmt.Sprintf("Footer found with %d links", links))
	case links > 0:
		return warn(c.Name(), fmt.Sprintf("Footer found but only %d links", links))
	default:
		return warn(c.Name(), "Footer not detected")
	}
}

// ViewportCheck verifies the responsive viewport meta tag is present.
type ViewportCheck struct{}

func (ViewportCheck) Name() string { return "Responsive Meta" }

func (c ViewportCheck) Run(ctx context.Context, page browser.Page) domain.CheckResult {
	n, err := page.Count(ctx, "meta[name='viewport']")
	if err != nil {
		return failErr(c.Name(), err)
	}
	if n > 0 {
		return pass(c.Name(), "Responsive viewport meta tag found")
	}
	return warn(c.Name(), "No viewport meta tag detected")
}
