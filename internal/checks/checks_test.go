package checks

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

// fakePage answers selector counts from a map; selectors not listed count 0.
type fakePage struct {
	title  string
	counts map[string]int
	err    error
}

func (f *fakePage) Title() string           { return f.title }
func (f *fakePage) LoadTime() time.Duration { return 100 * time.Millisecond }

func (f *fakePage) Count(_ context.Context, selector string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	// Match on a fragment so tests don't have to repeat full selector groups.
	for frag, n := range f.counts {
		if strings.Contains(selector, frag) {
			return n, nil
		}
	}
	return 0, nil
}

func TestFixed_OrderAndNames(t *testing.T) {
	want := []string{
		"Page Title", "Navigation Menu", "Search Feature",
		"Content Articles", "Footer Section", "Responsive Meta",
	}
	got := Fixed()
	if len(got) != len(want) {
		t.Fatalf("checklist size = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Name() != want[i] {
			t.Fatalf("check %d = %q, want %q", i, c.Name(), want[i])
		}
	}
}

func TestTitleCheck(t *testing.T) {
	cases := []struct {
		title string
		want  domain.Status
	}{
		{"", domain.StatusFail},
		{"NY", domain.StatusWarn},
		{"Metro News | Local Coverage", domain.StatusPass},
	}
	for _, tc := range cases {
		got := TitleCheck{}.Run(context.Background(), &fakePage{title: tc.title})
		if got.Status != tc.want {
			t.Fatalf("title %q: status = %s, want %s", tc.title, got.Status, tc.want)
		}
	}
}

func TestNavigationCheck_Thresholds(t *testing.T) {
	cases := []struct {
		links int
		want  domain.Status
	}{
		{0, domain.StatusFail},
		{2, domain.StatusWarn},
		{3, domain.StatusPass},
		{12, domain.StatusPass},
	}
	for _, tc := range cases {
		p := &fakePage{counts: map[string]int{"nav a": tc.links}}
		got := NavigationCheck{}.Run(context.Background(), p)
		if got.Status != tc.want {
			t.Fatalf("%d links: status = %s, want %s (%s)", tc.links, got.Status, tc.want, got.Details)
		}
	}
}

func TestSearchCheck(t *testing.T) {
	found := SearchCheck{}.Run(context.Background(), &fakePage{counts: map[string]int{"search": 1}})
	if found.Status != domain.StatusPass {
		t.Fatalf("search present: %s", found.Status)
	}
	missing := SearchCheck{}.Run(context.Background(), &fakePage{})
	if missing.Status != domain.StatusWarn {
		t.Fatalf("search missing should warn, got %s", missing.Status)
	}
}

func TestContentCheck_Thresholds(t *testing.T) {
	cases := []struct {
		articles, headlines int
		want                domain.Status
	}{
		{1, 1, domain.StatusFail},
		{2, 3, domain.StatusWarn},
		{4, 6, domain.StatusPass},
	}
	for _, tc := range cases {
		p := &fakePage{counts: map[string]int{"article": tc.articles, "h1": tc.headlines}}
		got := ContentCheck{}.Run(context.Background(), p)
		if got.Status != tc.want {
			t.Fatalf("%d+%d items: status = %s, want %s", tc.articles, tc.headlines, got.Status, tc.want)
		}
	}
}

func TestFooterCheck_NeverFails(t *testing.T) {
	for links, want := range map[int]domain.Status{
		0: domain.StatusWarn,
		1: domain.StatusWarn,
		5: domain.StatusPass,
	} {
		p := &fakePage{counts: map[string]int{"footer a": links}}
		got := FooterCheck{}.Run(context.Background(), p)
		if got.Status != want {
			t.Fatalf("%d footer links: status = %s, want %s", links, got.Status, want)
		}
	}
}

func TestViewportCheck(t *testing.T) {
	p := &fakePage{counts: map[string]int{"viewport": 1}}
	if got := (ViewportCheck{}).Run(context.Background(), p); got.Status != domain.StatusPass {
		t.Fatalf("viewport present: %s", got.Status)
	}
	if got := (ViewportCheck{}).Run(context.Background(), &fakePage{}); got.Status != domain.StatusWarn {
		t.Fatalf("viewport missing should warn, got %s", got.Status)
	}
}

func TestSelectorErrorRecordsFail(t *testing.T) {
	p := &fakePage{err: errors.New("session deadline exceeded while querying the page for elements")}
	got := NavigationCheck{}.Run(context.Background(), p)
	if got.Status != domain.StatusFail {
		t.Fatalf("selector error should fail, got %s", got.Status)
	}
	if len(got.Details) > 100 {
		t.Fatalf("details not clipped: %d chars", len(got.Details))
	}
}
