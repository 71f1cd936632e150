package notify

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

// BuildInfo identifies the CI build that produced a run. Zero values render
// as local-run placeholders.
type BuildInfo struct {
	Number string
	URL    string
	Job    string
	Branch string
	Node   string
}

// BuildInfoFromEnv reads the usual CI variables.
func BuildInfoFromEnv() BuildInfo {
	return BuildInfo{
		Number: envOr("BUILD_NUMBER", "LOCAL"),
		URL:    os.Getenv("BUILD_URL"),
		Job:    envOr("JOB_NAME", "sitesmoke"),
		Branch: envOr("GIT_BRANCH", "main"),
		Node:   envOr("NODE_NAME", "local"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// failingSitesCap bounds the list in the message body; the full detail lives
// in the report.
const failingSitesCap = 5

// Build renders a run summary into a chat-ready message. Thresholds follow
// the channel convention: green when clean, yellow up to five failing sites,
// red beyond that.
func Build(s domain.RunSummary, b BuildInfo, reportURL string) Message {
	var emoji, color, statusText string
	switch {
	case s.SitesFailed == 0:
		emoji, color, statusText = "\U0001F7E2", "good", "ALL SITES PASSING"
	case s.SitesFailed <= 5:
		emoji, color, statusText = "\U0001F7E1", "warning", fmt.Sprintf("%d SITES WITH ISSUES", s.SitesFailed)
	default:
		emoji, color, statusText = "\U0001F534", "danger", fmt.Sprintf("%d SITES FAILING", s.SitesFailed)
	}

	var text strings.Builder
	text.WriteString(statusText)
	if failing := s.FailingSites(); len(failing) > 0 {
		text.WriteString("\nSites requiring attention:")
		for i, site := range failing {
			if i == failingSitesCap {
				break
			}
			fmt.Fprintf(&text, "\n• %s: %d/%d tests failed", site.SiteName, site.Failed, site.TotalTests)
		}
	}

	return Message{
		Title: fmt.Sprintf("%s Multi-Site Smoke Test Results - Build #%s", emoji, b.Number),
		Text:  text.String(),
		Color: color,
		Link:  reportURL,
		Fields: []Field{
			{Title: "Sites Passed", Value: fmt.Sprintf("%d/%d", s.SitesPassed, s.TotalSites)},
			{Title: "Sites Failed", Value: fmt.Sprintf("%d/%d", s.SitesFailed, s.TotalSites)},
			{Title: "Total Tests Run", Value: fmt.Sprintf("%d", s.TotalTests)},
			{Title: "Success Rate", Value: fmt.Sprintf("%.1f%%", s.SuccessRate()*100)},
			{Title: "Execution Time", Value: fmt.Sprintf("%.1f seconds", s.DurationSeconds)},
		},
		Footer: fmt.Sprintf("Job: %s | Branch: %s | Node: %s", b.Job, b.Branch, b.Node),
	}
}
