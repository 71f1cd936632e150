package notify

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

func summaryWithFailures(t *testing.T, failing int) domain.RunSummary {
	t.Helper()
	var sites []domain.SiteResult
	for i := 0; i < failing; i++ {
		r := domain.NewSiteResult(domain.Site{Name: fmt.Sprintf("Bad %02d", i), URL: "http://bad.test"})
		// Vary failure counts so ordering in the message is observable.
		for j := 0; j <= i%3; j++ {
			r.Record(domain.CheckResult{Test: "check", Status: domain.StatusFail})
		}
		sites = append(sites, *r)
	}
	ok := domain.NewSiteResult(domain.Site{Name: "Good", URL: "http://good.test"})
	ok.Record(domain.CheckResult{Test: "check", Status: domain.StatusPass})
	sites = append(sites, *ok)

	now := time.Now()
	return domain.Summarize(sites, now, now.Add(9*time.Second))
}

func TestBuild_AllPassing(t *testing.T) {
	m := Build(summaryWithFailures(t, 0), BuildInfo{Number: "7", Job: "smoke", Branch: "main", Node: "agent"}, "http://ci/report")

	require.Equal(t, "good", m.Color)
	require.Contains(t, m.Title, "Build #7")
	require.Contains(t, m.Text, "ALL SITES PASSING")
	require.NotContains(t, m.Text, "requiring attention")
	require.Equal(t, "http://ci/report", m.Link)
	require.Contains(t, m.Footer, "Branch: main")
}

func TestBuild_FewFailuresWarn(t *testing.T) {
	m := Build(summaryWithFailures(t, 3), BuildInfo{Number: "8"}, "")
	require.Equal(t, "warning", m.Color)
	require.Contains(t, m.Text, "3 SITES WITH ISSUES")
	require.Contains(t, m.Text, "requiring attention")
}

func TestBuild_ManyFailuresDanger(t *testing.T) {
	m := Build(summaryWithFailures(t, 8), BuildInfo{Number: "9"}, "")
	require.Equal(t, "danger", m.Color)
	require.Contains(t, m.Text, "8 SITES FAILING")

	// Only the top five failing sites are listed.
	require.Equal(t, failingSitesCap, strings.Count(m.Text, "tests failed"))
}

func TestBuild_FieldsCarryCounts(t *testing.T) {
	s := summaryWithFailures(t, 1)
	m := Build(s, BuildInfo{Number: "10"}, "")

	byTitle := map[string]string{}
	for _, f := range m.Fields {
		byTitle[f.Title] = f.Value
	}
	require.Equal(t, fmt.Sprintf("%d/%d", s.SitesPassed, s.TotalSites), byTitle["Sites Passed"])
	require.Equal(t, fmt.Sprintf("%d/%d", s.SitesFailed, s.TotalSites), byTitle["Sites Failed"])
	require.Equal(t, "9.0 seconds", byTitle["Execution Time"])
}

func TestBuildInfoFromEnv(t *testing.T) {
	t.Setenv("BUILD_NUMBER", "123")
	t.Setenv("JOB_NAME", "nightly-smoke")
	t.Setenv("GIT_BRANCH", "")
	t.Setenv("NODE_NAME", "")

	b := BuildInfoFromEnv()
	require.Equal(t, "123", b.Number)
	require.Equal(t, "nightly-smoke", b.Job)
	require.Equal(t, "main", b.Branch)
	require.Equal(t, "local", b.Node)
}
