package domain

import (
	"sort"
	"time"
)

// SiteResult accumulates the check outcomes for one site during a run and
// carries the derived counts. The counts always equal a tally over
// TestResults: Record is the only way results get in.
type SiteResult struct {
	SiteName        string        `json:"site_name"`
	SiteURL         string        `json:"site_url"`
	TotalTests      int           `json:"total_tests"`
	Passed          int           `json:"passed"`
	Failed          int           `json:"failed"`
	Warnings        int           `json:"warnings"`
	SuccessRate     float64       `json:"success_rate"`
	DurationSeconds float64       `json:"duration_seconds"`
	TestResults     []CheckResult `json:"test_results"`
}

func NewSiteResult(site Site) *SiteResult {
	return &SiteResult{SiteName: site.Name, SiteURL: site.URL}
}

// Record appends one check outcome and keeps the derived counts in step.
func (r *SiteResult) Record(cr CheckResult) {
	r.TestResults = append(r.TestResults, cr)
	r.TotalTests++
	if cr.Status.Failed() {
		r.Failed++
	} else {
		r.Passed++
	}
	if cr.Status == StatusWarn {
		r.Warnings++
	}
	r.SuccessRate = float64(r.Passed) / float64(r.TotalTests)
}

// Passing reports whether the site passed: zero failed or errored checks.
func (r *SiteResult) Passing() bool { return r.Failed == 0 }

// RunSummary is the aggregated result of one run across all selected sites.
// It exists in memory for the duration of the run and is persisted through
// the report writers afterward.
type RunSummary struct {
	Timestamp         time.Time    `json:"timestamp"`
	DurationSeconds   float64      `json:"duration_seconds"`
	TotalSites        int          `json:"total_sites"`
	SitesPassed       int          `json:"sites_passed"`
	SitesFailed       int          `json:"sites_failed"`
	SitesWithWarnings int          `json:"sites_with_warnings"`
	TotalTests        int          `json:"total_tests"`
	TotalPassed       int          `json:"total_passed"`
	TotalFailed       int          `json:"total_failed"`
	TotalWarnings     int          `json:"total_warnings"`
	Sites             []SiteResult `json:"sites"`
}

// Summarize rolls per-site results into a run-level summary. The Sites slice
// keeps the order it was given, so callers that fan out can merge partial
// results by input index before calling this.
func Summarize(sites []SiteResult, started, ended time.Time) RunSummary {
	s := RunSummary{
		Timestamp:       ended.UTC(),
		DurationSeconds: ended.Sub(started).Seconds(),
		TotalSites:      len(sites),
		Sites:           sites,
	}
	for i := range sites {
		sr := &sites[i]
		if sr.Passing() {
			s.SitesPassed++
		} else {
			s.SitesFailed++
		}
		if sr.Warnings > 0 {
			s.SitesWithWarnings++
		}
		s.TotalTests += sr.TotalTests
		s.TotalPassed += sr.Passed
		s.TotalFailed += sr.Failed
		s.TotalWarnings += sr.Warnings
	}
	return s
}

// SuccessRate across all checks in the run; 0 when nothing ran.
func (s *RunSummary) SuccessRate() float64 {
	if s.TotalTests == 0 {
		return 0
	}
	return float64(s.TotalPassed) / float64(s.TotalTests)
}

// FailingSites returns the sites with failed checks, most failures first,
// name as tie-break.
func (s *RunSummary) FailingSites() []SiteResult {
	var out []SiteResult
	for _, sr := range s.Sites {
		if !sr.Passing() {
			out = append(out, sr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Failed != out[j].Failed {
			return out[i].Failed > out[j].Failed
		}
		return out[i].SiteName < out[j].SiteName
	})
	return out
}
