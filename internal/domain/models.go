package domain

import "unicode/utf8"

// Site is one target website under test.
type Site struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Status classifies the outcome of a single check.
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusWarn  Status = "WARN"
	StatusError Status = "ERROR"
)

// Failed reports whether the status counts against the site. WARN is
// non-fatal and tallies as passed.
func (s Status) Failed() bool { return s == StatusFail || s == StatusError }

// CheckResult is the outcome of one check against a site. Immutable once
// recorded.
type CheckResult struct {
	Test    string `json:"test"`
	Status  Status `json:"status"`
	Details string `json:"details"`
}

// Clip bounds detail text so a noisy stack trace or HTML dump cannot bloat
// the report. The cut lands on a rune boundary; a byte-level cut could leave
// invalid UTF-8 that does not survive a JSON round trip.
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
