// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	sitesFile := strings.TrimSpace(os.Getenv("SITES_FILE"))
	if sitesFile == "" {
		sitesFile = "sites.yaml"
	}
	reportDir := strings.TrimSpace(os.Getenv("REPORT_DIR"))
	if reportDir == "" {
		reportDir = "reports"
	}
	browser := strings.TrimSpace(os.Getenv("BROWSER"))
	slack := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if _, err := os.Stat(sitesFile); err != nil {
		fail("SITES_FILE " + sitesFile + " is not readable (every run needs a site list).")
	}
	ok("SITES_FILE=" + sitesFile)

	// Report dir must be creatable and writable before a run burns minutes
	// of browser time.
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		fail("REPORT_DIR " + reportDir + " cannot be created: " + err.Error())
	}
	probe := filepath.Join(reportDir, ".preflight")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		fail("REPORT_DIR " + reportDir + " is not writable: " + err.Error())
	}
	_ = os.Remove(probe)
	ok("REPORT_DIR=" + reportDir)

	switch browser {
	case "", "chrome", "http":
		if browser != "" {
			ok("BROWSER=" + browser)
		}
	default:
		warn("BROWSER=" + browser + " is not recognized; falls back to chrome.")
	}

	if slack == "" {
		warn("SLACK_WEBHOOK_URL empty — Slack step of the notification chain is disabled.")
	} else if !strings.HasPrefix(slack, "https://") {
		warn("SLACK_WEBHOOK_URL does not look like an https webhook URL.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	if db == "" {
		warn("DATABASE_URL empty — run history will not be persisted.")
	} else {
		ok("DATABASE_URL present")
	}

	ok("preflight passed")
}
