package checks

import (
	"context"

	"github.com/hamed0406/sitesmoke/internal/browser"
	"github.com/hamed0406/sitesmoke/internal/domain"
)

// detailLimit bounds check detail text, matching the report column width.
const detailLimit = 100

// Check is one atomic test performed against a loaded page.
type Check interface {
	Name() string
	Run(ctx context.Context, page browser.Page) domain.CheckResult
}

// Fixed returns the standard homepage checklist in report order. Every
// successfully loaded page gets the full list; there is no partial run.
func Fixed() []Check {
	return []Check{
		TitleCheck{},
		NavigationCheck{},
		SearchCheck{},
		ContentCheck{},
		FooterCheck{},
		ViewportCheck{},
	}
}

func pass(name, details string) domain.CheckResult {
	return domain.CheckResult{Test: name, Status: domain.StatusPass, Details: details}
}

func warn(name, details string) domain.CheckResult {
	return domain.CheckResult{Test: name, Status: domain.StatusWarn, Details: details}
}

func fail(name, details string) domain.CheckResult {
	return domain.CheckResult{Test: name, Status: domain.StatusFail, Details: domain.Clip(details, detailLimit)}
}

func failErr(name string, err error) domain.CheckResult {
	return fail(name, err.Error())
}
