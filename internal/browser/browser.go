package browser

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultUserAgent is what the CI runners present to the sites under test.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Page is one loaded document the checks inspect.
type Page interface {
	Title() string
	// Count returns how many elements match the CSS selector group.
	Count(ctx context.Context, selector string) (int, error)
	LoadTime() time.Duration
}

// Session owns one browser (or plain HTTP) context used to load pages. A
// session is never shared between workers, and Close must be safe to call
// after a failed Open.
type Session interface {
	Open(ctx context.Context, url string) (Page, error)
	Close()
}

// Factory hands out a fresh Session per site.
type Factory interface {
	NewSession(ctx context.Context) (Session, error)
}

// NewFactory selects a backend by name. Unrecognized names fall back to
// Chrome with a warning rather than failing the run over a typo.
func NewFactory(kind string, pageTimeout time.Duration, log *zap.Logger) Factory {
	switch kind {
	case "http":
		return NewHTTPFactory(pageTimeout)
	case "", "chrome":
		return NewChromeFactory(pageTimeout)
	default:
		if log != nil {
			log.Warn("unknown_browser_backend",
				zap.String("browser", kind),
				zap.String("using", "chrome"),
			)
		}
		return NewChromeFactory(pageTimeout)
	}
}
