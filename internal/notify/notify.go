package notify

import (
	"context"
	"errors"

	"go.uber.org/multierr"
)

// Field is one short labeled value rendered by notifiers that support
// structured layouts.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Message is one run-status notification, transport-agnostic.
type Message struct {
	Title  string  `json:"title"`
	Text   string  `json:"text"`
	Color  string  `json:"color"` // good | warning | danger
	Link   string  `json:"link,omitempty"`
	Fields []Field `json:"fields,omitempty"`
	Footer string  `json:"footer,omitempty"`
}

// Notifier delivers a status message to one destination.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// Chain tries each notifier in order and stops at the first success. It
// returns an error only when every notifier failed; callers log that and
// move on, since delivery failure must never fail the run.
type Chain []Notifier

func (c Chain) Send(ctx context.Context, m Message) error {
	var errs error
	attempted := false
	for _, n := range c {
		if n == nil {
			continue
		}
		err := n.Send(ctx, m)
		if err == nil {
			return nil
		}
		attempted = true
		errs = multierr.Append(errs, err)
	}
	if !attempted {
		return errors.New("notify: no notifiers configured")
	}
	return errs
}
