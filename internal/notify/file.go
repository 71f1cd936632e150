package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// File appends rendered messages to a local file. Last resort in the chain:
// a run on a locked-down agent still leaves a trace next to the reports.
type File struct {
	Path string
}

func NewFile(path string) *File {
	if path == "" {
		return nil
	}
	return &File{Path: path}
}

func (f *File) Send(ctx context.Context, m Message) error {
	if f == nil || f.Path == "" {
		return errors.New("file notifier disabled")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", time.Now().UTC().Format(time.RFC3339), m.Title)
	if m.Text != "" {
		b.WriteString(m.Text + "\n")
	}
	for _, fld := range m.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", fld.Title, fld.Value)
	}
	if m.Footer != "" {
		b.WriteString(m.Footer + "\n")
	}
	b.WriteString("\n")

	out, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.WriteString(b.String())
	return err
}
