package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

//go:embed report.tmpl
var reportTmpl string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"bar":   func(v float64) string { return fmt.Sprintf("%.0f", v*100) },
	"secs":  func(v float64) string { return fmt.Sprintf("%.1fs", v) },
	"badge": badgeClass,
}).Parse(reportTmpl))

// WriteHTML renders the dashboard view of the summary and returns its path.
// The page is a pure presentation of the JSON data, nothing independent.
func (w *Writer) WriteHTML(s domain.RunSummary) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(w.Dir, HTMLFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report page: %w", err)
	}
	defer f.Close()
	if err := RenderHTML(f, s); err != nil {
		return "", fmt.Errorf("render report page: %w", err)
	}
	return path, nil
}

// RenderHTML writes the dashboard to any writer; the API server reuses it.
func RenderHTML(w io.Writer, s domain.RunSummary) error {
	return tmpl.Execute(w, newView(s))
}

type htmlView struct {
	domain.RunSummary
	Generated   string
	OverallRate float64
	Sorted      []domain.SiteResult
}

func newView(s domain.RunSummary) htmlView {
	sorted := make([]domain.SiteResult, len(s.Sites))
	copy(sorted, s.Sites)
	// Best success rate first, name as tie-break.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SuccessRate != sorted[j].SuccessRate {
			return sorted[i].SuccessRate > sorted[j].SuccessRate
		}
		return sorted[i].SiteName < sorted[j].SiteName
	})
	return htmlView{
		RunSummary:  s,
		Generated:   s.Timestamp.Format(time.RFC1123),
		OverallRate: s.SuccessRate(),
		Sorted:      sorted,
	}
}

func badgeClass(st domain.Status) string {
	switch st {
	case domain.StatusPass:
		return "test-pass"
	case domain.StatusWarn:
		return "test-warning"
	default:
		return "test-fail"
	}
}
