package report

import (
	"context"
	"strings"

	"github.com/KaramelBytes/dataexplorer/internal/profile"
)

const (
	MIMEHTML = "text/html; charset=utf-8"
	MIMEPDF  = "application/pdf"
)

// Artifacts are the exported forms of one profile. PDF is nil when the
// renderer was disabled or failed.
type Artifacts struct {
	Dataset string
	HTML    string
	PDF     []byte
}

// Filename returns the download name for the given extension, e.g. iris_profiling.html.
func Filename(dataset, ext string) string {
	name := strings.TrimSpace(dataset)
	if name == "" {
		name = "uploaded_data"
	}
	return name + "_profiling." + strings.TrimPrefix(ext, ".")
}

// Export renders p to HTML and, when r is non-nil, to PDF. A PDF failure is
// returned as an *ExportError alongside usable artifacts; an HTML failure
// returns nil artifacts.
func Export(ctx context.Context, p *profile.Profile, r Renderer) (*Artifacts, error) {
	html, err := RenderHTML(p)
	if err != nil {
		return nil, &ExportError{Format: "html", Err: err}
	}
	a := &Artifacts{Dataset: p.Dataset, HTML: html}
	if r == nil {
		return a, nil
	}
	pdf, err := r.Render(ctx, html)
	if err != nil {
		return a, &ExportError{Format: "pdf", Err: err}
	}
	if len(pdf) == 0 {
		return a, &ExportError{Format: "pdf", Err: errEmptyPDF}
	}
	a.PDF = pdf
	return a, nil
}
