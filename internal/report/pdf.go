package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

var errEmptyPDF = errors.New("renderer returned no data")

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Wkhtmltopdf renders through the wkhtmltopdf binary.
type Wkhtmltopdf struct {
	// Path to the binary; empty searches PATH and WKHTMLTOPDF_PATH.
	Path string
	// PageSize such as "A4" or "Letter"; empty keeps the renderer default.
	PageSize string
}

// the binary path is package-global in go-wkhtmltopdf
var pathMu sync.Mutex

func (w *Wkhtmltopdf) newGenerator() (*wkhtmltopdf.PDFGenerator, error) {
	pathMu.Lock()
	defer pathMu.Unlock()
	wkhtmltopdf.SetPath(w.Path)
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	return pdfg, nil
}

// Render implements Renderer.
func (w *Wkhtmltopdf) Render(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := w.newGenerator()
	if err != nil {
		return nil, err
	}
	pdfg.Quiet.Set(true)
	if w.PageSize != "" {
		pdfg.PageSize.Set(w.PageSize)
	}
	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)
	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return pdfg.Bytes(), nil
}
