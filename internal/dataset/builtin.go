package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL hosts the sample datasets as <name>.csv.
const DefaultBaseURL = "https://raw.githubusercontent.com/pycaret/datasets/main/data/common"

// Builtin describes one entry of the built-in sample catalog.
type Builtin struct {
	Name        string
	Description string
	Rows        int
	Cols        int
}

// Catalog is the fixed, ordered set of built-in datasets.
var Catalog = []Builtin{
	{Name: "juice", Description: "Orange juice purchases (Citrus Hill vs Minute Maid)", Rows: 1070, Cols: 19},
	{Name: "titanic", Description: "Titanic passenger survival", Rows: 891, Cols: 12},
	{Name: "diabetes", Description: "Pima Indians diabetes", Rows: 768, Cols: 9},
	{Name: "winequality-red", Description: "Red wine physicochemical quality", Rows: 1599, Cols: 12},
	{Name: "iris", Description: "Iris flower measurements", Rows: 150, Cols: 5},
	{Name: "boston_housing", Description: "Boston housing prices", Rows: 506, Cols: 14},
	{Name: "adult", Description: "Adult census income", Rows: 32561, Cols: 15},
}

// LookupBuiltin returns the catalog entry for name.
func LookupBuiltin(name string) (Builtin, bool) {
	for _, b := range Catalog {
		if b.Name == name {
			return b, true
		}
	}
	return Builtin{}, false
}

// BuiltinNames lists catalog names in display order.
func BuiltinNames() []string {
	out := make([]string, len(Catalog))
	for i, b := range Catalog {
		out[i] = b.Name
	}
	return out
}

// Provider resolves a built-in name to a Dataset.
type Provider interface {
	Fetch(ctx context.Context, name string) (*Dataset, error)
}

// HTTPProvider downloads built-in datasets as CSV from BaseURL.
type HTTPProvider struct {
	BaseURL string
	HTTP    *http.Client
	// Warn, if set, receives non-fatal notes such as a shape that differs from the catalog.
	Warn func(string)
}

// NewHTTPProvider returns a provider with the given base URL and timeout.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPProvider{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{Timeout: timeout}}
}

// Fetch downloads and parses the named dataset. All failures are *LoadError.
func (p *HTTPProvider) Fetch(ctx context.Context, name string) (*Dataset, error) {
	b, ok := LookupBuiltin(name)
	if !ok {
		return nil, &LoadError{Source: name, Err: ErrUnknownDataset}
	}
	url := fmt.Sprintf("%s/%s.csv", p.BaseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("build request: %w", err)}
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("%w: %v", ErrUnreachable, err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &LoadError{Source: name, Err: fmt.Errorf("%w: unexpected status %s: %s", ErrUnreachable, resp.Status, strings.TrimSpace(string(body)))}
	}
	ds, err := ReadCSV(resp.Body, ',')
	if err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, &LoadError{Source: name, Err: err}
		}
		return nil, &LoadError{Source: name, Err: fmt.Errorf("parse %s.csv: %w", name, err)}
	}
	ds.Name = name
	ds.Source = SourceBuiltin
	ds.Filename = name + ".csv"
	if p.Warn != nil && (ds.NumRows() != b.Rows || ds.NumCols() != b.Cols) {
		p.Warn(fmt.Sprintf("%s: got %dx%d, catalog lists %dx%d", name, ds.NumRows(), ds.NumCols(), b.Rows, b.Cols))
	}
	return ds, nil
}
