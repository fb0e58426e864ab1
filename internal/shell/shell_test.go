package shell_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/report"
	"github.com/KaramelBytes/dataexplorer/internal/shell"
)

type fakeProvider struct {
	calls int
}

func (f *fakeProvider) Fetch(_ context.Context, name string) (*dataset.Dataset, error) {
	f.calls++
	switch name {
	case "iris":
		ds := &dataset.Dataset{Name: name, Source: dataset.SourceBuiltin, Columns: []string{"sepal_length", "species"}}
		for i := 0; i < 15; i++ {
			sp := "setosa"
			if i%3 == 0 {
				sp = "virginica"
			}
			ds.Rows = append(ds.Rows, []string{strings.Repeat("1", i%4+1), sp})
		}
		return ds, nil
	case "hollow":
		return &dataset.Dataset{Name: name, Columns: []string{"a"}}, nil
	}
	return nil, &dataset.LoadError{Source: name, Err: dataset.ErrUnreachable}
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, string) ([]byte, error) {
	return nil, errors.New("wkhtmltopdf not found")
}

type okRenderer struct{}

func (okRenderer) Render(context.Context, string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func newShell(p *fakeProvider, r report.Renderer) *shell.Shell {
	return shell.New(shell.Config{Provider: p, Renderer: r})
}

func lastMessage(t *testing.T, s *shell.Shell) shell.Message {
	t.Helper()
	msgs := s.Messages()
	if len(msgs) == 0 {
		t.Fatalf("expected a message")
	}
	return msgs[len(msgs)-1]
}

func TestShell_SelectLoadsAndClears(t *testing.T) {
	s := newShell(&fakeProvider{}, nil)
	if s.State() != shell.Idle {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.Select(context.Background(), "iris"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.State() != shell.Loaded || s.Selection() != "iris" {
		t.Fatalf("state = %s selection = %q", s.State(), s.Selection())
	}
	if m := lastMessage(t, s); m.Level != shell.LevelSuccess || !strings.Contains(m.Text, "iris") {
		t.Fatalf("message = %+v", m)
	}
	if got := len(s.Preview()); got != 10 {
		t.Fatalf("preview rows = %d, want 10", got)
	}
	if len(s.Messages()) != 0 {
		t.Fatalf("messages should be drained")
	}
	if err := s.Select(context.Background(), shell.NoneOption); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.State() != shell.Idle || s.Dataset() != nil || s.Preview() != nil {
		t.Fatalf("expected idle session after clearing")
	}
}

func TestShell_FailedLoadKeepsPriorState(t *testing.T) {
	s := newShell(&fakeProvider{}, nil)
	_ = s.Select(context.Background(), "iris")
	before := s.Dataset()
	s.Messages()

	err := s.Select(context.Background(), "titanic")
	var le *dataset.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if s.State() != shell.Loaded || s.Dataset() != before || s.Selection() != "iris" {
		t.Fatalf("failed load must keep the prior dataset")
	}
	if m := lastMessage(t, s); m.Level != shell.LevelError {
		t.Fatalf("message = %+v", m)
	}

	if err := s.Select(context.Background(), "hollow"); !errors.Is(err, dataset.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if s.Dataset() != before {
		t.Fatalf("empty dataset must not replace the active one")
	}
	if m := lastMessage(t, s); m.Level != shell.LevelWarning {
		t.Fatalf("message = %+v", m)
	}

	if err := s.Upload("broken.csv", strings.NewReader("a,b\n1,2,3\n")); err == nil {
		t.Fatalf("expected upload error")
	}
	if s.Dataset() != before {
		t.Fatalf("failed upload must keep the prior dataset")
	}
}

func TestShell_UploadOverridesSelection(t *testing.T) {
	p := &fakeProvider{}
	s := newShell(p, nil)
	up := &shell.Upload{Filename: "mine.csv", Body: strings.NewReader("x,y\n1,2\n3,4\n")}
	if err := s.Apply(context.Background(), "iris", up); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("built-in selection must be ignored when a file is uploaded")
	}
	ds := s.Dataset()
	if ds.Name != shell.DefaultUploadLabel || ds.Source != dataset.SourceUpload || ds.NumRows() != 2 {
		t.Fatalf("dataset = %+v", ds)
	}
	if err := s.Apply(context.Background(), "iris", nil); err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if p.calls != 1 || s.Dataset().Name != "iris" {
		t.Fatalf("selection without upload should load the built-in")
	}
}

func TestShell_GenerateRequiresDataset(t *testing.T) {
	s := newShell(&fakeProvider{}, nil)
	if err := s.Generate(context.Background()); !errors.Is(err, shell.ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset, got %v", err)
	}
	if s.State() != shell.Idle {
		t.Fatalf("state = %s", s.State())
	}
}

func TestShell_GenerateAndTakeArtifacts(t *testing.T) {
	s := newShell(&fakeProvider{}, okRenderer{})
	_ = s.Select(context.Background(), "iris")
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.State() != shell.Profiled || s.Profile() == nil {
		t.Fatalf("state = %s", s.State())
	}
	if html, ok := s.ReportHTML(); !ok || !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Fatalf("report html missing")
	}
	a, err := s.TakeArtifact("html")
	if err != nil || a.Filename != "iris_profiling.html" || a.MIME != report.MIMEHTML || len(a.Data) == 0 {
		t.Fatalf("html artifact = %+v, %v", a, err)
	}
	if _, err := s.TakeArtifact("html"); err == nil {
		t.Fatalf("artifact should be released after download")
	}
	pdf, err := s.TakeArtifact("pdf")
	if err != nil || pdf.Filename != "iris_profiling.pdf" || string(pdf.Data) != "%PDF-1.4" {
		t.Fatalf("pdf artifact = %+v, %v", pdf, err)
	}
	if _, err := s.TakeArtifact("csv"); err == nil {
		t.Fatalf("unknown kind should fail")
	}
}

func TestShell_PDFFailureIsWarning(t *testing.T) {
	s := newShell(&fakeProvider{}, failingRenderer{})
	_ = s.Select(context.Background(), "iris")
	s.Messages()
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("pdf failure must not fail generation: %v", err)
	}
	var warned bool
	for _, m := range s.Messages() {
		if m.Level == shell.LevelWarning && strings.Contains(m.Text, "PDF conversion failed") {
			warned = true
		}
	}
	if !warned || s.HasArtifact("pdf") || !s.HasArtifact("html") {
		t.Fatalf("expected html only with a pdf warning")
	}
}

func TestShell_ReloadDropsArtifacts(t *testing.T) {
	s := newShell(&fakeProvider{}, nil)
	_ = s.Select(context.Background(), "iris")
	_ = s.Generate(context.Background())
	up := &shell.Upload{Filename: "next.csv", Body: strings.NewReader("a\n1\n")}
	if err := s.Apply(context.Background(), "", up); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.State() != shell.Loaded || s.HasArtifact("html") || s.Profile() != nil {
		t.Fatalf("a new dataset must clear the previous report")
	}
}
