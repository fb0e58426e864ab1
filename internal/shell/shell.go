// Package shell holds the per-session state machine behind the interactive
// explorer: dataset selection or upload, preview, profiling and export.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/profile"
	"github.com/KaramelBytes/dataexplorer/internal/report"
)

// NoneOption is the placeholder entry of the built-in selector.
const NoneOption = "-- none --"

// DefaultUploadLabel names uploaded datasets in download filenames.
const DefaultUploadLabel = "uploaded_data"

// ErrNoDataset is returned by Generate while no dataset is active.
var ErrNoDataset = errors.New("no dataset loaded")

// State is the stable state of a Shell between actions.
type State int

const (
	Idle State = iota
	Loaded
	Profiled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Profiled:
		return "profiled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config wires a Shell to its collaborators.
type Config struct {
	Provider dataset.Provider
	// Load reads uploads; nil uses dataset.Load.
	Load func(filename string, r io.Reader) (*dataset.Dataset, error)
	// Renderer produces PDFs; nil disables PDF export.
	Renderer    report.Renderer
	Options     profile.Options
	PreviewRows int
	UploadLabel string
}

// Upload is a file submitted together with a selection.
type Upload struct {
	Filename string
	Body     io.Reader
}

// Shell is not safe for concurrent use; callers serialize access per session.
type Shell struct {
	cfg       Config
	state     State
	selection string
	data      *dataset.Dataset
	prof      *profile.Profile
	artifacts *report.Artifacts
	messages  []Message
}

// New returns an idle Shell.
func New(cfg Config) *Shell {
	if cfg.Load == nil {
		cfg.Load = dataset.Load
	}
	if cfg.PreviewRows <= 0 {
		cfg.PreviewRows = 10
	}
	if strings.TrimSpace(cfg.UploadLabel) == "" {
		cfg.UploadLabel = DefaultUploadLabel
	}
	cfg.Options = mergeDefaults(cfg.Options)
	return &Shell{cfg: cfg, state: Idle}
}

// mergeDefaults fills zero options from profile.DefaultOptions.
func mergeDefaults(o profile.Options) profile.Options {
	d := profile.DefaultOptions()
	if o == (profile.Options{}) {
		return d
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.TopValues == 0 {
		o.TopValues = d.TopValues
	}
	if o.HistogramBins == 0 {
		o.HistogramBins = d.HistogramBins
	}
	if o.MaxCorrColumns == 0 {
		o.MaxCorrColumns = d.MaxCorrColumns
	}
	if o.SampleRows == 0 {
		o.SampleRows = d.SampleRows
	}
	if o.OutlierThreshold == 0 {
		o.OutlierThreshold = d.OutlierThreshold
	}
	if o.HighCorrelation == 0 {
		o.HighCorrelation = d.HighCorrelation
	}
	return o
}

func (s *Shell) State() State                 { return s.state }
func (s *Shell) Selection() string            { return s.selection }
func (s *Shell) Dataset() *dataset.Dataset    { return s.data }
func (s *Shell) Profile() *profile.Profile    { return s.prof }
func (s *Shell) Artifacts() *report.Artifacts { return s.artifacts }

// Preview returns the leading rows of the active dataset.
func (s *Shell) Preview() [][]string {
	return s.data.Head(s.cfg.PreviewRows)
}

// Select loads the named built-in dataset. An empty name or NoneOption
// clears the session back to Idle.
func (s *Shell) Select(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == NoneOption {
		s.reset()
		return nil
	}
	if s.cfg.Provider == nil {
		err := &dataset.LoadError{Source: name, Err: errors.New("no dataset provider configured")}
		s.addf(LevelError, "Error loading built-in dataset: %v", err)
		return err
	}
	ds, err := s.cfg.Provider.Fetch(ctx, name)
	if err != nil {
		s.addf(LevelError, "Error loading built-in dataset: %v", err)
		return err
	}
	if ds.Empty() {
		s.addf(LevelWarning, "Dataset %s has no rows.", name)
		return &dataset.LoadError{Source: name, Err: dataset.ErrNoData}
	}
	s.activate(ds)
	s.selection = name
	s.addf(LevelSuccess, "Loaded %s dataset.", name)
	return nil
}

// Upload reads an uploaded file and makes it the active dataset.
func (s *Shell) Upload(filename string, r io.Reader) error {
	ds, err := s.cfg.Load(filename, r)
	if err != nil {
		s.addf(LevelError, "Could not read the file: %v", err)
		return err
	}
	if ds.Empty() {
		s.addf(LevelWarning, "%s contains no data rows.", filename)
		return &dataset.LoadError{Source: filename, Err: dataset.ErrNoData}
	}
	ds.Name = s.cfg.UploadLabel
	s.activate(ds)
	s.addf(LevelSuccess, "Uploaded data loaded.")
	return nil
}

// Apply runs one selection cycle. An upload takes precedence over the
// built-in selection submitted with it.
func (s *Shell) Apply(ctx context.Context, name string, up *Upload) error {
	if up != nil && up.Body != nil {
		return s.Upload(up.Filename, up.Body)
	}
	return s.Select(ctx, name)
}

// Generate profiles the active dataset and exports it.
func (s *Shell) Generate(ctx context.Context) error {
	if s.data == nil {
		s.addf(LevelInfo, "Select a built-in dataset or upload a CSV/Excel file to start.")
		return ErrNoDataset
	}
	p, err := profile.Generate(s.data, s.cfg.Options)
	if err != nil {
		s.addf(LevelError, "Profiling failed: %v", err)
		return err
	}
	a, err := report.Export(ctx, p, s.cfg.Renderer)
	if a == nil {
		s.addf(LevelError, "Profiling failed: %v", err)
		return err
	}
	var ee *report.ExportError
	if errors.As(err, &ee) {
		s.addf(LevelWarning, "PDF conversion failed: %v", ee.Err)
	}
	s.prof = p
	s.artifacts = a
	s.state = Profiled
	s.addf(LevelSuccess, "Profiling report for %s is ready.", p.Dataset)
	return nil
}

func (s *Shell) activate(ds *dataset.Dataset) {
	s.data = ds
	s.prof = nil
	s.artifacts = nil
	s.state = Loaded
}

func (s *Shell) reset() {
	s.selection = ""
	s.data = nil
	s.prof = nil
	s.artifacts = nil
	s.state = Idle
}
