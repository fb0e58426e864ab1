package shell

import (
	"fmt"

	"github.com/KaramelBytes/dataexplorer/internal/report"
)

// Artifact is a downloadable export.
type Artifact struct {
	Filename string
	MIME     string
	Data     []byte
}

// HasArtifact reports whether kind ("html" or "pdf") is available for download.
func (s *Shell) HasArtifact(kind string) bool {
	a := s.artifacts
	if a == nil {
		return false
	}
	switch kind {
	case "html":
		return a.HTML != ""
	case "pdf":
		return len(a.PDF) > 0
	}
	return false
}

// ReportHTML returns the rendered report, if any, without releasing it.
func (s *Shell) ReportHTML() (string, bool) {
	if s.artifacts == nil || s.artifacts.HTML == "" {
		return "", false
	}
	return s.artifacts.HTML, true
}

// TakeArtifact hands out an export once and releases it from the session.
func (s *Shell) TakeArtifact(kind string) (Artifact, error) {
	if !s.HasArtifact(kind) {
		return Artifact{}, fmt.Errorf("no %s report available", kind)
	}
	a := s.artifacts
	var out Artifact
	switch kind {
	case "html":
		out = Artifact{Filename: report.Filename(a.Dataset, "html"), MIME: report.MIMEHTML, Data: []byte(a.HTML)}
		a.HTML = ""
	case "pdf":
		out = Artifact{Filename: report.Filename(a.Dataset, "pdf"), MIME: report.MIMEPDF, Data: a.PDF}
		a.PDF = nil
	}
	return out, nil
}
