// Package web serves the single-page explorer over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/shell"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Server routes browser requests to per-session shells.
type Server struct {
	router    *mux.Router
	sessions  *sessionStore
	maxUpload int64
	logger    *log.Logger
}

// New returns a Server creating one Shell per browser session with newShell.
// maxUpload bounds request bodies on upload; 0 disables the limit.
func New(newShell func() *shell.Shell, maxUpload int64, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		router:    mux.NewRouter(),
		sessions:  newSessionStore(newShell),
		maxUpload: maxUpload,
		logger:    logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/", s.withSession(s.handleIndex)).Methods(http.MethodGet)
	s.router.HandleFunc("/dataset", s.withSession(s.handleDataset)).Methods(http.MethodPost)
	s.router.HandleFunc("/report", s.withSession(s.handleGenerate)).Methods(http.MethodPost)
	s.router.HandleFunc("/report/view", s.withSession(s.handleView)).Methods(http.MethodGet)
	s.router.HandleFunc("/download/{kind:html|pdf}", s.withSession(s.handleDownload)).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sh *shell.Shell)

// withSession resolves the caller's session and holds its lock for the whole request.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.get(w, r)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		h(w, r, sess.shell)
	}
}

type pageData struct {
	Datasets   []dataset.Builtin
	NoneOption string
	Selection  string
	State      string
	Messages   []shell.Message
	Dataset    *dataset.Dataset
	Preview    [][]string
	HasReport  bool
	HasHTML    bool
	HasPDF     bool
	Accept     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	data := pageData{
		Datasets:   dataset.Catalog,
		NoneOption: shell.NoneOption,
		Selection:  sh.Selection(),
		State:      sh.State().String(),
		Dataset:    sh.Dataset(),
		Preview:    sh.Preview(),
		HasHTML:    sh.HasArtifact("html"),
		HasPDF:     sh.HasArtifact("pdf"),
		Accept:     ".csv,.tsv,.xlsx,.xls",
	}
	_, data.HasReport = sh.ReportHTML()
	// messages are shown once
	data.Messages = sh.Messages()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Printf("❌ render page: %v", err)
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			sh.Notify(shell.LevelError, fmt.Sprintf("Could not read the file: %v", dataset.ErrTooLarge))
		} else {
			sh.Notify(shell.LevelError, fmt.Sprintf("Could not read the form: %v", err))
		}
		s.logger.Printf("⚠️ dataset form rejected: %v", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	var up *shell.Upload
	file, hdr, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		if hdr.Filename != "" {
			up = &shell.Upload{Filename: hdr.Filename, Body: file}
		}
	}
	if err := sh.Apply(r.Context(), r.FormValue("builtin"), up); err != nil {
		s.logger.Printf("⚠️ dataset not loaded: %v", err)
	} else if ds := sh.Dataset(); ds != nil {
		s.logger.Printf("✅ dataset %s loaded (%dx%d)", ds.Name, ds.NumRows(), ds.NumCols())
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	if err := sh.Generate(r.Context()); err != nil {
		s.logger.Printf("⚠️ report not generated: %v", err)
	} else {
		s.logger.Printf("✅ report generated for %s", sh.Profile().Dataset)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	html, ok := sh.ReportHTML()
	if !ok {
		http.Error(w, "no report available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, sh *shell.Shell) {
	kind := mux.Vars(r)["kind"]
	a, err := sh.TakeArtifact(kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", a.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(a.Data)))
	_, _ = w.Write(a.Data)
	s.logger.Printf("📥 %s downloaded", a.Filename)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "sessions": s.sessions.len()})
}
