package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cfgpkg "github.com/KaramelBytes/dataexplorer/internal/config"
	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/profile"
	"github.com/KaramelBytes/dataexplorer/internal/report"
	"github.com/KaramelBytes/dataexplorer/internal/shell"
)

func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		d := cfgpkg.Defaults()
		cfg = &d
	}
	return cfg
}

func newProvider(c *cfgpkg.Global) *dataset.HTTPProvider {
	p := dataset.NewHTTPProvider(c.DatasetsBaseURL, time.Duration(c.HTTPTimeoutSec)*time.Second)
	p.Warn = func(s string) { fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", s) }
	return p
}

func newRenderer(c *cfgpkg.Global) report.Renderer {
	if !c.PDFEnabled {
		return nil
	}
	return &report.Wkhtmltopdf{Path: c.WkhtmltopdfPath}
}

func profileOptions(c *cfgpkg.Global) profile.Options {
	opt := profile.DefaultOptions()
	if c.ReportTitle != "" {
		opt.Title = c.ReportTitle
	}
	opt.Minimal = c.Minimal
	return opt
}

func newShell(c *cfgpkg.Global) *shell.Shell {
	return shell.New(shell.Config{
		Provider:    newProvider(c),
		Renderer:    newRenderer(c),
		Options:     profileOptions(c),
		PreviewRows: c.PreviewRows,
		UploadLabel: c.UploadLabel,
	})
}

// openSource loads arg into sh: a catalog name selects the built-in dataset,
// anything else is read as a local file.
func openSource(ctx context.Context, sh *shell.Shell, arg string) error {
	if _, ok := dataset.LookupBuiltin(arg); ok {
		return sh.Select(ctx, arg)
	}
	f, err := os.Open(arg)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(arg), err)
	}
	defer f.Close()
	return sh.Upload(filepath.Base(arg), f)
}

// printMessages drains shell messages to stderr using the CLI's prefixes.
func printMessages(sh *shell.Shell) {
	for _, m := range sh.Messages() {
		switch m.Level {
		case shell.LevelSuccess:
			fmt.Fprintf(os.Stderr, "✓ %s\n", m.Text)
		case shell.LevelWarning:
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", m.Text)
		case shell.LevelError:
			fmt.Fprintf(os.Stderr, "✗ %s\n", m.Text)
		default:
			fmt.Fprintf(os.Stderr, "%s\n", m.Text)
		}
	}
}
