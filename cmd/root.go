package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/dataexplorer/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP flags (override config if set)
	flagHTTPTimeoutSec int
	flagBaseURL        string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "dataexplorer",
	Short: "DataExplorer: preview and profile tabular datasets",
	Long: `DataExplorer loads a built-in sample dataset or a CSV/Excel file, previews it and
generates a statistical profiling report exportable as HTML or PDF. Run "dataexplorer serve"
for the interactive browser shell.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataexplorer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "timeout in seconds for built-in dataset downloads (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "base URL of the built-in dataset host (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Defaults()
		c = &d
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("base-url") && flagBaseURL != "" {
		cfg.DatasetsBaseURL = flagBaseURL
	}
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] config: base_url=%s timeout=%ds minimal=%v pdf=%v\n",
			cfg.DatasetsBaseURL, cfg.HTTPTimeoutSec, cfg.Minimal, cfg.PDFEnabled)
	}
}
