package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// HTTP server
	Addr        string `mapstructure:"addr" yaml:"addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// Built-in dataset provider
	DatasetsBaseURL string `mapstructure:"datasets_base_url" yaml:"datasets_base_url"`
	HTTPTimeoutSec  int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	// Preview and profiling
	PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	ReportTitle string `mapstructure:"report_title" yaml:"report_title"`
	Minimal     bool   `mapstructure:"minimal" yaml:"minimal"`
	UploadLabel string `mapstructure:"upload_label" yaml:"upload_label"`

	// PDF export via wkhtmltopdf
	PDFEnabled      bool   `mapstructure:"pdf_enabled" yaml:"pdf_enabled"`
	WkhtmltopdfPath string `mapstructure:"wkhtmltopdf_path" yaml:"wkhtmltopdf_path"`
}

// Defaults returns the built-in configuration values.
func Defaults() Global {
	return Global{
		Addr:            ":8501",
		MaxUploadMB:     200,
		DatasetsBaseURL: dataset.DefaultBaseURL,
		HTTPTimeoutSec:  60,
		PreviewRows:     10,
		ReportTitle:     "Data Profiling",
		Minimal:         true,
		UploadLabel:     "uploaded_data",
		PDFEnabled:      true,
	}
}

// DefaultPath returns ~/.dataexplorer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dataexplorer", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dataexplorer/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAEXPLORER")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("max_upload_mb", d.MaxUploadMB)
	v.SetDefault("datasets_base_url", d.DatasetsBaseURL)
	v.SetDefault("http_timeout_sec", d.HTTPTimeoutSec)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("report_title", d.ReportTitle)
	v.SetDefault("minimal", d.Minimal)
	v.SetDefault("upload_label", d.UploadLabel)
	v.SetDefault("pdf_enabled", d.PDFEnabled)
	v.SetDefault("wkhtmltopdf_path", d.WkhtmltopdfPath)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.PreviewRows <= 0 {
		c.PreviewRows = d.PreviewRows
	}
	if c.HTTPTimeoutSec <= 0 {
		c.HTTPTimeoutSec = d.HTTPTimeoutSec
	}
	return &c, nil
}
