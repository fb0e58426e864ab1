package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/dataexplorer/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set DataExplorer configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("addr: %s\n", cfg.Addr)
		fmt.Printf("max_upload_mb: %d\n", cfg.MaxUploadMB)
		fmt.Printf("datasets_base_url: %s\n", cfg.DatasetsBaseURL)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Printf("preview_rows: %d\n", cfg.PreviewRows)
		fmt.Printf("report_title: %s\n", cfg.ReportTitle)
		fmt.Printf("minimal: %v\n", cfg.Minimal)
		fmt.Printf("upload_label: %s\n", cfg.UploadLabel)
		fmt.Printf("pdf_enabled: %v\n", cfg.PDFEnabled)
		if cfg.WkhtmltopdfPath != "" {
			fmt.Printf("wkhtmltopdf_path: %s\n", cfg.WkhtmltopdfPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "addr":
			cfg.Addr = val
		case "datasets_base_url":
			cfg.DatasetsBaseURL = val
		case "report_title":
			cfg.ReportTitle = val
		case "upload_label":
			if val == "" {
				return fmt.Errorf("upload_label cannot be empty")
			}
			cfg.UploadLabel = val
		case "wkhtmltopdf_path":
			cfg.WkhtmltopdfPath = val
		case "max_upload_mb", "http_timeout_sec", "preview_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			switch key {
			case "max_upload_mb":
				cfg.MaxUploadMB = i
			case "http_timeout_sec":
				cfg.HTTPTimeoutSec = i
			default:
				cfg.PreviewRows = i
			}
		case "minimal", "pdf_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %w", key, err)
			}
			if key == "minimal" {
				cfg.Minimal = b
			} else {
				cfg.PDFEnabled = b
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
