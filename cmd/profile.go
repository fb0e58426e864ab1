package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/dataexplorer/internal/report"
	"github.com/KaramelBytes/dataexplorer/internal/utils"
	"github.com/spf13/cobra"
)

var (
	profOutDir   string
	profTitle    string
	profFull     bool
	profNoPDF    bool
	profMarkdown bool
	profJSON     bool
)

var profileCmd = &cobra.Command{
	Use:   "profile <dataset|file>",
	Short: "Profile a built-in dataset or a CSV/Excel file and export the report",
	Long: `Profile loads the dataset, computes the profiling report and writes
<dataset>_profiling.html (and .pdf when wkhtmltopdf is available) to --out-dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *currentConfig()
		if profTitle != "" {
			c.ReportTitle = profTitle
		}
		if profFull {
			c.Minimal = false
		}
		if profNoPDF {
			c.PDFEnabled = false
		}
		sh := newShell(&c)
		if err := openSource(cmd.Context(), sh, args[0]); err != nil {
			printMessages(sh)
			return err
		}
		err := sh.Generate(cmd.Context())
		printMessages(sh)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(profOutDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		for _, kind := range []string{"html", "pdf"} {
			if !sh.HasArtifact(kind) {
				continue
			}
			a, err := sh.TakeArtifact(kind)
			if err != nil {
				return err
			}
			path := filepath.Join(profOutDir, a.Filename)
			if err := utils.SafeWriteFile(path, a.Data); err != nil {
				return fmt.Errorf("write %s: %w", kind, err)
			}
			fmt.Printf("✓ Wrote %s report to %s\n", kind, path)
		}
		p := sh.Profile()
		if profJSON {
			b, err := utils.PrettyJSON(p)
			if err != nil {
				return err
			}
			path := filepath.Join(profOutDir, report.Filename(p.Dataset, "json"))
			if err := utils.SafeWriteFile(path, b); err != nil {
				return fmt.Errorf("write json: %w", err)
			}
			fmt.Printf("✓ Wrote profile to %s\n", path)
		}
		if profMarkdown {
			fmt.Fprint(cmd.OutOrStdout(), report.Markdown(p))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profOutDir, "out-dir", "o", ".", "directory for exported reports")
	profileCmd.Flags().StringVar(&profTitle, "title", "", "report title (default from config)")
	profileCmd.Flags().BoolVar(&profFull, "full", false, "full profile (adds Spearman, lifts the correlation column cap)")
	profileCmd.Flags().BoolVar(&profNoPDF, "no-pdf", false, "skip PDF export")
	profileCmd.Flags().BoolVar(&profMarkdown, "markdown", false, "print a Markdown summary to stdout")
	profileCmd.Flags().BoolVar(&profJSON, "json", false, "also write the profile as JSON")
}
