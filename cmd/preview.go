package cmd

import (
	"fmt"

	"github.com/KaramelBytes/dataexplorer/internal/report"
	"github.com/spf13/cobra"
)

var previewRows int

var previewCmd = &cobra.Command{
	Use:   "preview <dataset|file>",
	Short: "Print the first rows of a built-in dataset or a CSV/Excel file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *currentConfig()
		if previewRows > 0 {
			c.PreviewRows = previewRows
		}
		sh := newShell(&c)
		err := openSource(cmd.Context(), sh, args[0])
		printMessages(sh)
		if err != nil {
			return err
		}
		ds := sh.Dataset()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d rows x %d columns\n\n", ds.Name, ds.NumRows(), ds.NumCols())
		fmt.Fprint(out, report.PreviewMarkdown(ds.Columns, sh.Preview()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", 0, "number of rows to show (default from config, 10)")
}
