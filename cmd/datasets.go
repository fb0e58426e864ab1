package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/utils"
	"github.com/spf13/cobra"
)

var dsJSON bool

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List built-in sample datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dsJSON {
			b, err := utils.PrettyJSON(dataset.Catalog)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSHAPE\tDESCRIPTION")
		for _, b := range dataset.Catalog {
			fmt.Fprintf(tw, "%s\t%dx%d\t%s\n", b.Name, b.Rows, b.Cols, b.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if debug {
			fmt.Fprintf(os.Stderr, "[debug] source: %s\n", currentConfig().DatasetsBaseURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.Flags().BoolVar(&dsJSON, "json", false, "print the catalog as JSON")
}
