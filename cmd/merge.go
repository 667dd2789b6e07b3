package cmd

import (
	"github.com/keoughkath/ExcisionFinder/internal/batch"
	"github.com/spf13/cobra"
)

// mergeCmd concatenates per-region batch results into one table
var mergeCmd = &cobra.Command{
	Use:                        "merge",
	Short:                      "Merge per-region batch results into one table",
	Run:                        batch.MergeCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  excisionfinder merge --dir results/ --out chr7_results.tsv",
	Long: `Concatenate the per-region summary tables a batch run wrote into a
single table: the header once, then every region's rows in region order.`,
}

// set flags
func init() {
	mergeCmd.Flags().StringP("dir", "d", "", "batch output directory to merge")
	mergeCmd.Flags().StringP("out", "o", "", "path to write the merged table to")

	RootCmd.AddCommand(mergeCmd)
}
