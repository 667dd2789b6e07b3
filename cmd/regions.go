package cmd

import (
	"github.com/keoughkath/ExcisionFinder/internal/batch"
	"github.com/keoughkath/ExcisionFinder/internal/bed"
	"github.com/spf13/cobra"
)

// regionsCmd prints loci from a BED file of regions, one per line
var regionsCmd = &cobra.Command{
	Use:                        "regions",
	Short:                      "Print loci from a BED file of regions",
	Run:                        batch.RegionsCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  excisionfinder regions --bed genes.bed --task $" + bed.TaskEnv,
	Long: `Print the locus string (chrom:start-end, 1-based inclusive) for regions
in a BED file.

With --task N, or when ` + bed.TaskEnv + ` is set by the cluster scheduler, only the
Nth region's locus is printed (task indexes are 1-based). Without either,
every region's locus is printed.`,
}

// set flags
func init() {
	regionsCmd.Flags().StringP("bed", "b", "", "path to a BED file of regions")
	regionsCmd.Flags().IntP("task", "t", 0, "1-based array task index (default "+bed.TaskEnv+")")

	RootCmd.AddCommand(regionsCmd)
}
