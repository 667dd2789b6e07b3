package cmd

import (
	"github.com/keoughkath/ExcisionFinder/internal/batch"
	"github.com/keoughkath/ExcisionFinder/internal/bed"
	"github.com/spf13/cobra"
)

// batchCmd extracts het variants per region via the external extractor
var batchCmd = &cobra.Command{
	Use:                        "batch",
	Short:                      "Extract het variants for each region of a BED file",
	Run:                        batch.RunCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  excisionfinder batch --bed genes.bed --bcf wtc.bcf --out results/",
	Long: `Extract heterozygous variant calls for regions of a BED file by
shelling out to bcftools (view -g het -r <locus> -H).

Inside a grid-engine array job (` + bed.TaskEnv + ` set, or --task given) only that
task's region is extracted, so the BED file can be fanned out across the
cluster. Run without a task index, every region is extracted here with
--workers processes at once.

Each region gets two files under --out: <label>.gens.tsv with the raw
extracted calls and <label>.tsv with per-variant het counts. The sample
column order is saved once to samples.txt.`,
}

// set flags
func init() {
	batchCmd.Flags().StringP("bed", "b", "", "path to a BED file of regions")
	batchCmd.Flags().StringP("bcf", "f", "", "path to the BCF/VCF with phased genotypes")
	batchCmd.Flags().StringP("out", "o", "", "directory to write per-region results to")
	batchCmd.Flags().IntP("task", "t", 0, "1-based array task index (default "+bed.TaskEnv+")")
	batchCmd.Flags().IntP("workers", "w", 0, "regions to extract at once outside an array job")

	RootCmd.AddCommand(batchCmd)
}
