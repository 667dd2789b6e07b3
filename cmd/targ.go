package cmd

import (
	"github.com/keoughkath/ExcisionFinder/internal/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// targCmd ranks per-sample targetability of a gene from the scan flags
var targCmd = &cobra.Command{
	Use:                        "targ",
	Short:                      "Rank per-sample targetability of a gene",
	Run:                        scan.TargCmd,
	SuggestionsMinimumDistance: 2,
	Example: `  excisionfinder targ --gens results/BRCA1.gens.tsv --samples results/samples.txt \
    --scan BRCA1.scan.tsv --annots gene_annots.tsv --gene BRCA1`,
	Long: `Decide, per sample, whether a gene is targetable by each Cas variety:
the sample needs a heterozygous variant in the gene's coding region whose
scan flags mark it as an allele-specific cut site.

Writes one row per sample with >= 1 het site: targ_X per enzyme and a
targ_all column that is true when any assessed enzyme works. With --strict,
only variants in a PAM count (near-PAM variants are ignored).

With --pairs, rank pair excision instead: a sample passes for an enzyme
when two of its het sites are allele-specific cut sites and excising the
span between them would disrupt the gene's coding sequence.`,
}

// set flags
func init() {
	targCmd.Flags().StringP("gens", "g", "", "path to a region's extracted genotypes (.gens.tsv)")
	targCmd.Flags().StringP("samples", "s", "", "path to the batch run's samples.txt")
	targCmd.Flags().StringP("scan", "n", "", "path to the region's scan table")
	targCmd.Flags().StringP("annots", "a", "", "path to the gene annotations table")
	targCmd.Flags().String("gene", "", "HUGO symbol of the gene to analyze")
	targCmd.Flags().StringP("out", "o", "", "path to write the targetability table to (default stdout)")
	targCmd.Flags().StringP("cas", "c", "all", "comma separated Cas varieties to evaluate")
	targCmd.Flags().Bool("strict", false, "only count variants in a PAM, not near one")
	targCmd.Flags().Bool("pairs", false, "rank pair excision instead of single cuts")
	targCmd.Flags().IntP("window", "w", 0, "bp of extra sequence around the gene to include")

	viper.BindPFlag("scan.window", targCmd.Flags().Lookup("window"))

	RootCmd.AddCommand(targCmd)
}
