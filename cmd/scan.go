package cmd

import (
	"github.com/keoughkath/ExcisionFinder/internal/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd flags each variant's relationship to every Cas variety's PAMs
var scanCmd = &cobra.Command{
	Use:                        "scan",
	Short:                      "Flag variants that make, break or sit near a PAM",
	Run:                        scan.ScanCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  excisionfinder scan --fasta hg19.fa --variants results/BRCA1.gens.tsv --cas SpCas9,SaCas9_KKH",
	Long: `Scan the reference sequence around each variant for PAM sites and
write a table of per-enzyme flags: makes_X (the alt allele creates a PAM),
breaks_X (the alt allele destroys one) and var_near_X (the variant sits in
the protospacer of a reference PAM).

Variants come from a 4-column (chrom, pos, ref, alt) table or from the raw
.gens.tsv a batch run saved.`,
}

// set flags
func init() {
	scanCmd.Flags().StringP("fasta", "f", "", "path to the reference FASTA")
	scanCmd.Flags().StringP("variants", "v", "", "path to the variants to scan")
	scanCmd.Flags().StringP("out", "o", "", "path to write the scan table to (default stdout)")
	scanCmd.Flags().StringP("cas", "c", "all", "comma separated Cas varieties to evaluate")
	scanCmd.Flags().IntP("guide-length", "g", 20, "sgRNA guide length in bp")

	viper.BindPFlag("scan.guide-length", scanCmd.Flags().Lookup("guide-length"))

	RootCmd.AddCommand(scanCmd)
}
