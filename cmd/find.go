package cmd

import (
	"github.com/spf13/cobra"
)

// findCmd is for finding Cas enzymes by their name.
var findCmd = &cobra.Command{
	Use:                        "find",
	Short:                      "Find Cas enzymes in the registry",
	SuggestionsMinimumDistance: 2,
	Long: `Find Cas enzymes by name.
If there is no exact match, entries containing the name are returned`,
	Aliases: []string{"ls", "list"},
}

// casFindCmd lists the Cas varieties available for scanning. Useful for
// if the user doesn't know which enzymes are available.
var casFindCmd = &cobra.Command{
	Use:                        "cas [name]",
	Short:                      "Find Cas enzymes in the PAM registry",
	Run:                        casDB.FindCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  excisionfinder find cas SaCas9",
	Long: `List the Cas enzymes with the same or a similar name as the argument,
with their PAM and which side of the protospacer the PAM is on.

'excisionfinder find cas' without any arguments logs every enzyme in the registry.`,
	Aliases: []string{"enzyme", "enzymes"},
}

// set flags
func init() {
	findCmd.AddCommand(casFindCmd)

	RootCmd.AddCommand(findCmd)
}
