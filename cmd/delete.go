package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd is for removing Cas enzymes by their name
var deleteCmd = &cobra.Command{
	Use:                        "delete [cas]",
	Short:                      "Delete a Cas enzyme",
	SuggestionsMinimumDistance: 2,
	Long:                       `Delete a Cas enzyme by name.`,
	Aliases:                    []string{"rm", "remove"},
}

// casDeleteCmd is for deleting enzymes from the registry
var casDeleteCmd = &cobra.Command{
	Use:                        "cas [name]",
	Short:                      "Delete a Cas enzyme from the PAM registry",
	Run:                        casDB.DeleteCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"remove"},
	Example:                    "  excisionfinder delete cas SpCas9_VQR_2",
	Long: `Delete a Cas enzyme from the registry by its name.
If no such enzyme name exists in the registry, an error is logged to stderr.`,
}

// set flags
func init() {
	deleteCmd.AddCommand(casDeleteCmd)

	RootCmd.AddCommand(deleteCmd)
}
