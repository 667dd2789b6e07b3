package cmd

import (
	"github.com/spf13/cobra"
)

// setCmd is for creating or updating a Cas enzyme in the registry
var setCmd = &cobra.Command{
	Use:                        "set [cas]",
	Short:                      "Set a Cas enzyme",
	SuggestionsMinimumDistance: 1,
	Long: `
Create/update a Cas enzyme with its name, PAM and PAM side.
Set enzymes can be passed to the --cas flag of 'excisionfinder scan' and 'excisionfinder targ'`,
	Aliases: []string{"add", "update"},
}

// casSetCmd is for adding a new Cas enzyme to the registry
var casSetCmd = &cobra.Command{
	Use:                        "cas [name] [pam] [side]",
	Short:                      "Add a Cas enzyme to the PAM registry",
	Run:                        casDB.SetCmd,
	SuggestionsMinimumDistance: 2,
	Long:                       "\nSet a Cas enzyme in the registry so its PAMs can be scanned for. The side is 5' or 3'",
	Aliases:                    []string{"add", "update"},
	Example:                    "  excisionfinder set cas SpCas9_NG NG 3'",
}

// set flags
func init() {
	setCmd.AddCommand(casSetCmd)

	RootCmd.AddCommand(setCmd)
}
