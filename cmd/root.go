// Package cmd is for command line interactions with the excisionfinder application
package cmd

import (
	"log"
	"os"

	"github.com/keoughkath/ExcisionFinder/internal/cas"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	casDB = cas.NewRegistry()
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "excisionfinder",
	Short: `Find allele-specific CRISPR excision sites.
Extract het variants per region, flag the ones in or near a PAM, and rank sample targetability`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.excisionfinder.yaml)")
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("failed to find a home directory: %v", err)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".excisionfinder")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.ReadInConfig() // no config file is fine, defaults apply
}
