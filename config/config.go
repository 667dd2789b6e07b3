// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

var (
	// Root is the app settings directory, holding the user's
	// editable copy of the Cas registry
	Root = appRoot()

	// CasDB is the path to the user's Cas enzyme registry. It is seeded
	// from the built-in table the first time an enzyme is set or deleted
	CasDB = filepath.Join(Root, "cas_list.tsv")
)

// ExtractConfig is settings for the external variant extractor (bcftools)
type ExtractConfig struct {
	// name of or path to the bcftools executable
	Bcftools string `mapstructure:"bcftools"`

	// minimum bcftools version known to support -g het filtering
	MinVersion float64 `mapstructure:"min-version"`

	// command template for pulling het calls from a region of a BCF
	ViewTemplate string `mapstructure:"view-template"`

	// command template for listing the samples in a BCF
	SamplesTemplate string `mapstructure:"samples-template"`

	// number of regions to extract at once when running without a task index
	Workers int `mapstructure:"workers"`

	// scratch directory for extractor output files
	TmpDir string `mapstructure:"tmp-dir"`
}

// ScanConfig is settings for PAM scanning around variants
type ScanConfig struct {
	// sgRNA guide length in bp, used for the "variant near PAM" check
	GuideLength int `mapstructure:"guide-length"`

	// bp of extra sequence around a gene to include
	Window int `mapstructure:"window"`
}

// Config is the root-level settings struct and is a mix of settings
// available in .excisionfinder.yaml and those from the command line
type Config struct {
	// path to a Cas registry file that overrides the built-in table
	CasRegistry string `mapstructure:"cas-registry"`

	// variant extractor settings
	Extract ExtractConfig `mapstructure:"extract"`

	// PAM scan settings
	Scan ScanConfig `mapstructure:"scan"`
}

// New returns a new Config struct populated by Viper settings
// (either from the local .excisionfinder.yaml) and/or command line arguments
func New() *Config {
	viper.SetDefault("extract.bcftools", "bcftools")
	viper.SetDefault("extract.min-version", 1.5)
	viper.SetDefault("extract.view-template", "{{bcftools}} view -g het -r {{region}} -H {{bcf}}")
	viper.SetDefault("extract.samples-template", "{{bcftools}} query -l {{bcf}}")
	viper.SetDefault("extract.workers", runtime.NumCPU())
	viper.SetDefault("extract.tmp-dir", os.TempDir()) // os.TempDir honors a TMPDIR override
	viper.SetDefault("scan.guide-length", 20)
	viper.SetDefault("scan.window", 0)

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}

	return &c
}

// appRoot returns the directory that user settings are kept in
func appRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to find a home directory: %v", err)
	}

	return filepath.Join(home, ".excisionfinder")
}
