package batch

import (
	"strings"
	"testing"

	"github.com/keoughkath/ExcisionFinder/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Extract: config.ExtractConfig{
			Bcftools:        "echo",
			MinVersion:      1.5,
			ViewTemplate:    "{{bcftools}} {{region}} {{bcf}}",
			SamplesTemplate: "{{bcftools}} {{bcf}}",
			Workers:         1,
		},
	}
}

func Test_parseVersion(t *testing.T) {
	tests := []struct {
		version string
		want    float64
		wantErr bool
	}{
		{"1.9", 1.9, false},
		{"1.15.1", 1.15, false},
		{"1.5", 1.5, false},
		{"dev", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := parseVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVersion(%s) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseVersion(%s) = %f, want %f", tt.version, got, tt.want)
			}
		})
	}
}

func Test_NewExtractor_badTemplate(t *testing.T) {
	c := testConfig()
	c.Extract.ViewTemplate = "{{bcftools} view" // unclosed tag

	if _, err := NewExtractor(c); err == nil {
		t.Error("expected an error for an unclosed template tag")
	}
}

func Test_Samples(t *testing.T) {
	// echo stands in for bcftools: its output is the rendered argument
	e, err := NewExtractor(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	samples, err := e.Samples("wtc.bcf")
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || samples[0] != "wtc.bcf" {
		t.Errorf("Samples() = %v", samples)
	}
}

func Test_ViewHets_rendersTheLocus(t *testing.T) {
	e, err := NewExtractor(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	out, err := e.ViewHets("chr7:100-200", "wtc.bcf")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(out)); got != "chr7:100-200 wtc.bcf" {
		t.Errorf("ViewHets() echoed %q", got)
	}
}

func Test_run_missingBinary(t *testing.T) {
	c := testConfig()
	c.Extract.Bcftools = "excisionfinder-no-such-tool"

	e, err := NewExtractor(c)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Samples("wtc.bcf"); err == nil {
		t.Error("expected an opaque pass-through error for a missing binary")
	}
}
