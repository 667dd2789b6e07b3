package batch

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/keoughkath/ExcisionFinder/config"
	"github.com/pkg/errors"
	"github.com/valyala/fasttemplate"
)

// Extractor wraps the external variant extraction tool (bcftools).
// The command lines are templates so another extractor with a
// compatible region syntax can be swapped in from settings
type Extractor struct {
	bin         string
	minVersion  float64
	viewTmpl    *fasttemplate.Template
	samplesTmpl *fasttemplate.Template
}

// NewExtractor builds an Extractor from the app settings
func NewExtractor(c *config.Config) (*Extractor, error) {
	viewTmpl, err := fasttemplate.NewTemplate(c.Extract.ViewTemplate, "{{", "}}")
	if err != nil {
		return nil, errors.Wrap(err, "bad view-template")
	}
	samplesTmpl, err := fasttemplate.NewTemplate(c.Extract.SamplesTemplate, "{{", "}}")
	if err != nil {
		return nil, errors.Wrap(err, "bad samples-template")
	}

	return &Extractor{
		bin:         c.Extract.Bcftools,
		minVersion:  c.Extract.MinVersion,
		viewTmpl:    viewTmpl,
		samplesTmpl: samplesTmpl,
	}, nil
}

// CheckVersion errors if the extractor is missing or older than the
// minimum version (-g het filtering needs bcftools >= 1.5)
func (e *Extractor) CheckVersion() error {
	out, err := exec.Command(e.bin, "--version").Output()
	if err != nil {
		return errors.Wrapf(err, "failed to run %s, is it on your PATH?", e.bin)
	}

	// first line is eg "bcftools 1.9"
	line := strings.SplitN(string(out), "\n", 2)[0]
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return errors.Errorf("unrecognized %s version output %q", e.bin, line)
	}

	version, err := parseVersion(fields[len(fields)-1])
	if err != nil {
		return errors.Wrapf(err, "unrecognized %s version %q", e.bin, fields[len(fields)-1])
	}
	if version < e.minVersion {
		return errors.Errorf("%s must be >= %.1f, found %s", e.bin, e.minVersion, fields[len(fields)-1])
	}
	return nil
}

// parseVersion reads "1.9" or "1.15.1" as a major.minor float
func parseVersion(s string) (float64, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		s = parts[0] + "." + parts[1]
	}
	return strconv.ParseFloat(s, 64)
}

// Samples lists the sample names in a BCF, in column order
func (e *Extractor) Samples(bcf string) ([]string, error) {
	out, err := e.run(e.samplesTmpl, map[string]interface{}{
		"bcftools": e.bin,
		"bcf":      bcf,
	})
	if err != nil {
		return nil, err
	}

	var samples []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			samples = append(samples, line)
		}
	}
	if len(samples) < 1 {
		return nil, errors.Errorf("no samples in %s", bcf)
	}
	return samples, nil
}

// ViewHets returns the VCF body of het calls in a region of the BCF
func (e *Extractor) ViewHets(locus, bcf string) ([]byte, error) {
	return e.run(e.viewTmpl, map[string]interface{}{
		"bcftools": e.bin,
		"region":   locus,
		"bcf":      bcf,
	})
}

// run renders a command template and executes it. Collaborator tool
// failures are opaque: the exit error is passed through with whatever
// the tool wrote to stderr
func (e *Extractor) run(tmpl *fasttemplate.Template, vars map[string]interface{}) ([]byte, error) {
	cmdline := tmpl.ExecuteString(vars)
	parts := strings.Fields(cmdline)
	if len(parts) < 1 {
		return nil, errors.Errorf("empty command from template")
	}

	var stdout, stderrBuf bytes.Buffer
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderrBuf
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "%s failed: %s", cmdline, strings.TrimSpace(stderrBuf.String()))
	}

	return stdout.Bytes(), nil
}
