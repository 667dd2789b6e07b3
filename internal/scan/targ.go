package scan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/keoughkath/ExcisionFinder/config"
	"github.com/keoughkath/ExcisionFinder/internal/cas"
	"github.com/keoughkath/ExcisionFinder/internal/gene"
	"github.com/keoughkath/ExcisionFinder/internal/variant"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// TargCmd decides, per sample, whether a gene is targetable by each
// Cas variety: the sample needs a het variant in the gene's coding
// region whose scan flags mark it as an allele-specific site
func TargCmd(cmd *cobra.Command, args []string) {
	gensPath, err := cmd.Flags().GetString("gens")
	if gensPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno extracted genotypes path set")
	}
	samplesPath, err := cmd.Flags().GetString("samples")
	if samplesPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno samples path set")
	}
	scanPath, err := cmd.Flags().GetString("scan")
	if scanPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno scan table path set")
	}
	annotsPath, err := cmd.Flags().GetString("annots")
	if annotsPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno gene annotations path set")
	}
	symbol, err := cmd.Flags().GetString("gene")
	if symbol == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno gene symbol set")
	}
	outPath, _ := cmd.Flags().GetString("out")
	casList, _ := cmd.Flags().GetString("cas")
	strict, _ := cmd.Flags().GetBool("strict")
	pairs, _ := cmd.Flags().GetBool("pairs")

	conf := config.New()
	registry := cas.NewRegistry()
	enzymes, err := registry.Subset(casList)
	if err != nil {
		stderr.Fatal(err)
	}

	txs, err := gene.ReadAnnotations(annotsPath)
	if err != nil {
		stderr.Fatal(err)
	}
	tx, err := gene.Canonical(symbol, txs)
	if err != nil {
		stderr.Fatal(err)
	}
	g := gene.New(tx, conf.Scan.Window)

	samples, err := readSamples(samplesPath)
	if err != nil {
		stderr.Fatal(err)
	}

	gens, err := os.Open(gensPath)
	if err != nil {
		stderr.Fatal(err)
	}
	table, err := variant.ParseView(gens, samples)
	gens.Close()
	if err != nil {
		stderr.Fatal(err)
	}

	flags, err := ReadScanTable(scanPath, enzymes)
	if err != nil {
		stderr.Fatal(err)
	}

	out := os.Stdout
	if outPath != "" {
		if out, err = os.Create(outPath); err != nil {
			stderr.Fatal(err)
		}
		defer out.Close()
	}

	if pairs {
		if err := writeTargPairs(out, g, table, flags, enzymes, strict); err != nil {
			stderr.Fatal(err)
		}
		return
	}
	if err := writeTarg(out, g, table, flags, enzymes, strict); err != nil {
		stderr.Fatal(err)
	}
}

// writeTarg writes the per-sample targetability table: one row per
// sample with at least one het, one targ_X column per enzyme, and a
// targ_all column that is true when any enzyme works
func writeTarg(out *os.File, g *gene.Gene, table variant.Table, flags map[int]map[string]Flags, enzymes []cas.Enzyme, strict bool) error {
	hets := table.HetBySample()
	samples := table.SamplesWithHets(1)
	if len(samples) < 1 {
		return errors.Errorf("no samples with het sites in %s", g.Symbol)
	}

	// per-enzyme sets of targetable het positions, coding only
	targVars := make(map[string]map[int]bool, len(enzymes))
	for _, enz := range enzymes {
		targVars[enz.Name] = make(map[int]bool)
		for pos, perCas := range flags {
			if perCas[enz.Name].Targetable(strict) && g.InCoding(pos) {
				targVars[enz.Name][pos] = true
			}
		}
	}

	w := bufio.NewWriter(out)
	header := []string{"sample"}
	for _, enz := range enzymes {
		header = append(header, "targ_"+enz.Name)
	}
	header = append(header, "targ_all")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, sample := range samples {
		row := []string{sample}
		any := false
		for _, enz := range enzymes {
			targ := false
			for _, pos := range hets[sample] {
				if targVars[enz.Name][pos] {
					targ = true
					break
				}
			}
			any = any || targ
			row = append(row, boolField(targ))
		}
		row = append(row, boolField(any))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// writeTargPairs writes the pair-excision targetability table: a
// sample's row is true for an enzyme when two of its het sites are
// allele-specific cut sites and cutting both would disrupt the gene.
// The cut sites themselves need not be coding, the excised span decides
func writeTargPairs(out *os.File, g *gene.Gene, table variant.Table, flags map[int]map[string]Flags, enzymes []cas.Enzyme, strict bool) error {
	hets := table.HetBySample()
	samples := table.SamplesWithHets(1)
	if len(samples) < 1 {
		return errors.Errorf("no samples with het sites in %s", g.Symbol)
	}

	// per-enzyme sets of cuttable het positions
	cutVars := make(map[string]map[int]bool, len(enzymes))
	for _, enz := range enzymes {
		cutVars[enz.Name] = make(map[int]bool)
		for pos, perCas := range flags {
			if perCas[enz.Name].Targetable(strict) {
				cutVars[enz.Name][pos] = true
			}
		}
	}

	w := bufio.NewWriter(out)
	header := []string{"sample"}
	for _, enz := range enzymes {
		header = append(header, "targ_pair_"+enz.Name)
	}
	header = append(header, "targ_pair_all")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, sample := range samples {
		row := []string{sample}
		any := false
		for _, enz := range enzymes {
			var cuts []int
			for _, pos := range hets[sample] {
				if cutVars[enz.Name][pos] {
					cuts = append(cuts, pos)
				}
			}

			targ := false
			for i := 0; i < len(cuts) && !targ; i++ {
				for j := i + 1; j < len(cuts); j++ {
					if g.PairTargetable(cuts[i], cuts[j]) {
						targ = true
						break
					}
				}
			}
			any = any || targ
			row = append(row, boolField(targ))
		}
		row = append(row, boolField(any))
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// ReadScanTable reads a scan output table back into per-position,
// per-enzyme flags
func ReadScanTable(path string, enzymes []cas.Enzyme) (map[int]map[string]Flags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	flags := make(map[int]map[string]Flags)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var cols []string
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		if cols == nil {
			cols = strings.Split(line, "\t")
			have := make(map[string]bool, len(cols))
			for _, col := range cols {
				have[col] = true
			}
			for _, enz := range enzymes {
				for _, col := range []string{"makes_" + enz.Name, "breaks_" + enz.Name, "var_near_" + enz.Name} {
					if !have[col] {
						return nil, errors.Errorf("%s: no %s column, was the table scanned with --cas %s?", path, col, enz.Name)
					}
				}
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != len(cols) {
			return nil, errors.Errorf("%s line %d: %d fields, header has %d", path, n, len(fields), len(cols))
		}

		byName := make(map[string]string, len(cols))
		for i, col := range cols {
			byName[col] = fields[i]
		}

		pos, err := strconv.Atoi(byName["pos"])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad position", path, n)
		}

		perCas := make(map[string]Flags, len(enzymes))
		for _, enz := range enzymes {
			perCas[enz.Name] = Flags{
				Makes:  byName["makes_"+enz.Name] == "True",
				Breaks: byName["breaks_"+enz.Name] == "True",
				Near:   byName["var_near_"+enz.Name] == "True",
			}
		}
		flags[pos] = perCas
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if cols == nil {
		return nil, errors.Errorf("no header in %s", path)
	}
	return flags, nil
}

// readSamples reads the one-name-per-line samples file a batch run saves
func readSamples(path string) ([]string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var samples []string
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			samples = append(samples, line)
		}
	}
	if len(samples) < 1 {
		return nil, errors.Errorf("no samples in %s", path)
	}
	return samples, nil
}
