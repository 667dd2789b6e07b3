// Package scan finds PAM sites around variants and decides, per Cas
// variety, whether each variant creates a PAM, destroys one, or sits
// within guide range of one. Those three flags are what make a het
// variant an allele-specific cut site downstream.
package scan

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/keoughkath/ExcisionFinder/config"
	"github.com/keoughkath/ExcisionFinder/internal/cas"
	"github.com/keoughkath/ExcisionFinder/internal/variant"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Site is one PAM occurrence: the 0-based offset of the PAM's first
// base within the scanned window, and its strand
type Site struct {
	Pos int
	Fwd bool
}

// Flags is a variant's relationship to an enzyme's PAMs
type Flags struct {
	// the alt allele creates a PAM the reference lacks
	Makes bool

	// the alt allele destroys a reference PAM
	Breaks bool

	// the variant sits in the protospacer of a reference PAM
	Near bool
}

// Targetable is whether the flags mark a usable allele-specific site.
// strict drops the near-PAM case, keeping only variants in a PAM
func (f Flags) Targetable(strict bool) bool {
	if strict {
		return f.Makes || f.Breaks
	}
	return f.Makes || f.Breaks || f.Near
}

// FindSites returns every occurrence of the enzyme's PAM in seq,
// both strands, sorted by position
func FindSites(seq []byte, enz cas.Enzyme) ([]Site, error) {
	fwd, err := cas.CompilePattern(enz.PAM)
	if err != nil {
		return nil, err
	}
	rev, err := cas.CompilePattern(cas.RevComp(enz.PAM))
	if err != nil {
		return nil, err
	}

	var sites []Site
	for i := 0; i+len(fwd) <= len(seq); i++ {
		if cas.Matches(fwd, seq[i:i+len(fwd)]) {
			sites = append(sites, Site{Pos: i, Fwd: true})
		}
		if cas.Matches(rev, seq[i:i+len(rev)]) {
			sites = append(sites, Site{Pos: i, Fwd: false})
		}
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Pos != sites[j].Pos {
			return sites[i].Pos < sites[j].Pos
		}
		return sites[i].Fwd
	})
	return sites, nil
}

// guideSpan is the 0-based half-open protospacer interval for a site,
// honoring the enzyme's PAM side and the site's strand
func guideSpan(s Site, enz cas.Enzyme, guideLen int) (start, end int) {
	pamLen := len(enz.PAM)

	// a 5' PAM on the forward strand reads PAM-then-guide; every other
	// combination mirrors accordingly
	before := enz.Side == cas.Side5
	if !s.Fwd {
		before = !before
	}

	if before {
		return s.Pos + pamLen, s.Pos + pamLen + guideLen
	}
	return s.Pos - guideLen, s.Pos
}

// Evaluate computes the makes/breaks/near flags for one variant.
//
// window is reference sequence, windowPos the 1-based genomic position
// of window[0]. Substitutions get the full comparison; for indels the
// coordinates downstream of the variant shift between the ref and alt
// windows, so only the near flag is evaluated
func Evaluate(window []byte, windowPos int, v variant.Variant, enz cas.Enzyme, guideLen int) (Flags, error) {
	idx := v.Pos - windowPos // variant offset within the window
	if idx < 0 || idx+len(v.Ref) > len(window) {
		return Flags{}, errors.Errorf("variant %s:%d outside scanned window", v.Chrom, v.Pos)
	}

	refSites, err := FindSites(window, enz)
	if err != nil {
		return Flags{}, err
	}

	var flags Flags
	pamLen := len(enz.PAM)
	for _, s := range refSites {
		// variant inside the PAM itself
		if idx+len(v.Ref) > s.Pos && idx < s.Pos+pamLen {
			continue // handled by the makes/breaks comparison below
		}
		if start, end := guideSpan(s, enz, guideLen); idx >= start && idx < end {
			flags.Near = true
			break
		}
	}

	if len(v.Ref) != len(v.Alt) {
		return flags, nil
	}

	alt := make([]byte, 0, len(window))
	alt = append(alt, window[:idx]...)
	alt = append(alt, strings.ToUpper(v.Alt)...)
	alt = append(alt, window[idx+len(v.Ref):]...)

	altSites, err := FindSites(alt, enz)
	if err != nil {
		return Flags{}, err
	}

	// compare only sites the variant can touch
	overlaps := func(s Site) bool {
		return idx+len(v.Ref) > s.Pos && idx < s.Pos+pamLen
	}
	refSet := make(map[Site]bool)
	for _, s := range refSites {
		if overlaps(s) {
			refSet[s] = true
		}
	}
	for _, s := range altSites {
		if !overlaps(s) {
			continue
		}
		if !refSet[s] {
			flags.Makes = true
		}
		delete(refSet, s)
	}
	if len(refSet) > 0 {
		flags.Breaks = true
	}

	return flags, nil
}

// ScanCmd annotates each variant with per-enzyme makes/breaks/near
// flags, writing the table downstream targetability analysis reads
func ScanCmd(cmd *cobra.Command, args []string) {
	fastaPath, err := cmd.Flags().GetString("fasta")
	if fastaPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno reference FASTA path set")
	}
	varPath, err := cmd.Flags().GetString("variants")
	if varPath == "" || err != nil {
		cmd.Help()
		stderr.Fatal("\nno variants path set")
	}
	outPath, _ := cmd.Flags().GetString("out")
	casList, _ := cmd.Flags().GetString("cas")

	conf := config.New()
	registry := cas.NewRegistry()
	enzymes, err := registry.Subset(casList)
	if err != nil {
		stderr.Fatal(err)
	}

	seqs, err := readFasta(fastaPath)
	if err != nil {
		stderr.Fatal(err)
	}
	variants, err := readVariants(varPath)
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

	if err := writeScan(out, seqs, variants, enzymes, conf.Scan.GuideLength); err != nil {
		stderr.Fatal(err)
	}
}

// writeScan evaluates every variant against every enzyme and writes
// the flag table: makes_X, breaks_X, var_near_X columns per enzyme
func writeScan(out *os.File, seqs map[string][]byte, variants []variant.Variant, enzymes []cas.Enzyme, guideLen int) error {
	maxPAM := 0
	for _, enz := range enzymes {
		if len(enz.PAM) > maxPAM {
			maxPAM = len(enz.PAM)
		}
	}
	pad := guideLen + maxPAM

	w := bufio.NewWriter(out)
	header := []string{"chrom", "pos", "ref", "alt"}
	for _, enz := range enzymes {
		header = append(header, "makes_"+enz.Name, "breaks_"+enz.Name, "var_near_"+enz.Name)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, v := range variants {
		seq, ok := seqs[v.Chrom]
		if !ok {
			return errors.Errorf("no sequence for %s in the reference FASTA", v.Chrom)
		}

		start := v.Pos - 1 - pad
		if start < 0 {
			start = 0
		}
		end := v.Pos - 1 + len(v.Ref) + pad
		if end > len(seq) {
			end = len(seq)
		}

		row := []string{v.Chrom, strconv.Itoa(v.Pos), v.Ref, v.Alt}
		for _, enz := range enzymes {
			flags, err := Evaluate(seq[start:end], start+1, v, enz, guideLen)
			if err != nil {
				return err
			}
			row = append(row, boolField(flags.Makes), boolField(flags.Breaks), boolField(flags.Near))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

func boolField(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// readVariants parses either a 4-column (chrom, pos, ref, alt) table
// or the raw VCF body a batch run saved
func readVariants(path string) ([]variant.Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var variants []variant.Variant
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "chrom") {
			continue
		}

		cols := strings.Split(line, "\t")
		refCol, altCol := 2, 3
		if len(cols) >= 8 {
			refCol, altCol = 3, 4 // VCF body layout
		} else if len(cols) < 4 {
			return nil, errors.Errorf("%s line %d: expected chrom, pos, ref, alt", path, n)
		}

		pos, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad position", path, n)
		}

		variants = append(variants, variant.Variant{
			Chrom: cols[0],
			Pos:   pos,
			Ref:   strings.ToUpper(cols[refCol]),
			Alt:   strings.ToUpper(cols[altCol]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return variants, nil
}
