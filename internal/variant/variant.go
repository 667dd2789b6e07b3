// Package variant parses the VCF body lines that the external
// extractor (bcftools view -H) writes and answers genotype questions
// about them.
package variant

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// vcf body columns before the per-sample genotypes
const fixedCols = 9

// Variant is one extracted site with its per-sample genotype fields
type Variant struct {
	Chrom string
	Pos   int // 1-based
	Ref   string
	Alt   string

	// raw genotype fields, same order as Table.Samples
	Genotypes []string
}

// Table is the variants extracted for one region
type Table struct {
	Samples  []string
	Variants []Variant
}

// ParseView reads `bcftools view -H` output. samples is the column
// order from `bcftools query -l`
func ParseView(r io.Reader, samples []string) (Table, error) {
	table := Table{Samples: samples}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024) // thousands of sample columns per line
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < fixedCols+len(samples) {
			return Table{}, errors.Errorf("line %d: %d columns, want %d fixed + %d samples", n, len(cols), fixedCols, len(samples))
		}

		pos, err := strconv.Atoi(cols[1])
		if err != nil {
			return Table{}, errors.Wrapf(err, "line %d: bad position", n)
		}

		table.Variants = append(table.Variants, Variant{
			Chrom:     cols[0],
			Pos:       pos,
			Ref:       cols[3],
			Alt:       cols[4],
			Genotypes: cols[fixedCols : fixedCols+len(samples)],
		})
	}
	if err := scanner.Err(); err != nil {
		return Table{}, err
	}

	return table, nil
}

// Het is whether a genotype field like "0|1" or "1/1:35" is heterozygous
func Het(gt string) bool {
	// drop any FORMAT subfields after the GT
	if i := strings.IndexByte(gt, ':'); i >= 0 {
		gt = gt[:i]
	}

	var hap1, hap2 string
	if i := strings.IndexAny(gt, "|/"); i >= 0 {
		hap1, hap2 = gt[:i], gt[i+1:]
	} else {
		return false // haploid or missing
	}
	return hap1 != hap2
}

// NHet counts the samples het at a variant
func (v Variant) NHet() int {
	n := 0
	for _, gt := range v.Genotypes {
		if Het(gt) {
			n++
		}
	}
	return n
}

// HetBySample maps each sample to the positions it is het at,
// in variant order
func (t Table) HetBySample() map[string][]int {
	hets := make(map[string][]int, len(t.Samples))
	for _, v := range t.Variants {
		for i, gt := range v.Genotypes {
			if Het(gt) {
				sample := t.Samples[i]
				hets[sample] = append(hets[sample], v.Pos)
			}
		}
	}
	return hets
}

// SamplesWithHets returns the samples with at least min het positions,
// in table sample order
func (t Table) SamplesWithHets(min int) []string {
	hets := t.HetBySample()

	var enough []string
	for _, sample := range t.Samples {
		if len(hets[sample]) >= min {
			enough = append(enough, sample)
		}
	}
	return enough
}
