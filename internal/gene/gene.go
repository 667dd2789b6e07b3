// Package gene models RefSeq-style gene annotations: transcripts,
// their coding exons, and whether variant positions can disrupt them.
package gene

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
)

// Transcript is one row of the gene annotation table. Coordinates are
// 0-based half-open, the RefSeq/BED convention
type Transcript struct {
	Name       string // transcript accession, eg NM_005228
	Chrom      string
	TxStart    int
	TxEnd      int
	CdsStart   int
	CdsEnd     int
	ExonStarts []int
	ExonEnds   []int
	GeneName   string // HUGO symbol
	Size       int
}

// ReadAnnotations parses a tab-separated annotation table with a header
// row and columns (name, chrom, txStart, txEnd, cdsStart, cdsEnd,
// exonCount, exonStarts, exonEnds, gene_name, size)
func ReadAnnotations(path string) ([]Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var txs []Transcript
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		if n == 1 {
			continue // header
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 9 {
			return nil, errors.Errorf("%s line %d: expected at least 9 annotation fields, got %d", path, n, len(cols))
		}

		tx := Transcript{Name: cols[0], Chrom: cols[1]}
		if tx.TxStart, err = strconv.Atoi(cols[2]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad txStart", path, n)
		}
		if tx.TxEnd, err = strconv.Atoi(cols[3]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad txEnd", path, n)
		}
		if tx.CdsStart, err = strconv.Atoi(cols[4]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad cdsStart", path, n)
		}
		if tx.CdsEnd, err = strconv.Atoi(cols[5]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad cdsEnd", path, n)
		}

		exonCount, err := strconv.Atoi(cols[6])
		if err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad exonCount", path, n)
		}
		if tx.ExonStarts, err = parseCoordList(cols[7]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad exonStarts", path, n)
		}
		if tx.ExonEnds, err = parseCoordList(cols[8]); err != nil {
			return nil, errors.Wrapf(err, "%s line %d: bad exonEnds", path, n)
		}
		if len(tx.ExonStarts) != exonCount || len(tx.ExonEnds) != exonCount {
			return nil, errors.Errorf("%s line %d: exonCount %d but %d starts and %d ends",
				path, n, exonCount, len(tx.ExonStarts), len(tx.ExonEnds))
		}

		if len(cols) > 9 {
			tx.GeneName = cols[9]
		}
		tx.Size = tx.TxEnd - tx.TxStart
		if len(cols) > 10 {
			if tx.Size, err = strconv.Atoi(cols[10]); err != nil {
				return nil, errors.Wrapf(err, "%s line %d: bad size", path, n)
			}
		}

		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}

// parseCoordList splits RefSeq's comma separated coordinate lists,
// which carry a trailing comma: "100,200,300,"
func parseCoordList(field string) ([]int, error) {
	field = strings.TrimSuffix(field, ",")
	if field == "" {
		return nil, nil
	}

	parts := strings.Split(field, ",")
	coords := make([]int, len(parts))
	for i, p := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		coords[i] = c
	}
	return coords, nil
}

// Canonical returns the longest transcript annotated for a gene symbol
func Canonical(symbol string, txs []Transcript) (Transcript, error) {
	var matches []Transcript
	for _, tx := range txs {
		if tx.GeneName == symbol || tx.Name == symbol {
			matches = append(matches, tx)
		}
	}
	if len(matches) < 1 {
		return Transcript{}, errors.Errorf("no transcript found for %s", symbol)
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Size > matches[j].Size })
	return matches[0], nil
}

// Exon is a coding exon, clipped to the transcript's CDS
type Exon struct {
	Start int
	End   int
}

// Overlap, Range and ID satisfy interval.IntInterface so exons can
// live in an interval tree
func (e Exon) Overlap(b interval.IntRange) bool { return e.End > b.Start && e.Start < b.End }
func (e Exon) Range() interval.IntRange        { return interval.IntRange{Start: e.Start, End: e.End} }
func (e Exon) ID() uintptr                     { return uintptr(e.Start) }

// Gene is the analysis view of one transcript: its coding exons and a
// window of padding around the transcript bounds
type Gene struct {
	Symbol      string
	Chrom       string
	Start       int // txStart - window
	End         int // txEnd + window
	CodingExons []Exon

	tree *interval.IntTree
}

// New builds a Gene from a transcript. Exons that overlap the CDS are
// kept, clipped to it; fully untranslated exons are dropped
func New(tx Transcript, window int) *Gene {
	g := &Gene{
		Symbol: tx.GeneName,
		Chrom:  tx.Chrom,
		Start:  tx.TxStart - window,
		End:    tx.TxEnd + window,
		tree:   &interval.IntTree{},
	}
	if g.Symbol == "" {
		g.Symbol = tx.Name
	}
	if g.Start < 0 {
		g.Start = 0
	}

	for i, start := range tx.ExonStarts {
		end := tx.ExonEnds[i]
		if end <= tx.CdsStart || start >= tx.CdsEnd {
			continue
		}
		if start < tx.CdsStart {
			start = tx.CdsStart
		}
		if end > tx.CdsEnd {
			end = tx.CdsEnd
		}

		exon := Exon{Start: start, End: end}
		g.CodingExons = append(g.CodingExons, exon)
		g.tree.Insert(exon, true)
	}
	g.tree.AdjustRanges()

	return g
}

// InCoding is whether a 1-based variant position falls in a coding exon
func (g *Gene) InCoding(pos int) bool {
	p := pos - 1 // to 0-based
	return len(g.tree.Get(Exon{Start: p, End: p + 1})) > 0
}

// NextCodingExonStart is the first coding exon starting after a
// 1-based position. ok is false when no exon follows
func (g *Gene) NextCodingExonStart(pos int) (start int, ok bool) {
	p := pos - 1
	for _, exon := range g.CodingExons {
		if exon.Start > p {
			return exon.Start + 1, true
		}
	}
	return 0, false
}

// PairTargetable is whether excising between two het variant positions
// could disrupt the gene: one of them is coding, or the cut spans the
// start of a following coding exon
func (g *Gene) PairTargetable(pos1, pos2 int) bool {
	low, high := pos1, pos2
	if low > high {
		low, high = high, low
	}

	if g.InCoding(low) || g.InCoding(high) {
		return true
	}

	next, ok := g.NextCodingExonStart(low)
	if !ok {
		return false
	}
	return high >= next
}
