package gene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotsTable = "name\tchrom\ttxStart\ttxEnd\tcdsStart\tcdsEnd\texonCount\texonStarts\texonEnds\tgene_name\tsize\n" +
	"NM_000001\tchr7\t100\t600\t150\t550\t3\t100,300,500,\t200,400,600,\tGENE1\t500\n" +
	"NM_000002\tchr7\t120\t480\t150\t450\t2\t120,300,\t200,480,\tGENE1\t360\n" +
	"NM_000003\tchrX\t1000\t2000\t1000\t2000\t1\t1000,\t2000,\tGENE2\t1000\n"

func writeAnnots(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gene_annots.tsv")
	require.NoError(t, os.WriteFile(path, []byte(annotsTable), 0644))
	return path
}

func TestReadAnnotations(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	tx := txs[0]
	assert.Equal(t, "NM_000001", tx.Name)
	assert.Equal(t, "chr7", tx.Chrom)
	assert.Equal(t, []int{100, 300, 500}, tx.ExonStarts)
	assert.Equal(t, []int{200, 400, 600}, tx.ExonEnds)
	assert.Equal(t, "GENE1", tx.GeneName)
	assert.Equal(t, 500, tx.Size)
}

func TestReadAnnotations_exonCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tsv")
	body := "name\tchrom\ttxStart\ttxEnd\tcdsStart\tcdsEnd\texonCount\texonStarts\texonEnds\n" +
		"NM_1\tchr1\t0\t100\t0\t100\t2\t0,\t100,\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := ReadAnnotations(path)
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)

	// longest transcript wins
	tx, err := Canonical("GENE1", txs)
	require.NoError(t, err)
	assert.Equal(t, "NM_000001", tx.Name)

	_, err = Canonical("GENE9", txs)
	assert.Error(t, err)
}

func TestNew_clipsExonsToCDS(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)

	g := New(txs[0], 0)
	assert.Equal(t, "GENE1", g.Symbol)
	assert.Equal(t, []Exon{
		{Start: 150, End: 200},
		{Start: 300, End: 400},
		{Start: 500, End: 550},
	}, g.CodingExons)
}

func TestNew_dropsUntranslatedExons(t *testing.T) {
	tx := Transcript{
		Name:       "NM_X",
		Chrom:      "chr1",
		TxStart:    0,
		TxEnd:      1000,
		CdsStart:   450,
		CdsEnd:     650,
		ExonStarts: []int{0, 400, 600, 900},
		ExonEnds:   []int{100, 500, 700, 1000},
	}

	g := New(tx, 0)
	assert.Equal(t, []Exon{
		{Start: 450, End: 500},
		{Start: 600, End: 650},
	}, g.CodingExons)
}

func TestInCoding(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)
	g := New(txs[0], 0)

	tests := []struct {
		name string
		pos  int // 1-based
		want bool
	}{
		{"mid first coding exon", 160, true},
		{"five prime UTR", 120, false},
		{"intron", 250, false},
		{"second coding exon", 301, true},
		{"three prime UTR", 580, false},
		{"first base of clipped exon", 151, true},
		{"last base of clipped exon", 200, true},
		{"just past clipped exon", 201, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.InCoding(tt.pos), "pos %d", tt.pos)
		})
	}
}

func TestNextCodingExonStart(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)
	g := New(txs[0], 0)

	start, ok := g.NextCodingExonStart(210)
	require.True(t, ok)
	assert.Equal(t, 301, start)

	_, ok = g.NextCodingExonStart(560)
	assert.False(t, ok)
}

func TestPairTargetable(t *testing.T) {
	txs, err := ReadAnnotations(writeAnnots(t))
	require.NoError(t, err)
	g := New(txs[0], 0)

	tests := []struct {
		name       string
		pos1, pos2 int
		want       bool
	}{
		{"one coding variant", 210, 320, true},
		{"both intronic same intron", 210, 250, false},
		{"cut spans the next exon start", 210, 305, true},
		{"order does not matter", 305, 210, true},
		{"both past the last coding exon", 560, 580, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.PairTargetable(tt.pos1, tt.pos2))
		})
	}
}
