package variant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewBody = "chr7\t100\trs1\tA\tG\t50\tPASS\t.\tGT\t0|1\t1|1\t0|0\n" +
	"chr7\t180\trs2\tC\tT\t50\tPASS\t.\tGT\t0/1:35\t0|1\t0|0\n" +
	"chr7\t260\trs3\tG\tGA\t50\tPASS\t.\tGT\t0|0\t0|0\t1|0\n"

var samples = []string{"wtc", "na12878", "na12891"}

func TestParseView(t *testing.T) {
	table, err := ParseView(strings.NewReader(viewBody), samples)
	require.NoError(t, err)

	require.Len(t, table.Variants, 3)
	assert.Equal(t, samples, table.Samples)

	v := table.Variants[0]
	assert.Equal(t, "chr7", v.Chrom)
	assert.Equal(t, 100, v.Pos)
	assert.Equal(t, "A", v.Ref)
	assert.Equal(t, "G", v.Alt)
	assert.Equal(t, []string{"0|1", "1|1", "0|0"}, v.Genotypes)
}

func TestParseView_columnMismatch(t *testing.T) {
	// body carries three samples, caller claims four
	_, err := ParseView(strings.NewReader(viewBody), append(samples, "extra"))
	assert.Error(t, err)
}

func TestHet(t *testing.T) {
	tests := []struct {
		gt   string
		want bool
	}{
		{"0|1", true},
		{"1|0", true},
		{"0/1", true},
		{"1|1", false},
		{"0|0", false},
		{"0/1:35:20,15", true},
		{"1", false},   // haploid
		{".", false},   // missing
		{"2|1", true},  // multiallelic
		{".|.", false}, // phased missing
	}
	for _, tt := range tests {
		t.Run(tt.gt, func(t *testing.T) {
			assert.Equal(t, tt.want, Het(tt.gt))
		})
	}
}

func TestHetBySample(t *testing.T) {
	table, err := ParseView(strings.NewReader(viewBody), samples)
	require.NoError(t, err)

	hets := table.HetBySample()
	assert.Equal(t, []int{100, 180}, hets["wtc"])
	assert.Equal(t, []int{180}, hets["na12878"])
	assert.Equal(t, []int{260}, hets["na12891"])
}

func TestSamplesWithHets(t *testing.T) {
	table, err := ParseView(strings.NewReader(viewBody), samples)
	require.NoError(t, err)

	// everyone has one het here, only wtc has two
	assert.Equal(t, []string{"wtc", "na12878", "na12891"}, table.SamplesWithHets(1))
	assert.Equal(t, []string{"wtc"}, table.SamplesWithHets(2))
	assert.Empty(t, table.SamplesWithHets(3))
}

func TestNHet(t *testing.T) {
	table, err := ParseView(strings.NewReader(viewBody), samples)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Variants[0].NHet())
	assert.Equal(t, 2, table.Variants[1].NHet())
}
