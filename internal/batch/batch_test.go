package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keoughkath/ExcisionFinder/internal/variant"
)

func Test_TranslateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"HLA-A", "HLAdashA"},
		{"NKX2.2", "NKX2period2"},
		{"KRT6A", "KRT6A"},
		{"a-b.c", "adashbperiodc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateName(tt.name); got != tt.want {
				t.Errorf("TranslateName(%s) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func Test_Merge(t *testing.T) {
	dir := t.TempDir()

	header := "chrom\tpos\tref\talt\tn_het\n"
	files := map[string]string{
		"BRCA1.tsv":     header + "chr17\t100\tA\tG\t2\n",
		"CFTR.tsv":      header + "chr7\t200\tC\tT\t1\nchr7\t300\tG\tA\t3\n",
		"CFTR.gens.tsv": "chr7\t200\trs1\tC\tT\t.\t.\t.\tGT\t0|1\n", // raw bodies are skipped
		"samples.txt":   "wtc\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out := filepath.Join(dir, "merged", "all.tsv")
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		t.Fatal(err)
	}
	if err := Merge(dir, out); err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	want := header +
		"chr17\t100\tA\tG\t2\n" +
		"chr7\t200\tC\tT\t1\nchr7\t300\tG\tA\t3\n"
	if string(body) != want {
		t.Errorf("Merge() wrote:\n%s\nwant:\n%s", body, want)
	}
}

func Test_Merge_outInsideDir(t *testing.T) {
	dir := t.TempDir()

	header := "chrom\tpos\tref\talt\tn_het\n"
	body := header + "chr17\t100\tA\tG\t2\n"
	if err := os.WriteFile(filepath.Join(dir, "BRCA1.tsv"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	// an uncleaned path to a file inside dir, so the glob sees a
	// differently spelled name for the same output file
	out := dir + string(os.PathSeparator) + "." + string(os.PathSeparator) + "all.tsv"

	// second run globs the first run's output
	for i := 0; i < 2; i++ {
		if err := Merge(dir, out); err != nil {
			t.Fatal(err)
		}
	}

	merged, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(merged) != body {
		t.Errorf("Merge() read its own output back:\n%s\nwant:\n%s", merged, body)
	}
}

func Test_stageWrite(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "BRCA1.gens.tsv")

	if err := stageWrite(tmpDir, dest, []byte("chr17\t100\n")); err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "chr17\t100\n" {
		t.Errorf("stageWrite() wrote %q", body)
	}

	// no scratch files left behind
	left, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("stageWrite() left %d files in the scratch dir", len(left))
	}
}

func Test_Merge_emptyDir(t *testing.T) {
	if err := Merge(t.TempDir(), filepath.Join(t.TempDir(), "out.tsv")); err == nil {
		t.Error("Merge of an empty dir expected an error")
	}
}

func Test_writeSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene.tsv")
	table := variant.Table{
		Samples: []string{"s1", "s2"},
		Variants: []variant.Variant{
			{Chrom: "chr7", Pos: 100, Ref: "A", Alt: "G", Genotypes: []string{"0|1", "1|1"}},
			{Chrom: "chr7", Pos: 200, Ref: "C", Alt: "T", Genotypes: []string{"0|1", "1|0"}},
		},
	}

	if err := writeSummary(path, table); err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "chrom\tpos\tref\talt\tn_het\n" +
		"chr7\t100\tA\tG\t1\n" +
		"chr7\t200\tC\tT\t2\n"
	if string(body) != want {
		t.Errorf("writeSummary() wrote:\n%s\nwant:\n%s", body, want)
	}
}
