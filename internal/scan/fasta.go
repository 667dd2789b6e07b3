package scan

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/pkg/errors"
)

// readFasta loads a reference FASTA into a map of chromosome name to
// upper-case sequence
func readFasta(path string) (map[string][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs := make(map[string][]byte)
	t := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(fasta.NewReader(f, t))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)

		raw := []byte(alphabet.Letters(s.Seq).String())
		for i, c := range raw {
			if c >= 'a' && c <= 'z' {
				raw[i] = c - ('a' - 'A')
			}
		}
		seqs[s.Name()] = raw
	}
	if err := sc.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed to read FASTA at %s", path)
	}

	if len(seqs) < 1 {
		return nil, errors.Errorf("no sequences in %s", path)
	}
	return seqs, nil
}
