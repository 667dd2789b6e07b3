package cas

import "github.com/pkg/errors"

// 4-bit mask per IUPAC nucleotide code
var iupacMask = map[byte]uint8{
	'A': 1 << 0,
	'C': 1 << 1,
	'G': 1 << 2,
	'T': 1 << 3,
	'R': 1<<0 | 1<<2,
	'Y': 1<<1 | 1<<3,
	'S': 1<<1 | 1<<2,
	'W': 1<<0 | 1<<3,
	'K': 1<<2 | 1<<3,
	'M': 1<<0 | 1<<1,
	'B': 1<<1 | 1<<2 | 1<<3,
	'D': 1<<0 | 1<<2 | 1<<3,
	'H': 1<<0 | 1<<1 | 1<<3,
	'V': 1<<0 | 1<<1 | 1<<2,
	'N': 1<<0 | 1<<1 | 1<<2 | 1<<3,
}

// complements of the degenerate codes, not just ACGT
var iupacComp = map[byte]byte{
	'A': 'T',
	'C': 'G',
	'G': 'C',
	'T': 'A',
	'R': 'Y',
	'Y': 'R',
	'S': 'S',
	'W': 'W',
	'K': 'M',
	'M': 'K',
	'B': 'V',
	'D': 'H',
	'H': 'D',
	'V': 'B',
	'N': 'N',
}

// upper maps a base to upper-case without pulling in strings
func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// ValidPattern errors if the sequence is empty or contains a
// non-IUPAC nucleotide code
func ValidPattern(seq string) error {
	if seq == "" {
		return errors.New("empty PAM sequence")
	}

	for i := 0; i < len(seq); i++ {
		if _, ok := iupacMask[upper(seq[i])]; !ok {
			return errors.Errorf("invalid IUPAC code %q in %s", seq[i], seq)
		}
	}
	return nil
}

// CompilePattern converts an IUPAC pattern to a slice of 4-bit masks
// for matching against sequence windows
func CompilePattern(seq string) ([]uint8, error) {
	if err := ValidPattern(seq); err != nil {
		return nil, err
	}

	masks := make([]uint8, len(seq))
	for i := 0; i < len(seq); i++ {
		masks[i] = iupacMask[upper(seq[i])]
	}
	return masks, nil
}

// Matches is whether a window of sequence satisfies a compiled pattern.
// Ambiguous bases in the window (eg the N runs in a reference assembly)
// never satisfy a pattern position
func Matches(pattern []uint8, window []byte) bool {
	if len(window) != len(pattern) {
		return false
	}

	for i, m := range pattern {
		switch upper(window[i]) {
		case 'A':
			if m&(1<<0) == 0 {
				return false
			}
		case 'C':
			if m&(1<<1) == 0 {
				return false
			}
		case 'G':
			if m&(1<<2) == 0 {
				return false
			}
		case 'T':
			if m&(1<<3) == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// RevComp reverse complements a sequence, degenerate codes included.
// Bases without a complement (gaps etc) are passed through unchanged
func RevComp(seq string) string {
	rc := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c, ok := iupacComp[upper(seq[len(seq)-1-i])]
		if !ok {
			c = seq[len(seq)-1-i]
		}
		rc[i] = c
	}
	return string(rc)
}
