package cas

import (
	"reflect"
	"testing"
)

func Test_ValidPattern(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		wantErr bool
	}{
		{"plain bases", "NGG", false},
		{"every ambiguity code", "ACGTRYSWKMBDHVN", false},
		{"lower case ok", "tttn", false},
		{"empty", "", true},
		{"uracil is not DNA", "NUG", true},
		{"punctuation", "NG-G", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidPattern(tt.seq); (err != nil) != tt.wantErr {
				t.Errorf("ValidPattern(%q) error = %v, wantErr %v", tt.seq, err, tt.wantErr)
			}
		})
	}
}

func Test_CompilePattern(t *testing.T) {
	masks, err := CompilePattern("NGG")
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{15, 4, 4}
	if !reflect.DeepEqual(masks, want) {
		t.Errorf("CompilePattern(NGG) = %v, want %v", masks, want)
	}

	if _, err := CompilePattern("NQG"); err == nil {
		t.Error("CompilePattern(NQG) expected an error")
	}
}

func Test_Matches(t *testing.T) {
	ngg, _ := CompilePattern("NGG")
	nngrrt, _ := CompilePattern("NNGRRT")

	tests := []struct {
		name    string
		pattern []uint8
		window  string
		want    bool
	}{
		{"NGG hits AGG", ngg, "AGG", true},
		{"NGG hits TGG", ngg, "TGG", true},
		{"NGG misses AGA", ngg, "AGA", false},
		{"NGG lower case window", ngg, "agg", true},
		{"length mismatch", ngg, "AG", false},
		{"ambiguous window base never matches", ngg, "NGG", false},
		{"SaCas9 PAM", nngrrt, "TTGAGT", true},
		{"SaCas9 R rejects pyrimidine", nngrrt, "TTGACT", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.pattern, []byte(tt.window)); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func Test_RevComp(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"NGG", "CCN"},
		{"TTTN", "NAAA"},
		{"NNGRRT", "AYYCNN"},
		{"ACGT", "ACGT"},
	}
	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got := RevComp(tt.seq)
			if got != tt.want {
				t.Errorf("RevComp(%s) = %s, want %s", tt.seq, got, tt.want)
			}

			// an involution over full IUPAC
			if back := RevComp(got); back != tt.seq {
				t.Errorf("RevComp(RevComp(%s)) = %s", tt.seq, back)
			}
		})
	}
}
