package engine

import (
	"reflect"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Attention Is All You Need", "attention is all you need"},
		{"punctuation stripped", "BERT: Pre-training of Deep Bidirectional Transformers", "bert pretraining of deep bidirectional transformers"},
		{"whitespace collapsed", "  Deep   Learning \t Review ", "deep learning review"},
		{"digits kept", "GPT-4 Technical Report", "gpt4 technical report"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	if Fingerprint("Attention Is All You Need", 2017) != Fingerprint("attention is all you need!", 2017) {
		t.Error("punctuation and case must not change the fingerprint")
	}
	if Fingerprint("Attention Is All You Need", 2017) == Fingerprint("Attention Is All You Need", 2018) {
		t.Error("different years must produce different fingerprints")
	}
	if got, want := Fingerprint("Undated Work", 0), "undated work|"; got != want {
		t.Errorf("unknown year fingerprint = %q, want %q", got, want)
	}
}

func TestUnionEntities(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{"no incoming", []string{"a"}, nil, []string{"a"}},
		{"union sorted", []string{"b", "a"}, []string{"c", "a"}, []string{"a", "b", "c"}},
		{"empty ids dropped", nil, []string{"", "x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unionEntities(tt.existing, tt.incoming)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("unionEntities = %v, want %v", got, tt.want)
			}
		})
	}
}
