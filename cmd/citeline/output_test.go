package main

import (
	"reflect"
	"testing"

	"github.com/matsen/citeline/internal/citation"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this one is definitely too long", 10, "this on..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sep   string
		want  []string
	}{
		{"semicolons", "Vaswani, Ashish; Shazeer, Noam", ";", []string{"Vaswani, Ashish", "Shazeer, Noam"}},
		{"commas", "a, b ,c", ",", []string{"a", "b", "c"}},
		{"empties dropped", "a;;b; ", ";", []string{"a", "b"}},
		{"empty input", "", ";", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.input, tt.sep); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterByKeys(t *testing.T) {
	cites := []citation.Citation{
		{Key: "a2020"},
		{Key: "b2021"},
		{Key: "c2022"},
	}
	got := filterByKeys(cites, []string{"c2022", " a2020"})
	want := []string{"a2020", "c2022"}
	if len(got) != len(want) {
		t.Fatalf("filtered %d citations, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Key != want[i] {
			t.Errorf("position %d: key = %q, want %q", i, c.Key, want[i])
		}
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	authors := []citation.Author{
		{First: "Ashish", Last: "Vaswani"},
		{First: "Noam", Last: "Shazeer"},
		{First: "Niki", Last: "Parmar"},
		{First: "Jakob", Last: "Uszkoreit"},
	}
	got := formatAuthorsShort(authors, 2)
	want := "Vaswani A, Shazeer N, et al."
	if got != want {
		t.Errorf("formatAuthorsShort = %q, want %q", got, want)
	}
}
