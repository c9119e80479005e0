package export

import (
	"strings"
	"testing"

	"github.com/matsen/citeline/internal/citation"
)

func TestToBibTeX_CompleteEntry(t *testing.T) {
	c := citation.Citation{
		Key:   "vaswani2017",
		Title: "Attention Is All You Need",
		Authors: []citation.Author{
			{First: "Ashish", Last: "Vaswani"},
			{First: "Noam", Last: "Shazeer"},
		},
		Year:    2017,
		Journal: "NeurIPS",
		Volume:  "30",
		Pages:   "5998-6008",
		DOI:     "10.5555/3295222",
	}

	got := ToBibTeX(c)

	wantLines := []string{
		"@article{vaswani2017,",
		"  author = {Vaswani, Ashish and Shazeer, Noam},",
		"  title = {Attention Is All You Need},",
		"  journal = {NeurIPS},",
		"  year = {2017},",
		"  volume = {30},",
		"  pages = {5998-6008},",
		"  doi = {10.5555/3295222},",
		"}",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("missing line %q in:\n%s", line, got)
		}
	}
}

func TestToBibTeX_OptionalFieldsOmitted(t *testing.T) {
	c := citation.Citation{
		Key:     "doend",
		Title:   "Undated Manuscript",
		Authors: []citation.Author{{First: "John", Last: "Doe"}},
	}

	got := ToBibTeX(c)
	for _, field := range []string{"journal", "year", "volume", "pages", "doi"} {
		if strings.Contains(got, field+" = ") {
			t.Errorf("empty field %q should be omitted:\n%s", field, got)
		}
	}
}

func TestToBibTeX_EscapesLatex(t *testing.T) {
	c := citation.Citation{
		Key:     "smith2020",
		Title:   "P&L Analysis with 100% Coverage",
		Authors: []citation.Author{{First: "Jane", Last: "Smith"}},
		Year:    2020,
	}

	got := ToBibTeX(c)
	if !strings.Contains(got, `P\&L Analysis with 100\% Coverage`) {
		t.Errorf("special characters not escaped:\n%s", got)
	}
}

func TestToBibTeXList(t *testing.T) {
	cites := []citation.Citation{
		{Key: "a2020", Title: "Alpha", Authors: []citation.Author{{Last: "Adams"}}},
		{Key: "b2021", Title: "Beta", Authors: []citation.Author{{Last: "Brown"}}},
	}

	got := ToBibTeXList(cites)
	if strings.Count(got, "@article{") != 2 {
		t.Errorf("want 2 entries, got:\n%s", got)
	}
	if !strings.Contains(got, "}\n\n@article{b2021,") {
		t.Errorf("entries should be blank-line separated:\n%s", got)
	}
}

func TestToBibTeXList_Empty(t *testing.T) {
	if got := ToBibTeXList(nil); got != "" {
		t.Errorf("empty list = %q, want empty string", got)
	}
}
